package utils

import "github.com/google/uuid"

// CreateToken returns an opaque random token built from two UUIDs. Used for
// refresh tokens, where the token only needs to be unguessable.
func CreateToken() string {
	firstUUID, err := uuid.NewUUID()

	if err != nil {
		return ""
	}

	secondUUID, err := uuid.NewUUID()

	if err != nil {
		return ""
	}

	token := firstUUID.String() + secondUUID.String()

	return token
}
