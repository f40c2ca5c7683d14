package session

import "avatar-widget-backend/internal/service/conversation"

// The field names a join URL may hide behind, most specific first.
var joinURLFields = []string{"conversation_url", "embed_url", "iframe_url", "url"}

// JoinURL picks the room URL out of a create result. Each candidate field
// is tried against the raw remote payload, then a nested data object, then
// the already-extracted URL, so a more specific field name always wins over
// a more specific location.
func JoinURL(result conversation.CreateResult) string {
	sources := []map[string]interface{}{result.Raw}
	if nested, ok := result.Raw["data"].(map[string]interface{}); ok {
		sources = append(sources, nested)
	}

	for _, field := range joinURLFields {
		for _, source := range sources {
			if value, ok := source[field].(string); ok && value != "" {
				return value
			}
		}
	}

	return result.ConversationURL
}
