package auth

import (
	"context"
	"errors"
	"strings"

	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("auth repository: not found")

type Repository interface {
	CreateAdmin(ctx context.Context, admin model.AdminItem) error
	GetAdminByEmail(ctx context.Context, email string) (model.AdminItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateAdmin(ctx context.Context, admin model.AdminItem) error {
	return r.db.Client.PutItem(ctx, model.AdminsTable, admin)
}

func (r *DynamoRepository) GetAdminByEmail(ctx context.Context, email string) (model.AdminItem, error) {
	var admin model.AdminItem
	err := r.db.Client.GetItem(
		ctx,
		model.AdminsTable,
		map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		&admin,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.AdminItem{}, ErrNotFound
		}
		return model.AdminItem{}, err
	}

	return admin, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
