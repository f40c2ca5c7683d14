package settings

import (
	"context"
	"errors"
	"strings"

	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("settings repository: not found")

type Repository interface {
	GetSite(ctx context.Context, siteID string) (model.SiteItem, error)
	PutSite(ctx context.Context, site model.SiteItem) error
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetSite(ctx context.Context, siteID string) (model.SiteItem, error) {
	var site model.SiteItem
	err := r.db.Client.GetItem(
		ctx,
		model.SitesTable,
		map[string]types.AttributeValue{
			"siteId": &types.AttributeValueMemberS{Value: siteID},
		},
		&site,
	)
	if err != nil {
		if isNotFoundError(err) {
			return model.SiteItem{}, ErrNotFound
		}
		return model.SiteItem{}, err
	}
	return site, nil
}

func (r *DynamoRepository) PutSite(ctx context.Context, site model.SiteItem) error {
	return r.db.Client.PutItem(ctx, model.SitesTable, site)
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
