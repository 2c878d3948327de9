package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aethra/taxonomy/internal/models"
	"gorm.io/gorm"
)

// Store bundles the repositories of every taxonomy collection
type Store struct {
	DB                     *gorm.DB
	Categories             *Repository[models.Category, *models.Category]
	CategoryModels         *Repository[models.CategoryModel, *models.CategoryModel]
	CategoryVisibility     *Repository[models.VisibilitySetting, *models.VisibilitySetting]
	VisibilityTypes        *Repository[models.VisibilityType, *models.VisibilityType]
	BusinessFields         *Repository[models.BusinessField, *models.BusinessField]
	BusinessFieldInstances *Repository[models.BusinessFieldInstance, *models.BusinessFieldInstance]
	PricingModels          *Repository[models.PricingModel, *models.PricingModel]
	SocialHandles          *Repository[models.SocialHandle, *models.SocialHandle]
	DisplayTypes           *Repository[models.DisplayType, *models.DisplayType]
}

// New creates the repositories on top of db
func New(db *gorm.DB) *Store {
	return &Store{
		DB:                     db,
		Categories:             NewRepository[models.Category](db, "category", "sort_order, created_at"),
		CategoryModels:         NewRepository[models.CategoryModel](db, "category model", "created_at"),
		CategoryVisibility:     NewRepository[models.VisibilitySetting](db, "visibility setting", "created_at"),
		VisibilityTypes:        NewRepository[models.VisibilityType](db, "visibility type", "created_at"),
		BusinessFields:         NewRepository[models.BusinessField](db, "business field", "sort_order, created_at"),
		BusinessFieldInstances: NewRepository[models.BusinessFieldInstance](db, "business field instance", "created_at"),
		PricingModels:          NewRepository[models.PricingModel](db, "pricing model", "created_at"),
		SocialHandles:          NewRepository[models.SocialHandle](db, "social handle", "created_at"),
		DisplayTypes:           NewRepository[models.DisplayType](db, "display type", "created_at"),
	}
}

// Ping checks that the database answers
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Seed inserts the demo business fields, social handles, pricing models and
// display types into collections that are still empty. Sample IDs are replaced.
func (s *Store) Seed(ctx context.Context, log *slog.Logger) error {
	if err := seed(ctx, log, s.BusinessFields, models.SampleBusinessFields()); err != nil {
		return err
	}
	if err := seed(ctx, log, s.SocialHandles, models.SampleSocialHandles()); err != nil {
		return err
	}
	if err := seed(ctx, log, s.PricingModels, models.SamplePricingModels()); err != nil {
		return err
	}
	return seed(ctx, log, s.DisplayTypes, models.SampleDisplayTypes())
}

func seed[T any, P interface {
	*T
	models.Record
}](ctx context.Context, log *slog.Logger, repo *Repository[T, P], items []T) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("seed skipped, collection not empty", "resource", repo.Resource(), "count", n)
		return nil
	}
	for i := range items {
		if err := repo.Create(ctx, P(&items[i])); err != nil {
			return fmt.Errorf("seed %s: %w", repo.Resource(), err)
		}
	}
	log.Info("seeded", "resource", repo.Resource(), "count", len(items))
	return nil
}
