package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aethra/taxonomy/internal/models"
)

// Resource is the CRUD surface of one collection
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "categories" to c
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

// Path returns the collection path relative to the API prefix
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches the whole collection
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches one record
func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts body and returns the stored record. body is usually a T or a
// map of the fields to set.
func (r *Resource[T]) Create(ctx context.Context, body any) (*T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPost, r.path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update sends body as a PUT. The server applies only the keys present.
func (r *Resource[T]) Update(ctx context.Context, id string, body any) (*T, error) {
	var item T
	if err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes one record
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// API bundles one Resource per collection of the backend
type API struct {
	Client                 *Client
	Categories             *Resource[models.Category]
	CategoryModels         *Resource[models.CategoryModel]
	CategoryVisibility     *Resource[models.VisibilitySetting]
	VisibilityTypes        *Resource[models.VisibilityType]
	BusinessFields         *Resource[models.BusinessField]
	BusinessFieldInstances *Resource[models.BusinessFieldInstance]
	PricingModels          *Resource[models.PricingModel]
	SocialHandles          *Resource[models.SocialHandle]
	DisplayTypes           *Resource[models.DisplayType]
}

// NewAPI creates the bundle for the backend at baseURL
func NewAPI(baseURL string, opts ...Option) (*API, error) {
	c, err := New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &API{
		Client:                 c,
		Categories:             NewResource[models.Category](c, models.PathCategories),
		CategoryModels:         NewResource[models.CategoryModel](c, models.PathCategoryModels),
		CategoryVisibility:     NewResource[models.VisibilitySetting](c, models.PathCategoryVisibility),
		VisibilityTypes:        NewResource[models.VisibilityType](c, models.PathVisibilityTypes),
		BusinessFields:         NewResource[models.BusinessField](c, models.PathBusinessFields),
		BusinessFieldInstances: NewResource[models.BusinessFieldInstance](c, models.PathBusinessFieldInstances),
		PricingModels:          NewResource[models.PricingModel](c, models.PathPricingModels),
		SocialHandles:          NewResource[models.SocialHandle](c, models.PathSocialHandles),
		DisplayTypes:           NewResource[models.DisplayType](c, models.PathDisplayTypes),
	}, nil
}
