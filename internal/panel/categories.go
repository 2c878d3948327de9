package panel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
	"golang.org/x/sync/errgroup"
)

// Labels shown for missing references
const (
	NoModelLabel         = "No Model"
	NoParentLabel        = "None"
	UnknownCategoryLabel = "Unknown Category"
	UnknownTemplateLabel = "Unknown Template"
)

// Categories manages categories and shows their model and parent
type Categories struct {
	*Panel[models.Category, *models.Category]

	modelsSource Lister[models.CategoryModel]
	mu           sync.RWMutex
	catModels    []models.CategoryModel
}

// NewCategories creates the categories panel
func NewCategories(api *client.API, log *slog.Logger) *Categories {
	return &Categories{
		Panel:        New[models.Category](models.PathCategories, api.Categories, log, Options[models.Category]{}),
		modelsSource: api.CategoryModels,
		catModels:    []models.CategoryModel{},
	}
}

// Load fetches categories and category models concurrently
func (c *Categories) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.Panel.Load(ctx) })
	g.Go(func() error {
		ms, err := c.modelsSource.List(ctx)
		if err != nil {
			c.log.Error("failed to load category models", "panel", c.name, "error", err)
			return err
		}
		c.mu.Lock()
		c.catModels = ms
		c.mu.Unlock()
		return nil
	})
	return g.Wait()
}

// Models returns the loaded category models, the choices for model_id
func (c *Categories) Models() []models.CategoryModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CategoryModel, len(c.catModels))
	copy(out, c.catModels)
	return out
}

// ModelName resolves a model id to its name
func (c *Categories) ModelName(id *string) string {
	if id == nil || *id == "" {
		return NoModelLabel
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.catModels {
		if m.ID == *id {
			return m.Name
		}
	}
	return NoModelLabel
}

// ParentName resolves a parent id to its category name
func (c *Categories) ParentName(id *string) string {
	if id == nil || *id == "" {
		return NoParentLabel
	}
	if parent, ok := c.Find(*id); ok {
		return parent.Name
	}
	return UnknownCategoryLabel
}

// ParentOptions returns the categories that can be chosen as parent of the
// record being edited. A category cannot be its own parent.
func (c *Categories) ParentOptions() []models.Category {
	editing := c.EditingID()
	items := c.Items()
	out := make([]models.Category, 0, len(items))
	for _, it := range items {
		if it.ID != editing {
			out = append(out, it)
		}
	}
	return out
}

// Summary returns the category counters
func (c *Categories) Summary() summary.Categories {
	return summary.ForCategories(c.Items())
}
