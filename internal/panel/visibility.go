package panel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
	"golang.org/x/sync/errgroup"
)

// Visibility manages visibility settings and bulk category visibility
type Visibility struct {
	*Panel[models.VisibilitySetting, *models.VisibilitySetting]

	categories *Panel[models.Category, *models.Category]

	selMu    sync.Mutex
	selected map[string]struct{}
}

// NewVisibility creates the category visibility panel
func NewVisibility(api *client.API, log *slog.Logger) *Visibility {
	return &Visibility{
		Panel:      New[models.VisibilitySetting](models.PathCategoryVisibility, api.CategoryVisibility, log, Options[models.VisibilitySetting]{}),
		categories: New[models.Category](models.PathCategories, api.Categories, log, Options[models.Category]{}),
		selected:   map[string]struct{}{},
	}
}

// Load fetches settings and categories concurrently
func (v *Visibility) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return v.Panel.Load(ctx) })
	g.Go(func() error { return v.categories.Load(ctx) })
	return g.Wait()
}

// Categories returns the loaded categories
func (v *Visibility) Categories() []models.Category {
	return v.categories.Items()
}

// CategoryName resolves a category id to its name
func (v *Visibility) CategoryName(id string) string {
	if c, ok := v.categories.Find(id); ok {
		return c.Name
	}
	return UnknownCategoryLabel
}

// Summary returns the visibility counters
func (v *Visibility) Summary() summary.Visibility {
	return summary.ForVisibility(v.Items(), v.categories.Items())
}

// Select marks a loaded category for the next bulk update
func (v *Visibility) Select(id string) error {
	if _, ok := v.categories.Find(id); !ok {
		return ErrNotFound
	}
	v.selMu.Lock()
	defer v.selMu.Unlock()
	v.selected[id] = struct{}{}
	return nil
}

// Deselect unmarks a category
func (v *Visibility) Deselect(id string) {
	v.selMu.Lock()
	defer v.selMu.Unlock()
	delete(v.selected, id)
}

// ClearSelection unmarks every category
func (v *Visibility) ClearSelection() {
	v.selMu.Lock()
	defer v.selMu.Unlock()
	v.selected = map[string]struct{}{}
}

// IsSelected reports whether id is marked
func (v *Visibility) IsSelected(id string) bool {
	v.selMu.Lock()
	defer v.selMu.Unlock()
	_, ok := v.selected[id]
	return ok
}

// Selection returns the marked category ids in list order
func (v *Visibility) Selection() []string {
	v.selMu.Lock()
	defer v.selMu.Unlock()
	var ids []string
	for _, c := range v.categories.Items() {
		if _, ok := v.selected[c.ID]; ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// BulkUpdate sets status on every selected category with one concurrent PUT
// per category. Any failed PUT fails the operation; updates that already
// succeeded are kept. On success settings and categories are re-fetched and
// the selection is cleared.
func (v *Visibility) BulkUpdate(ctx context.Context, status models.VisibilityStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid visibility status %q", status)
	}
	ids := v.Selection()
	if len(ids) == 0 {
		return ErrNoSelection
	}

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := v.categories.backend.Update(ctx, id, map[string]any{"visibility_status": status})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		v.log.Error("failed to update bulk visibility", "count", len(ids), "error", err)
		return err
	}

	v.log.Info("bulk visibility updated", "count", len(ids), "status", status)
	v.ClearSelection()
	return v.Load(ctx)
}
