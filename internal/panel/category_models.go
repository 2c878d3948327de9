package panel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
)

// CategoryModels manages the structural templates of categories
type CategoryModels struct {
	*Panel[models.CategoryModel, *models.CategoryModel]
}

// NewCategoryModels creates the category models panel
func NewCategoryModels(api *client.API, log *slog.Logger) *CategoryModels {
	return &CategoryModels{
		Panel: New[models.CategoryModel](models.PathCategoryModels, api.CategoryModels, log, Options[models.CategoryModel]{}),
	}
}

// Duplicate posts a copy of the model with id named "<name> (Copy)"
func (m *CategoryModels) Duplicate(ctx context.Context, id string) error {
	src, ok := m.Find(id)
	if !ok {
		return ErrNotFound
	}
	fields := src.Fields
	if fields == nil {
		fields = []models.FieldDescriptor{}
	}
	return m.create(ctx, map[string]any{
		"name":        src.Name + " (Copy)",
		"description": src.Description,
		"fields":      fields,
	})
}

// Summary returns the category model counters
func (m *CategoryModels) Summary() summary.CategoryModels {
	return summary.ForCategoryModels(m.Items())
}

// AddField appends f to the form. Fields with a blank name are ignored.
func AddField(form *models.CategoryModel, f models.FieldDescriptor) bool {
	if strings.TrimSpace(f.Name) == "" {
		return false
	}
	if f.Type == "" {
		f.Type = models.FieldTypeText
	}
	form.Fields = append(form.Fields, f)
	return true
}

// RemoveField drops the field at index i from the form
func RemoveField(form *models.CategoryModel, i int) bool {
	if i < 0 || i >= len(form.Fields) {
		return false
	}
	form.Fields = append(form.Fields[:i:i], form.Fields[i+1:]...)
	return true
}
