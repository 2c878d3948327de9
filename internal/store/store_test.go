package store

import (
	"context"
	"testing"
	"time"

	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsIDAndListsInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	second := &models.Category{Name: "Second", SortOrder: 2, VisibilityStatus: models.VisibilityVisible}
	first := &models.Category{Name: "First", SortOrder: 1, VisibilityStatus: models.VisibilityHidden}
	require.NoError(t, s.Categories.Create(ctx, second))
	require.NoError(t, s.Categories.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	cats, err := s.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "First", cats[0].Name)
	assert.Equal(t, "Second", cats[1].Name)
	assert.Nil(t, cats[0].ModelID)
}

func TestListEmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)
	items, err := s.SocialHandles.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	s := newTestStore(t)
	err := s.CategoryModels.Create(context.Background(), &models.CategoryModel{Name: "  "})
	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.PricingModels.Get(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestUpdateWritesZeroValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	vt := &models.VisibilityType{Name: "Seasonal", Active: true}
	require.NoError(t, s.VisibilityTypes.Create(ctx, vt))
	created := vt.CreatedAt

	vt.Active = false
	vt.Description = ""
	require.NoError(t, s.VisibilityTypes.Update(ctx, vt))

	got, err := s.VisibilityTypes.Get(ctx, vt.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.WithinDuration(t, created, got.CreatedAt, time.Second)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.VisibilityTypes.Update(context.Background(), &models.VisibilityType{ID: "nope", Name: "x"})
	assert.True(t, errors.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	d := &models.DisplayType{Name: "Grid", Columns: 3}
	require.NoError(t, s.DisplayTypes.Create(ctx, d))
	require.NoError(t, s.DisplayTypes.Delete(ctx, d.ID))

	_, err := s.DisplayTypes.Get(ctx, d.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(s.DisplayTypes.Delete(ctx, d.ID)))
}

func TestJSONColumnsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m := &models.CategoryModel{Name: "Product", Fields: []models.FieldDescriptor{
		{Name: "price", Type: models.FieldTypeNumber, Required: true},
	}}
	require.NoError(t, s.CategoryModels.Create(ctx, m))

	bf := &models.BusinessField{
		Name: "Industry", Type: models.FieldTypeText, Category: models.BusinessCategoryBasic,
		Options: models.StringArray{"Retail", "Services"}, Validation: models.JSONB{"max": float64(40)},
	}
	require.NoError(t, s.BusinessFields.Create(ctx, bf))

	inst := &models.BusinessFieldInstance{Name: "Industry", TemplateFieldID: bf.ID, Value: "Retail"}
	require.NoError(t, s.BusinessFieldInstances.Create(ctx, inst))

	gotModel, err := s.CategoryModels.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Fields, gotModel.Fields)

	gotField, err := s.BusinessFields.Get(ctx, bf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringArray{"Retail", "Services"}, gotField.Options)
	assert.Equal(t, float64(40), gotField.Validation["max"])

	gotInst, err := s.BusinessFieldInstances.Get(ctx, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retail", gotInst.Value)
}

func TestNameTakenIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h := &models.SocialHandle{Name: "Instagram"}
	require.NoError(t, s.SocialHandles.Create(ctx, h))

	taken, err := s.SocialHandles.NameTaken(ctx, " instagram ", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.SocialHandles.NameTaken(ctx, "INSTAGRAM", h.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestDuplicateSocialHandleIsConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SocialHandles.Create(ctx, &models.SocialHandle{Name: "Twitter"}))
	err := s.SocialHandles.Create(ctx, &models.SocialHandle{Name: "twitter"})
	var ce *errors.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestSeedOnlyFillsEmptyCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PricingModels.Create(ctx, &models.PricingModel{Name: "Custom", Price: 5}))
	require.NoError(t, s.Seed(ctx, discardLogger()))
	require.NoError(t, s.Seed(ctx, discardLogger()))

	pricing, err := s.PricingModels.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pricing, 1)

	fields, err := s.BusinessFields.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fields, len(models.SampleBusinessFields()))
	assert.NotEqual(t, "1", fields[0].ID)
}
