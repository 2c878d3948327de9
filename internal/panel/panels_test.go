package panel

import (
	"context"
	"net/http"
	"testing"

	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCategoriesReferenceLabels(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()

	m := &models.CategoryModel{Name: "Product"}
	require.NoError(t, b.store.CategoryModels.Create(ctx, m))
	parent := &models.Category{Name: "Root", VisibilityStatus: models.VisibilityVisible, ModelID: strPtr(m.ID)}
	require.NoError(t, b.store.Categories.Create(ctx, parent))
	child := &models.Category{
		Name: "Leaf", VisibilityStatus: models.VisibilityHidden, SortOrder: 1,
		ParentID: strPtr(parent.ID), ModelID: strPtr("deleted-model"),
	}
	require.NoError(t, b.store.Categories.Create(ctx, child))

	p := NewCategories(b.api, discard())
	require.NoError(t, p.Load(ctx))

	assert.Equal(t, "Product", p.ModelName(strPtr(m.ID)))
	assert.Equal(t, NoModelLabel, p.ModelName(strPtr("deleted-model")))
	assert.Equal(t, NoModelLabel, p.ModelName(nil))
	assert.Equal(t, "Root", p.ParentName(strPtr(parent.ID)))
	assert.Equal(t, NoParentLabel, p.ParentName(nil))
	assert.Equal(t, UnknownCategoryLabel, p.ParentName(strPtr("gone")))

	assert.Equal(t, summary.Categories{Total: 2, Visible: 1, Hidden: 1, WithModel: 2}, p.Summary())
	assert.Len(t, p.Models(), 1)

	_, err := p.OpenEdit(child.ID)
	require.NoError(t, err)
	opts := p.ParentOptions()
	require.Len(t, opts, 1)
	assert.Equal(t, parent.ID, opts[0].ID)
}

func TestCategorySubmitRefetchesOnlyCategories(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	p := NewCategories(b.api, discard())
	require.NoError(t, p.Load(ctx))

	form := p.OpenCreate()
	form.Name = "Shoes"
	b.reset()
	require.NoError(t, p.Submit(ctx, form))
	assert.Equal(t, 1, b.count("GET /api/categories"))
	assert.Equal(t, 0, b.count("GET /api/category-models"))
}

func TestDuplicateModel(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	src := &models.CategoryModel{Name: "Product", Description: "Sellable", Fields: []models.FieldDescriptor{
		{Name: "price", Type: models.FieldTypeNumber, Required: true},
	}}
	require.NoError(t, b.store.CategoryModels.Create(ctx, src))

	p := NewCategoryModels(b.api, discard())
	require.NoError(t, p.Load(ctx))

	b.reset()
	require.NoError(t, p.Duplicate(ctx, src.ID))
	assert.Equal(t, 1, b.count("POST /api/category-models"))
	assert.Equal(t, 1, b.count("GET /api/category-models"))

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Product (Copy)", items[1].Name)
	assert.Equal(t, "Sellable", items[1].Description)
	assert.Equal(t, src.Fields, items[1].Fields)
	assert.Equal(t, summary.CategoryModels{Total: 2, WithFields: 2, TotalFields: 2, RequiredFields: 2}, p.Summary())

	assert.ErrorIs(t, p.Duplicate(ctx, "missing"), ErrNotFound)
}

func TestFormFieldHelpers(t *testing.T) {
	form := models.CategoryModel{}
	assert.False(t, AddField(&form, models.FieldDescriptor{Name: "  "}))
	assert.True(t, AddField(&form, models.FieldDescriptor{Name: "a"}))
	assert.True(t, AddField(&form, models.FieldDescriptor{Name: "b", Type: models.FieldTypeDate}))
	require.Len(t, form.Fields, 2)
	assert.Equal(t, models.FieldTypeText, form.Fields[0].Type)

	assert.False(t, RemoveField(&form, 5))
	assert.True(t, RemoveField(&form, 0))
	require.Len(t, form.Fields, 1)
	assert.Equal(t, "b", form.Fields[0].Name)
}

func seedCategories(t *testing.T, b *backend, names ...string) []string {
	t.Helper()
	var ids []string
	for i, n := range names {
		c := &models.Category{Name: n, VisibilityStatus: models.VisibilityVisible, SortOrder: i}
		require.NoError(t, b.store.Categories.Create(context.Background(), c))
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBulkUpdateEmptySelection(t *testing.T) {
	b := newBackend(t)
	seedCategories(t, b, "A")
	p := NewVisibility(b.api, discard())
	require.NoError(t, p.Load(context.Background()))

	b.reset()
	err := p.BulkUpdate(context.Background(), models.VisibilityHidden)
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, 0, b.total())
}

func TestBulkUpdate(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	ids := seedCategories(t, b, "A", "B", "C")
	require.NoError(t, b.store.CategoryVisibility.Create(ctx, &models.VisibilitySetting{
		CategoryID: ids[0], VisibilityStatus: models.VisibilityVisible,
	}))

	p := NewVisibility(b.api, discard())
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, "A", p.CategoryName(ids[0]))
	assert.Equal(t, UnknownCategoryLabel, p.CategoryName("gone"))

	require.NoError(t, p.Select(ids[2]))
	require.NoError(t, p.Select(ids[0]))
	assert.ErrorIs(t, p.Select("gone"), ErrNotFound)
	assert.Equal(t, []string{ids[0], ids[2]}, p.Selection())

	b.reset()
	require.NoError(t, p.BulkUpdate(ctx, models.VisibilityPrivate))

	assert.Equal(t, 2, b.count("PUT /api/categories/"))
	assert.Equal(t, 1, b.count("GET /api/categories"))
	assert.Equal(t, 1, b.count("GET /api/category-visibility"))
	assert.Empty(t, p.Selection())

	for _, c := range p.Categories() {
		if c.ID == ids[1] {
			assert.Equal(t, models.VisibilityVisible, c.VisibilityStatus)
		} else {
			assert.Equal(t, models.VisibilityPrivate, c.VisibilityStatus)
		}
	}
	assert.Equal(t, summary.Visibility{Settings: 1, Visible: 1, Hidden: 2}, p.Summary())
}

func TestBulkUpdateFailsAsAWhole(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	ids := seedCategories(t, b, "A", "B")

	p := NewVisibility(b.api, discard())
	require.NoError(t, p.Load(ctx))
	require.NoError(t, p.Select(ids[0]))
	require.NoError(t, p.Select(ids[1]))

	b.fail("PUT /api/categories/"+ids[1], http.StatusInternalServerError)
	b.reset()
	err := p.BulkUpdate(ctx, models.VisibilityHidden)
	require.Error(t, err)

	assert.Equal(t, 2, b.count("PUT /api/categories/"))
	assert.Equal(t, 0, b.count("GET"))
	assert.Len(t, p.Selection(), 2)

	// No rollback: the first category was updated
	got, err := b.store.Categories.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityHidden, got.VisibilityStatus)
}

func TestBulkUpdateRejectsUnknownStatus(t *testing.T) {
	b := newBackend(t)
	p := NewVisibility(b.api, discard())
	assert.Error(t, p.BulkUpdate(context.Background(), "secret"))
	assert.Equal(t, 0, b.total())
}

func TestSimpleAddCopiesTemplate(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	tmpl := &models.BusinessField{
		Name: "Industry", Type: models.FieldTypeText, Required: true, Category: models.BusinessCategoryBasic,
		Order: 1, Validation: models.JSONB{"max": float64(40)}, Options: models.StringArray{"Retail"}, Active: false,
	}
	require.NoError(t, b.store.BusinessFields.Create(ctx, tmpl))
	other := &models.BusinessField{Name: "VAT", Type: models.FieldTypeNumber, Category: models.BusinessCategoryLegal, Order: 2}
	require.NoError(t, b.store.BusinessFields.Create(ctx, other))

	p := NewBusinessFields(b.api, discard())
	require.NoError(t, p.Load(ctx))

	b.reset()
	require.NoError(t, p.SimpleAdd(ctx, "Sector", tmpl.ID))
	assert.Equal(t, 1, b.count("POST /api/business-fields"))
	assert.Equal(t, 1, b.count("GET /api/business-fields"))

	var added models.BusinessField
	for _, f := range p.Items() {
		if f.Name == "Sector" {
			added = f
		}
	}
	require.NotEmpty(t, added.ID)
	assert.NotEqual(t, tmpl.ID, added.ID)
	assert.Equal(t, tmpl.Type, added.Type)
	assert.True(t, added.Required)
	assert.Equal(t, tmpl.Category, added.Category)
	assert.Equal(t, tmpl.Validation, added.Validation)
	assert.Equal(t, tmpl.Options, added.Options)
	assert.Equal(t, 3, added.Order)
	assert.True(t, added.Active)
}

func TestSimpleAddNeedsTemplate(t *testing.T) {
	b := newBackend(t)
	p := NewBusinessFields(b.api, discard())
	require.NoError(t, p.Load(context.Background()))

	b.reset()
	assert.ErrorIs(t, p.SimpleAdd(context.Background(), "x", ""), ErrTemplateRequired)
	assert.ErrorIs(t, p.SimpleAdd(context.Background(), "x", "missing"), ErrTemplateRequired)
	assert.Equal(t, 0, b.total())
}

func TestBusinessFieldsInstancesAndLabels(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	tmpl := &models.BusinessField{Name: "Industry", Type: models.FieldTypeText, Category: models.BusinessCategoryBasic, Active: true}
	require.NoError(t, b.store.BusinessFields.Create(ctx, tmpl))
	require.NoError(t, b.store.BusinessFieldInstances.Create(ctx, &models.BusinessFieldInstance{
		Name: "Shop industry", TemplateFieldID: tmpl.ID, Value: "Retail", Active: true,
	}))
	require.NoError(t, b.store.BusinessFieldInstances.Create(ctx, &models.BusinessFieldInstance{
		Name: "Orphan", TemplateFieldID: "gone",
	}))

	p := NewBusinessFields(b.api, discard())
	require.NoError(t, p.Load(ctx))

	assert.Len(t, p.InstancesOf(tmpl.ID), 1)
	assert.Equal(t, "Industry", p.TemplateName(tmpl.ID))
	assert.Equal(t, UnknownTemplateLabel, p.TemplateName("gone"))
	assert.Equal(t, summary.Toggles{Total: 2, Active: 1}, p.InstanceSummary())
	assert.Len(t, p.Groups(), 1)

	assert.Equal(t, ViewOverview, p.View())
	p.SetView(ViewInstances)
	assert.Equal(t, ViewInstances, p.View())
}

func TestBusinessFieldsFallback(t *testing.T) {
	b := newBackend(t)
	b.fail("GET /api/business-fields", http.StatusInternalServerError)

	p := NewBusinessFields(b.api, discard())
	assert.Error(t, p.Load(context.Background()))
	assert.True(t, p.UsingFallback())
	assert.Equal(t, summary.BusinessFields{Total: 2, Active: 2, Required: 2, Categories: 2}, p.Summary())
}

func TestSocialDuplicateNameMakesNoRequest(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	existing := &models.SocialHandle{Name: "Instagram", Active: true}
	require.NoError(t, b.store.SocialHandles.Create(ctx, existing))

	p := NewSocialHandles(b.api, discard())
	require.NoError(t, p.Load(ctx))

	form := p.OpenCreate()
	form.Name = "INSTAGRAM"
	b.reset()
	assert.ErrorIs(t, p.Submit(ctx, form), ErrDuplicateName)
	assert.Equal(t, 0, b.total())
	assert.True(t, p.ModalOpen())

	// Editing a handle may keep its own name
	form, err := p.OpenEdit(existing.ID)
	require.NoError(t, err)
	form.Name = "instagram"
	form.Followers = 100
	require.NoError(t, p.Submit(ctx, form))
	assert.Equal(t, summary.Social{Total: 1, Active: 1, Followers: 100}, p.Summary())
}

func TestIconDataURI(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	uri, err := IconDataURI("logo.png", png)
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	uri, err = IconDataURI("logo", png)
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	_, err = IconDataURI("notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = IconDataURI("big.png", make([]byte, MaxIconSize+1))
	assert.ErrorIs(t, err, ErrIconTooLarge)
}

func TestSignup(t *testing.T) {
	s := NewSignup()
	assert.Len(t, s.Items(), 3)
	assert.Equal(t, summary.Signup{Total: 3, Active: 3, AutoApprove: 1, VerificationRequired: 2}, s.Summary())
}
