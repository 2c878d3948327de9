package console

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(lines ...string) (*prompter, *bytes.Buffer) {
	var out bytes.Buffer
	in := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	return &prompter{in: in, out: &out, r: newRenderer(&out)}, &out
}

func TestFillPricingModel(t *testing.T) {
	form := models.PricingModel{Currency: "USD", Interval: "monthly", Active: true, Features: models.StringArray{"api"}}
	// name, description, type, price, currency, interval, features, active
	p, out := newPrompter("Pro", "", "recurring", "abc", "29.5", "", "-", "a, b ,,c", "no")

	require.NoError(t, p.fill(&form, nil))
	assert.Equal(t, "Pro", form.Name)
	assert.Equal(t, 29.5, form.Price)
	assert.Equal(t, "USD", form.Currency)
	assert.Empty(t, form.Interval)
	assert.Equal(t, models.StringArray{"a", "b", "c"}, form.Features)
	assert.False(t, form.Active)
	assert.Contains(t, out.String(), `"abc" is not a number`)
	assert.Contains(t, out.String(), "features [api]: ")
	assert.NotContains(t, out.String(), "created_at")
}

func TestFillRejectsUnknownChoice(t *testing.T) {
	var form models.VisibilitySetting
	form.ApplyDefaults()
	// category_id, visibility_status (bad, then good), start_date (bad, then good), end_date, rules
	p, out := newPrompter("cat-1", "sideways", "hidden", "next week", "2026-03-01", "", `{"region":"EU"}`)

	require.NoError(t, p.fill(&form, nil))
	assert.Equal(t, "cat-1", form.CategoryID)
	assert.Equal(t, models.VisibilityHidden, form.VisibilityStatus)
	require.NotNil(t, form.StartDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *form.StartDate)
	assert.Nil(t, form.EndDate)
	assert.Equal(t, "EU", form.Rules["region"])
	assert.Contains(t, out.String(), "visibility_status (visible|hidden|private|public)")
	assert.Contains(t, out.String(), "choose one of visible, hidden, private, public")
	assert.Contains(t, out.String(), "enter a date as YYYY-MM-DD")
}

func TestFillSkipsNamedFields(t *testing.T) {
	form := models.SocialHandle{Name: "GitHub", IconImage: "data:image/png;base64,AA=="}
	p, out := newPrompter("", "", "", "", "")

	require.NoError(t, p.fill(&form, map[string]bool{"icon_image": true}))
	assert.Equal(t, "GitHub", form.Name)
	assert.Equal(t, "data:image/png;base64,AA==", form.IconImage)
	assert.NotContains(t, out.String(), "icon_image")
}

func TestFillStopsAtEndOfInput(t *testing.T) {
	var form models.DisplayType
	p, _ := newPrompter("Grid")

	assert.Error(t, p.fill(&form, nil))
	assert.Equal(t, "Grid", form.Name)
}

func TestSetValueInterface(t *testing.T) {
	var inst models.BusinessFieldInstance
	fv := reflect.ValueOf(&inst).Elem().FieldByName("Value")

	require.NoError(t, setValue(fv, "42"))
	assert.Equal(t, float64(42), inst.Value)
	assert.Equal(t, "42", formatValue(fv))

	require.NoError(t, setValue(fv, "plain text"))
	assert.Equal(t, "plain text", inst.Value)

	require.NoError(t, setValue(fv, clearValue))
	assert.Nil(t, inst.Value)
	assert.Empty(t, formatValue(fv))
}

func TestConfirm(t *testing.T) {
	p, out := newPrompter("y", "YES", "", "nope")
	assert.True(t, p.Confirm("Sure?"))
	assert.True(t, p.Confirm("Sure?"))
	assert.False(t, p.Confirm("Sure?"))
	assert.False(t, p.Confirm("Sure?"))
	assert.False(t, p.Confirm("Sure?"), "end of input is no")
	assert.Contains(t, out.String(), "Sure? (y/N): ")
}

func TestEditModelFields(t *testing.T) {
	form := models.CategoryModel{Name: "Product", Fields: []models.FieldDescriptor{
		{Name: "sku", Type: models.FieldTypeText},
		{Name: "weight", Type: models.FieldTypeNumber},
	}}
	p, out := newPrompter(
		"9", // no such field
		"1", // drop sku
		"",  // keep the rest
		"launch", "calendar", "date", "y", "-",
		"",
	)

	require.NoError(t, p.editModelFields(&form))
	assert.Contains(t, out.String(), "no field 9")
	assert.Equal(t, []models.FieldDescriptor{
		{Name: "weight", Type: models.FieldTypeNumber},
		{Name: "launch", Type: models.FieldTypeDate, Required: true},
	}, form.Fields)
}

func TestAskIcon(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o600))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))

	var form models.SocialHandle
	p, out := newPrompter(filepath.Join(dir, "missing.png"), txt, png)
	require.NoError(t, p.askIcon(&form))
	assert.True(t, strings.HasPrefix(form.IconImage, "data:image/png;base64,"))
	assert.Contains(t, out.String(), panel.ErrNotImage.Error())

	p, _ = newPrompter("-")
	require.NoError(t, p.askIcon(&form))
	assert.Empty(t, form.IconImage)
}

func TestLoadIconRejectsLargeFiles(t *testing.T) {
	big := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(big, make([]byte, panel.MaxIconSize+1), 0o600))

	_, err := loadIcon(big)
	assert.ErrorIs(t, err, panel.ErrIconTooLarge)
}
