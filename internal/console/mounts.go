package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/panel"
)

var (
	errReadOnly  = errors.New("this panel is read-only")
	errDiscarded = errors.New("form discarded")
)

// mount is a panel as the shell drives it
type mount interface {
	name() string
	load(ctx context.Context) error
	usingFallback() bool
	cards() []card
	render(r renderer) string
	create(ctx context.Context, p *prompter) error
	edit(ctx context.Context, p *prompter, id string) error
	remove(ctx context.Context, id string, c panel.Confirmer) (bool, error)
}

// crudMount drives one generic panel through prompted forms
type crudMount[T any, P interface {
	*T
	models.Record
}] struct {
	panel   *panel.Panel[T, P]
	loadFn  func(context.Context) error
	cardsFn func() []card
	headers []string
	row     func(T) []string
	// skip names JSON fields the generic prompts leave to extra
	skip  map[string]bool
	hint  func() string
	extra func(p *prompter, form *T) error
}

func (m *crudMount[T, P]) name() string { return m.panel.Name() }

func (m *crudMount[T, P]) load(ctx context.Context) error {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return m.panel.Load(ctx)
}

func (m *crudMount[T, P]) usingFallback() bool { return m.panel.UsingFallback() }

func (m *crudMount[T, P]) cards() []card { return m.cardsFn() }

func (m *crudMount[T, P]) render(r renderer) string {
	items := m.panel.Items()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, m.row(it))
	}
	return r.table(m.headers, rows)
}

func (m *crudMount[T, P]) create(ctx context.Context, p *prompter) error {
	return m.runForm(ctx, p, m.panel.OpenCreate())
}

func (m *crudMount[T, P]) edit(ctx context.Context, p *prompter, id string) error {
	form, err := m.panel.OpenEdit(id)
	if err != nil {
		return err
	}
	return m.runForm(ctx, p, form)
}

func (m *crudMount[T, P]) remove(ctx context.Context, id string, c panel.Confirmer) (bool, error) {
	if _, ok := m.panel.Find(id); !ok {
		return false, panel.ErrNotFound
	}
	return m.panel.Delete(ctx, id, c)
}

// runForm prompts until the panel accepts the form. A rejected form keeps
// the modal open and the operator may edit it again.
func (m *crudMount[T, P]) runForm(ctx context.Context, p *prompter, form T) error {
	if m.hint != nil {
		if h := m.hint(); h != "" {
			fmt.Fprintln(p.out, p.r.muted.Render(h))
		}
	}
	for {
		if err := p.fill(&form, m.skip); err != nil {
			m.panel.CloseModal()
			return err
		}
		if m.extra != nil {
			if err := m.extra(p, &form); err != nil {
				m.panel.CloseModal()
				return err
			}
		}

		err := m.panel.Submit(ctx, form)
		if err == nil || !m.panel.ModalOpen() {
			// saved; a non-nil err here is the re-fetch failing
			return err
		}
		p.warn(alertText(err))
		if !p.Confirm("Edit the form again?") {
			m.panel.CloseModal()
			return errDiscarded
		}
	}
}

// visibilityMount lists the settings and the categories open for bulk update
type visibilityMount struct {
	*crudMount[models.VisibilitySetting, *models.VisibilitySetting]
	v *panel.Visibility
}

func (m *visibilityMount) render(r renderer) string {
	cats := m.v.Categories()
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		mark := "[ ]"
		if m.v.IsSelected(c.ID) {
			mark = "[x]"
		}
		rows = append(rows, []string{mark, c.ID, c.Name, string(c.VisibilityStatus)})
	}
	return m.crudMount.render(r) + "\n\n" +
		r.title.Render("Categories") + "\n" +
		r.table([]string{"Sel", "ID", "Name", "Status"}, rows)
}

// businessMount switches between templates and instances by view
type businessMount struct {
	fields    *panel.BusinessFields
	templates *crudMount[models.BusinessField, *models.BusinessField]
	instances *crudMount[models.BusinessFieldInstance, *models.BusinessFieldInstance]
}

func (m *businessMount) name() string                   { return m.fields.Name() }
func (m *businessMount) load(ctx context.Context) error { return m.fields.Load(ctx) }
func (m *businessMount) usingFallback() bool            { return m.fields.UsingFallback() }

func (m *businessMount) active() mount {
	if m.fields.View() == panel.ViewInstances {
		return m.instances
	}
	return m.templates
}

func (m *businessMount) cards() []card {
	return m.active().cards()
}

func (m *businessMount) render(r renderer) string {
	if m.fields.View() != panel.ViewOverview {
		return m.active().render(r)
	}
	groups := m.fields.Groups()
	if len(groups) == 0 {
		return r.muted.Render("(no records)")
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		rows := make([][]string, 0, len(g.Fields))
		for _, f := range g.Fields {
			rows = append(rows, []string{f.Name, string(f.Type), yesNo(f.Required), yesNo(f.Active)})
		}
		parts = append(parts, r.title.Render(g.Category.Label())+"\n"+
			r.table([]string{"Name", "Type", "Required", "Active"}, rows))
	}
	return strings.Join(parts, "\n\n")
}

func (m *businessMount) create(ctx context.Context, p *prompter) error {
	return m.active().create(ctx, p)
}

func (m *businessMount) edit(ctx context.Context, p *prompter, id string) error {
	return m.active().edit(ctx, p, id)
}

func (m *businessMount) remove(ctx context.Context, id string, c panel.Confirmer) (bool, error) {
	return m.active().remove(ctx, id, c)
}

// signupMount shows the static access tiers
type signupMount struct {
	s *panel.Signup
}

func (m *signupMount) name() string               { return m.s.Name() }
func (m *signupMount) load(context.Context) error { return nil }
func (m *signupMount) usingFallback() bool        { return false }

func (m *signupMount) cards() []card {
	s := m.s.Summary()
	return []card{
		intCard("Levels", s.Total),
		intCard("Active", s.Active),
		intCard("Auto approve", s.AutoApprove),
		intCard("Verification", s.VerificationRequired),
	}
}

func (m *signupMount) render(r renderer) string {
	levels := m.s.Items()
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{
			l.Name, fmt.Sprint(l.Level), strings.Join(l.Requirements, ", "),
			strings.Join(l.Permissions, ", "), yesNo(l.VerificationRequired), yesNo(l.AutoApprove),
		})
	}
	return r.table([]string{"Name", "Level", "Requirements", "Permissions", "Verification", "Auto"}, rows)
}

func (m *signupMount) create(context.Context, *prompter) error { return errReadOnly }

func (m *signupMount) edit(context.Context, *prompter, string) error { return errReadOnly }

func (m *signupMount) remove(context.Context, string, panel.Confirmer) (bool, error) {
	return false, errReadOnly
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func valueText(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return orDash(val)
	default:
		return fmt.Sprint(val)
	}
}

func idList[T any](items []T, id func(T) string, name func(T) string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, id(it)+"="+name(it))
	}
	return strings.Join(parts, "  ")
}
