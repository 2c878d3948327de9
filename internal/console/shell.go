// Package console is the terminal front end of the taxonomy panels. It mounts
// one panel at a time, prints its counters and records, and drives the
// create/edit/delete flows through prompted forms.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/panel"
)

var (
	errQuit       = errors.New("quit")
	errNoPanel    = errors.New("no panel mounted; type 'use <panel>'")
	errUnknownCmd = errors.New("unknown command; type 'help'")
)

const helpText = `Commands:
  panels                         list the panels
  use <panel>                    mount a panel and load it
  list                           show the records of the mounted panel
  summary                        show the counters of the mounted panel
  reload                         fetch the mounted panel again
  new                            create a record
  edit <id>                      edit a record
  delete <id>                    delete a record
  view overview|manage|instances switch the business-fields view
  instances                      same as 'view instances'
  duplicate <id>                 copy a category model
  select <id>... / deselect <id>...
                                 mark categories for a bulk update
  bulk <status>                  set visibility on the marked categories
  simple-add <template-id> <name>
                                 add a business field copied from a template
  icon <id> <path>               upload an icon for a social handle
  quit                           leave the console`

// Shell is the interactive console
type Shell struct {
	log    *slog.Logger
	out    io.Writer
	r      renderer
	prompt *prompter

	mounts  []mount
	current mount

	categories *panel.Categories
	catModels  *panel.CategoryModels
	visibility *panel.Visibility
	business   *panel.BusinessFields
	social     *panel.SocialHandles
}

// New creates a shell over api reading commands and form answers from in
func New(api *client.API, in io.Reader, out io.Writer, log *slog.Logger) *Shell {
	r := newRenderer(out)
	s := &Shell{
		log:        log,
		out:        out,
		r:          r,
		prompt:     &prompter{in: bufio.NewScanner(in), out: out, r: r},
		categories: panel.NewCategories(api, log),
		catModels:  panel.NewCategoryModels(api, log),
		visibility: panel.NewVisibility(api, log),
		business:   panel.NewBusinessFields(api, log),
		social:     panel.NewSocialHandles(api, log),
	}
	s.mounts = []mount{
		s.categoriesMount(),
		s.categoryModelsMount(),
		s.visibilityMount(),
		visibilityTypesMount(panel.NewVisibilityTypes(api, log)),
		s.businessMount(),
		pricingMount(panel.NewPricing(api, log)),
		s.socialMount(),
		displayMount(panel.NewDisplay(api, log)),
		&signupMount{s: panel.NewSignup()},
	}
	return s
}

// Run reads commands until quit or end of input. Command failures are
// printed as alerts and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, s.r.title.Render("Category Management Console"))
	fmt.Fprintln(s.out, s.r.muted.Render("Type 'help' for commands, 'panels' to list panels."))
	for {
		fmt.Fprint(s.out, s.promptText())
		if !s.prompt.in.Scan() {
			return s.prompt.in.Err()
		}
		err := s.Exec(ctx, s.prompt.in.Text())
		switch {
		case errors.Is(err, errQuit), errors.Is(err, io.EOF):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			s.alert(err)
		}
	}
}

func (s *Shell) promptText() string {
	if s.current == nil {
		return "taxonomy> "
	}
	return fmt.Sprintf("taxonomy[%s]> ", s.current.name())
}

// Exec runs one command line
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "panels":
		s.listPanels()
		return nil
	case "use":
		if len(args) != 1 {
			return errors.New("usage: use <panel>")
		}
		return s.use(ctx, args[0])
	}

	if s.current == nil {
		return errNoPanel
	}
	m := s.current

	switch cmd {
	case "list":
		s.printList(m)
	case "summary":
		s.printSummary(m)
	case "reload":
		if err := m.load(ctx); err != nil && !m.usingFallback() {
			return err
		}
		s.show(m)
	case "new":
		if err := m.create(ctx, s.prompt); err != nil {
			return err
		}
		s.saved(m)
	case "edit":
		id, err := oneArg(args, "edit <id>")
		if err != nil {
			return err
		}
		if err := m.edit(ctx, s.prompt, id); err != nil {
			return err
		}
		s.saved(m)
	case "delete":
		id, err := oneArg(args, "delete <id>")
		if err != nil {
			return err
		}
		sent, err := m.remove(ctx, id, s.prompt)
		if err != nil {
			return err
		}
		if !sent {
			fmt.Fprintln(s.out, s.r.muted.Render("Cancelled."))
			return nil
		}
		s.saved(m)
	case "view":
		name, err := oneArg(args, "view overview|manage|instances")
		if err != nil {
			return err
		}
		v, ok := panel.ParseView(name)
		if !ok {
			return fmt.Errorf("unknown view %q", name)
		}
		return s.setView(v)
	case "instances":
		return s.setView(panel.ViewInstances)
	case "duplicate":
		return s.duplicate(ctx, args)
	case "select", "deselect":
		return s.mark(cmd == "select", args)
	case "bulk":
		return s.bulk(ctx, args)
	case "simple-add":
		return s.simpleAdd(ctx, args)
	case "icon":
		return s.uploadIcon(ctx, args)
	default:
		return errUnknownCmd
	}
	return nil
}

func (s *Shell) use(ctx context.Context, name string) error {
	var target mount
	for _, m := range s.mounts {
		if m.name() == name {
			target = m
			break
		}
	}
	if target == nil {
		return fmt.Errorf("unknown panel %q; type 'panels'", name)
	}
	s.current = target

	err := target.load(ctx)
	if err != nil && !target.usingFallback() {
		return err
	}
	s.show(target)
	return nil
}

func (s *Shell) listPanels() {
	for _, m := range s.mounts {
		marker := "  "
		if m == s.current {
			marker = "* "
		}
		fmt.Fprintln(s.out, marker+m.name())
	}
}

func (s *Shell) show(m mount) {
	s.printSummary(m)
	s.printList(m)
}

func (s *Shell) printSummary(m mount) {
	fmt.Fprintln(s.out, s.r.title.Render(m.name()))
	fmt.Fprintln(s.out, s.r.cards(m.cards()))
}

func (s *Shell) printList(m mount) {
	if m.usingFallback() {
		fmt.Fprintln(s.out, s.r.alert.Render("! backend unavailable, showing sample data"))
	}
	fmt.Fprintln(s.out, m.render(s.r))
}

func (s *Shell) saved(m mount) {
	fmt.Fprintln(s.out, s.r.success.Render("Saved."))
	s.printList(m)
}

func (s *Shell) alert(err error) {
	fmt.Fprintln(s.out, s.r.alert.Render("! "+alertText(err)))
}

// requirePanel fails unless the panel called name is mounted
func (s *Shell) requirePanel(name string) error {
	if s.current == nil || s.current.name() != name {
		return fmt.Errorf("only available on the %s panel", name)
	}
	return nil
}

func (s *Shell) setView(v panel.View) error {
	if err := s.requirePanel(s.business.Name()); err != nil {
		return err
	}
	s.business.SetView(v)
	s.show(s.current)
	return nil
}

func (s *Shell) duplicate(ctx context.Context, args []string) error {
	if err := s.requirePanel(s.catModels.Name()); err != nil {
		return err
	}
	id, err := oneArg(args, "duplicate <id>")
	if err != nil {
		return err
	}
	if err := s.catModels.Duplicate(ctx, id); err != nil {
		return err
	}
	s.saved(s.current)
	return nil
}

func (s *Shell) mark(on bool, args []string) error {
	if err := s.requirePanel(s.visibility.Name()); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: select|deselect <category-id>...")
	}
	for _, id := range args {
		if !on {
			s.visibility.Deselect(id)
			continue
		}
		if err := s.visibility.Select(id); err != nil {
			return fmt.Errorf("category %s: %w", id, err)
		}
	}
	fmt.Fprintf(s.out, "%d selected\n", len(s.visibility.Selection()))
	return nil
}

func (s *Shell) bulk(ctx context.Context, args []string) error {
	if err := s.requirePanel(s.visibility.Name()); err != nil {
		return err
	}
	status, err := oneArg(args, "bulk visible|hidden|private|public")
	if err != nil {
		return err
	}
	n := len(s.visibility.Selection())
	if err := s.visibility.BulkUpdate(ctx, models.VisibilityStatus(status)); err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.r.success.Render(fmt.Sprintf("Updated %d categories to %s.", n, status)))
	s.printList(s.current)
	return nil
}

func (s *Shell) simpleAdd(ctx context.Context, args []string) error {
	if err := s.requirePanel(s.business.Name()); err != nil {
		return err
	}
	if len(args) == 0 {
		return panel.ErrTemplateRequired
	}
	if err := s.business.SimpleAdd(ctx, strings.Join(args[1:], " "), args[0]); err != nil {
		return err
	}
	s.saved(s.current)
	return nil
}

func (s *Shell) uploadIcon(ctx context.Context, args []string) error {
	if err := s.requirePanel(s.social.Name()); err != nil {
		return err
	}
	if len(args) != 2 {
		return errors.New("usage: icon <id> <path>")
	}
	form, err := s.social.OpenEdit(args[0])
	if err != nil {
		return err
	}
	uri, err := loadIcon(args[1])
	if err == nil {
		form.IconImage = uri
		err = s.social.Submit(ctx, form)
	}
	if err != nil {
		s.social.CloseModal()
		return err
	}
	s.saved(s.current)
	return nil
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: " + usage)
	}
	return args[0], nil
}

func (s *Shell) categoriesMount() mount {
	c := s.categories
	return &crudMount[models.Category, *models.Category]{
		panel:  c.Panel,
		loadFn: c.Load,
		cardsFn: func() []card {
			sum := c.Summary()
			return []card{
				intCard("Total Categories", sum.Total),
				intCard("Visible", sum.Visible),
				intCard("Hidden", sum.Hidden),
				intCard("With Models", sum.WithModel),
			}
		},
		headers: []string{"ID", "Name", "Model", "Parent", "Visibility", "Order"},
		row: func(it models.Category) []string {
			return []string{it.ID, it.Name, c.ModelName(it.ModelID), c.ParentName(it.ParentID),
				string(it.VisibilityStatus), fmt.Sprint(it.SortOrder)}
		},
		hint: func() string {
			return "models: " + orDash(idList(c.Models(),
				func(m models.CategoryModel) string { return m.ID },
				func(m models.CategoryModel) string { return m.Name })) +
				"\nparents: " + orDash(idList(c.ParentOptions(),
				func(p models.Category) string { return p.ID },
				func(p models.Category) string { return p.Name }))
		},
	}
}

func (s *Shell) categoryModelsMount() mount {
	m := s.catModels
	return &crudMount[models.CategoryModel, *models.CategoryModel]{
		panel: m.Panel,
		cardsFn: func() []card {
			sum := m.Summary()
			return []card{
				intCard("Total Models", sum.Total),
				intCard("With Fields", sum.WithFields),
				intCard("Total Fields", sum.TotalFields),
				intCard("Required Fields", sum.RequiredFields),
			}
		},
		headers: []string{"ID", "Name", "Description", "Fields", "Required"},
		row: func(it models.CategoryModel) []string {
			return []string{it.ID, it.Name, orDash(it.Description), fmt.Sprint(len(it.Fields)), fmt.Sprint(it.RequiredFieldCount())}
		},
		skip:  map[string]bool{"fields": true},
		extra: func(p *prompter, form *models.CategoryModel) error { return p.editModelFields(form) },
	}
}

func (s *Shell) visibilityMount() mount {
	v := s.visibility
	return &visibilityMount{
		v: v,
		crudMount: &crudMount[models.VisibilitySetting, *models.VisibilitySetting]{
			panel:  v.Panel,
			loadFn: v.Load,
			cardsFn: func() []card {
				sum := v.Summary()
				return []card{
					intCard("Settings", sum.Settings),
					intCard("Visible", sum.Visible),
					intCard("Hidden", sum.Hidden),
					intCard("Scheduled", sum.Scheduled),
				}
			},
			headers: []string{"ID", "Category", "Status", "Start", "End"},
			row: func(it models.VisibilitySetting) []string {
				return []string{it.ID, v.CategoryName(it.CategoryID), string(it.VisibilityStatus),
					dateOrDash(it.StartDate), dateOrDash(it.EndDate)}
			},
			hint: func() string {
				return "categories: " + orDash(idList(v.Categories(),
					func(c models.Category) string { return c.ID },
					func(c models.Category) string { return c.Name }))
			},
		},
	}
}

func visibilityTypesMount(v *panel.VisibilityTypes) mount {
	return &crudMount[models.VisibilityType, *models.VisibilityType]{
		panel: v.Panel,
		cardsFn: func() []card {
			sum := v.Summary()
			return []card{intCard("Total Types", sum.Total), intCard("Active", sum.Active)}
		},
		headers: []string{"ID", "Name", "Description", "Active"},
		row: func(it models.VisibilityType) []string {
			return []string{it.ID, it.Name, orDash(it.Description), yesNo(it.Active)}
		},
	}
}

func (s *Shell) businessMount() mount {
	b := s.business
	return &businessMount{
		fields: b,
		templates: &crudMount[models.BusinessField, *models.BusinessField]{
			panel:  b.Panel,
			loadFn: b.Load,
			cardsFn: func() []card {
				sum := b.Summary()
				return []card{
					intCard("Total Fields", sum.Total),
					intCard("Active", sum.Active),
					intCard("Required", sum.Required),
					intCard("Categories", sum.Categories),
				}
			},
			headers: []string{"ID", "Name", "Type", "Category", "Required", "Order", "Active"},
			row: func(it models.BusinessField) []string {
				return []string{it.ID, it.Name, string(it.Type), it.Category.Label(),
					yesNo(it.Required), fmt.Sprint(it.Order), yesNo(it.Active)}
			},
		},
		instances: &crudMount[models.BusinessFieldInstance, *models.BusinessFieldInstance]{
			panel:  b.Instances,
			loadFn: b.Load,
			cardsFn: func() []card {
				sum := b.InstanceSummary()
				return []card{intCard("Total Instances", sum.Total), intCard("Active", sum.Active)}
			},
			headers: []string{"ID", "Name", "Template", "Value", "Active"},
			row: func(it models.BusinessFieldInstance) []string {
				return []string{it.ID, it.Name, b.TemplateName(it.TemplateFieldID), valueText(it.Value), yesNo(it.Active)}
			},
			hint: func() string {
				return "templates: " + orDash(idList(b.Items(),
					func(f models.BusinessField) string { return f.ID },
					func(f models.BusinessField) string { return f.Name }))
			},
		},
	}
}

func pricingMount(p *panel.Pricing) mount {
	return &crudMount[models.PricingModel, *models.PricingModel]{
		panel: p.Panel,
		cardsFn: func() []card {
			sum := p.Summary()
			return []card{
				intCard("Total Models", sum.Total),
				intCard("Recurring", sum.Recurring),
				intCard("Active", sum.Active),
			}
		},
		headers: []string{"ID", "Name", "Type", "Price", "Interval", "Features", "Active"},
		row: func(it models.PricingModel) []string {
			return []string{it.ID, it.Name, it.Type, fmt.Sprintf("%.2f %s", it.Price, it.Currency),
				orDash(it.Interval), fmt.Sprint(len(it.Features)), yesNo(it.Active)}
		},
	}
}

func (s *Shell) socialMount() mount {
	h := s.social
	return &crudMount[models.SocialHandle, *models.SocialHandle]{
		panel: h.Panel,
		cardsFn: func() []card {
			sum := h.Summary()
			return []card{
				intCard("Total Handles", sum.Total),
				intCard("Active", sum.Active),
				{label: "Followers", value: fmt.Sprint(sum.Followers)},
				intCard("With Icons", sum.WithIcon),
			}
		},
		headers: []string{"ID", "Name", "Handle", "URL", "Followers", "Icon", "Active"},
		row: func(it models.SocialHandle) []string {
			return []string{it.ID, it.Name, orDash(it.Handle), orDash(it.URL), fmt.Sprint(it.Followers),
				yesNo(it.IconImage != ""), yesNo(it.Active)}
		},
		skip:  map[string]bool{"icon_image": true},
		extra: func(p *prompter, form *models.SocialHandle) error { return p.askIcon(form) },
	}
}

func displayMount(d *panel.Display) mount {
	return &crudMount[models.DisplayType, *models.DisplayType]{
		panel: d.Panel,
		cardsFn: func() []card {
			sum := d.Summary()
			return []card{
				intCard("Total Types", sum.Total),
				intCard("Active", sum.Active),
				intCard("Responsive", sum.Responsive),
			}
		},
		headers: []string{"ID", "Name", "Category", "Columns", "Responsive", "Active"},
		row: func(it models.DisplayType) []string {
			return []string{it.ID, it.Name, orDash(it.TypeCategory), fmt.Sprint(it.Columns), yesNo(it.Responsive), yesNo(it.Active)}
		},
	}
}
