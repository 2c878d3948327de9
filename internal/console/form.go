package console

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/aethra/taxonomy/internal/models"
	"github.com/aethra/taxonomy/internal/panel"
)

// clearValue typed at a prompt empties an optional value
const clearValue = "-"

// Keys the server owns; forms never prompt for them
var readOnlyFields = map[string]bool{"id": true, "created_at": true, "updated_at": true}

var choices = map[reflect.Type][]string{
	reflect.TypeOf(models.VisibilityStatus("")):      stringsOf(models.VisibilityStatuses),
	reflect.TypeOf(models.FieldType("")):             stringsOf(models.FieldTypes),
	reflect.TypeOf(models.BusinessFieldCategory("")): stringsOf(models.BusinessFieldCategories),
}

var timePtrType = reflect.TypeOf((*time.Time)(nil))

func stringsOf[S ~string](vs []S) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// prompter reads answers line by line
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
	r   renderer
}

// ask prints label with the current value and returns the answer, or def
// when the line is blank
func (p *prompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a y/N question. Anything but yes is no.
func (p *prompter) Confirm(question string) bool {
	answer, err := p.ask(question+" (y/N)", "")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (p *prompter) warn(msg string) {
	fmt.Fprintln(p.out, p.r.alert.Render("! "+msg))
}

// fill prompts for every exported JSON field of the struct behind v, showing
// the current value as the default. Fields named in skip are left alone.
func (p *prompter) fill(v any, skip map[string]bool) error {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" || readOnlyFields[name] || skip[name] {
			continue
		}
		if err := p.field(name, rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

// field prompts until the answer parses into fv
func (p *prompter) field(name string, fv reflect.Value) error {
	label := name
	if opts, ok := choices[fv.Type()]; ok {
		label = fmt.Sprintf("%s (%s)", name, strings.Join(opts, "|"))
	}
	for {
		answer, err := p.ask(label, formatValue(fv))
		if err != nil {
			return err
		}
		if err := setValue(fv, answer); err != nil {
			p.warn(err.Error())
			continue
		}
		return nil
	}
}

func formatValue(fv reflect.Value) string {
	if fv.Type() == timePtrType {
		if fv.IsNil() {
			return ""
		}
		return fv.Interface().(*time.Time).Format(time.DateOnly)
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String()
	case reflect.Pointer:
		if fv.IsNil() {
			return ""
		}
		return formatValue(fv.Elem())
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(fv.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(fv.Float(), 'f', -1, 64)
	case reflect.Bool:
		if fv.Bool() {
			return "y"
		}
		return "n"
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.String {
			parts := make([]string, fv.Len())
			for i := range parts {
				parts[i] = fv.Index(i).String()
			}
			return strings.Join(parts, ", ")
		}
	}
	if fv.Kind() == reflect.Interface && fv.IsNil() {
		return ""
	}
	if (fv.Kind() == reflect.Map || fv.Kind() == reflect.Slice) && fv.Len() == 0 {
		return ""
	}
	raw, err := json.Marshal(fv.Interface())
	if err != nil {
		return ""
	}
	return string(raw)
}

func setValue(fv reflect.Value, answer string) error {
	if fv.Type() == timePtrType {
		if answer == "" || answer == clearValue {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		t, err := parseDate(answer)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(&t))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		if answer == clearValue {
			answer = ""
		}
		if opts, ok := choices[fv.Type()]; ok && !contains(opts, answer) {
			return fmt.Errorf("choose one of %s", strings.Join(opts, ", "))
		}
		fv.SetString(answer)
	case reflect.Pointer:
		if fv.Type().Elem().Kind() != reflect.String {
			return nil
		}
		if answer == "" || answer == clearValue {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		s := answer
		fv.Set(reflect.ValueOf(&s))
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a whole number", answer)
		}
		fv.SetInt(n)
	case reflect.Float64:
		n, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", answer)
		}
		fv.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(answer) {
		case "y", "yes", "true", "1":
			fv.SetBool(true)
		case "n", "no", "false", "0", "":
			fv.SetBool(false)
		default:
			return fmt.Errorf("answer y or n")
		}
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return nil
		}
		list := reflect.MakeSlice(fv.Type(), 0, 0)
		if answer != clearValue {
			for _, part := range strings.Split(answer, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = reflect.Append(list, reflect.ValueOf(part).Convert(fv.Type().Elem()))
				}
			}
		}
		fv.Set(list)
	case reflect.Map:
		if answer == "" || answer == clearValue {
			fv.Set(reflect.MakeMap(fv.Type()))
			return nil
		}
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal([]byte(answer), ptr.Interface()); err != nil {
			return fmt.Errorf("enter a JSON object")
		}
		fv.Set(ptr.Elem())
	case reflect.Interface:
		if answer == "" || answer == clearValue {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		var decoded any
		if err := json.Unmarshal([]byte(answer), &decoded); err != nil {
			decoded = answer
		}
		fv.Set(reflect.ValueOf(decoded))
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("enter a date as YYYY-MM-DD")
	}
	return t.UTC(), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// editModelFields lets the operator remove and add field descriptors
func (p *prompter) editModelFields(form *models.CategoryModel) error {
	for len(form.Fields) > 0 {
		for i, f := range form.Fields {
			req := ""
			if f.Required {
				req = " required"
			}
			fmt.Fprintf(p.out, "  %d. %s (%s)%s\n", i+1, f.Name, f.Type, req)
		}
		answer, err := p.ask("remove field # (blank to keep all)", "")
		if err != nil {
			return err
		}
		if answer == "" {
			break
		}
		n, err := strconv.Atoi(answer)
		if err != nil || !panel.RemoveField(form, n-1) {
			p.warn("no field " + answer)
		}
	}

	for {
		name, err := p.ask("new field name (blank to finish)", "")
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		f := models.FieldDescriptor{Name: name, Type: models.FieldTypeText}
		if err := p.field("type", reflect.ValueOf(&f.Type).Elem()); err != nil {
			return err
		}
		if err := p.field("required", reflect.ValueOf(&f.Required).Elem()); err != nil {
			return err
		}
		if err := p.field("default_value", reflect.ValueOf(&f.DefaultValue).Elem()); err != nil {
			return err
		}
		panel.AddField(form, f)
	}
}

// askIcon reads an icon file into a data URI. Blank keeps the current icon.
func (p *prompter) askIcon(form *models.SocialHandle) error {
	for {
		path, err := p.ask("icon_image file path (blank keeps current, - clears)", "")
		if err != nil {
			return err
		}
		switch path {
		case "":
			return nil
		case clearValue:
			form.IconImage = ""
			return nil
		}
		uri, err := loadIcon(path)
		if err != nil {
			p.warn(err.Error())
			continue
		}
		form.IconImage = uri
		return nil
	}
}

func loadIcon(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > panel.MaxIconSize {
		return "", panel.ErrIconTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return panel.IconDataURI(path, data)
}
