package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aethra/taxonomy/internal/client"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

// maxCellWidth bounds table cells; data URIs and descriptions get truncated
const maxCellWidth = 40

// card is one summary counter
type card struct {
	label string
	value string
}

func intCard(label string, n int) card {
	return card{label: label, value: fmt.Sprint(n)}
}

// renderer holds the styles bound to the shell's output
type renderer struct {
	title   lipgloss.Style
	card    lipgloss.Style
	value   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	alert   lipgloss.Style
	success lipgloss.Style
	header  lipgloss.Style
}

func newRenderer(out io.Writer) renderer {
	r := lipgloss.NewRenderer(out)
	return renderer{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).MarginRight(1),
		value:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("45")),
		label:   r.NewStyle().Foreground(lipgloss.Color("250")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("244")),
		alert:   r.NewStyle().Foreground(lipgloss.Color("203")),
		success: r.NewStyle().Foreground(lipgloss.Color("78")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
	}
}

func (r renderer) cards(cards []card) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		boxes = append(boxes, r.card.Render(r.value.Render(c.value)+"\n"+r.label.Render(c.label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (r renderer) table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return r.muted.Render("(no records)")
	}
	for _, row := range rows {
		for i := range row {
			row[i] = ansi.Truncate(strings.ReplaceAll(row[i], "\n", " "), maxCellWidth, "…")
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.muted).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// alertText turns err into the message shown to the operator. Backend
// errors show the server's detail.
func alertText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
