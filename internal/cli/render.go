package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kbukum/prodquery/catalog"
)

type theme struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:  lipgloss.NewStyle().Bold(true),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Muted:  lipgloss.NewStyle().Faint(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

type renderer struct {
	w     io.Writer
	theme theme
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w, theme: defaultTheme()}
}

func (r *renderer) title(s string) {
	fmt.Fprintln(r.w, r.theme.Title.Render(s))
}

func (r *renderer) line(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) failure(err error) {
	fmt.Fprintln(r.w, r.theme.Error.Render("error: "+err.Error()))
}

func (r *renderer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(r.w, r.theme.Muted.Render("(no products)"))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Header
			}
			return r.theme.Cell
		})
	fmt.Fprintln(r.w, t.Render())
}

func (r *renderer) products(ps []catalog.Product) {
	rows := make([][]string, len(ps))
	for i, p := range ps {
		rows[i] = []string{strconv.Itoa(p.ID), p.Name, p.Color, strconv.FormatFloat(p.StandardCost, 'f', 2, 64)}
	}
	r.table([]string{"ID", "Name", "Color", "Standard Cost"}, rows)
}

func (r *renderer) summaries(ss []catalog.Summary) {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{strconv.Itoa(s.ID), s.Name, s.Color}
	}
	r.table([]string{"ID", "Name", "Color"}, rows)
}

func (r *renderer) strings(header string, values []string) {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	r.table([]string{header}, rows)
}

// product prints a single selected product; the zero value reads as "<none>".
func (r *renderer) product(p catalog.Product) {
	fmt.Fprintln(r.w, p.String())
}
