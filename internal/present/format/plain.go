package format

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/gubarz/cardinal/internal/card"
)

// TSV columns: title, category, front, back
var headerLine = "title\tcategory\tfront\tback\n"

func esc(field string) string {
	field = strings.TrimRight(field, "\n")
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// PlainOptions controls the plain table
type PlainOptions struct {
	Headers bool
	Color   bool // Color titles and categories with ANSI escapes
}

// WritePlain writes cards as an aligned table using each side's markdown source
func WritePlain(w io.Writer, cards []card.Card, opts PlainOptions) error {
	title := color.New(color.FgCyan, color.Bold)
	category := color.New(color.FgHiBlack)
	if opts.Color {
		title.EnableColor()
		category.EnableColor()
	} else {
		title.DisableColor()
		category.DisableColor()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if opts.Headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, c := range cards {
		line := title.Sprint(esc(c.Title)) + "\t" +
			category.Sprint(esc(c.Category)) + "\t" +
			esc(c.FrontSource) + "\t" +
			esc(c.BackSource) + "\n"
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}

// WriteCategories writes one category per line
func WriteCategories(w io.Writer, categories []string) error {
	for _, c := range categories {
		if _, err := io.WriteString(w, c+"\n"); err != nil {
			return err
		}
	}
	return nil
}
