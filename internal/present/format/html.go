package format

import (
	"fmt"
	"html"
	"io"

	"github.com/gubarz/cardinal/internal/card"
)

// WriteHTML writes each card as an <article>. Front and back are already HTML.
func WriteHTML(w io.Writer, cards []card.Card) error {
	for _, c := range cards {
		_, err := fmt.Fprintf(w, "<article class=\"card\" data-category=\"%s\">\n<h1>%s</h1>\n<section class=\"front\">\n%s</section>\n<section class=\"back\">\n%s</section>\n</article>\n",
			html.EscapeString(c.Category), html.EscapeString(c.Title), c.Front, c.Back)
		if err != nil {
			return err
		}
	}
	return nil
}
