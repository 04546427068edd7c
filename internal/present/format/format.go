// Package format writes cards for the cards and categories commands.
package format

import (
	"fmt"
	"io"

	"github.com/gubarz/cardinal/internal/library"
)

// Write writes deck in the named format: plain, json, ndjson or html.
// Only the plain format reads the plain options.
func Write(w io.Writer, name string, deck *library.Deck, plain PlainOptions) error {
	switch name {
	case "plain", "":
		return WritePlain(w, deck.Cards, plain)
	case "json":
		return WriteJSON(w, deck, true)
	case "ndjson":
		return WriteNDJSON(w, deck.Cards)
	case "html":
		return WriteHTML(w, deck.Cards)
	default:
		return fmt.Errorf("unsupported format: %s (supported: plain, json, ndjson, html)", name)
	}
}
