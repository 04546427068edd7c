package format

import (
	"encoding/json"
	"io"

	"github.com/gubarz/cardinal/internal/card"
	"github.com/gubarz/cardinal/internal/library"
)

// WriteJSON writes the deck as a single {"cards": [...], "categories": [...]} document
func WriteJSON(w io.Writer, deck *library.Deck, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	out := library.Deck{Cards: deck.Cards, Categories: deck.Categories}
	if out.Cards == nil {
		out.Cards = []card.Card{}
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	return enc.Encode(out)
}

// WriteNDJSON writes one card object per line
func WriteNDJSON(w io.Writer, cards []card.Card) error {
	enc := json.NewEncoder(w)
	for _, c := range cards {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}
