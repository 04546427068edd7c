package card

// Card represents a single flashcard
type Card struct {
	Title    string `json:"title"`    // Text of the "# " heading
	Front    string `json:"front"`    // HTML of the first "## " section
	Back     string `json:"back"`     // HTML of the second "## " section
	Category string `json:"category"` // Label derived from the source file

	// Markdown of the front and back as accumulated before rendering
	FrontSource string `json:"-"`
	BackSource  string `json:"-"`
}

// IsEmpty reports whether the card should be dropped instead of emitted.
// A card needs a title and at least one non-empty side.
func (c Card) IsEmpty() bool {
	return c.Title == "" || (c.Front == "" && c.Back == "")
}
