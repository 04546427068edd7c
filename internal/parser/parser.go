package parser

import (
	"strings"

	"github.com/gubarz/cardinal/internal/card"
	"github.com/gubarz/cardinal/internal/render"
)

const (
	headingPrefix    = "# "
	subheadingPrefix = "## "
	lineBreak        = "<br>"
)

// Section is the card field that content lines are appended to
type Section int

const (
	SectionTitle Section = iota // Content lines are discarded
	SectionFront                // Content lines go to the front
	SectionBack                 // Content lines go to the back
)

// String returns the section name
func (s Section) String() string {
	switch s {
	case SectionTitle:
		return "title"
	case SectionFront:
		return "front"
	case SectionBack:
		return "back"
	default:
		return "unknown"
	}
}

// advance moves one step along title -> front -> back and stays on back
func (s Section) advance() Section {
	switch s {
	case SectionTitle:
		return SectionFront
	case SectionFront:
		return SectionBack
	default:
		return s
	}
}

// Renderer converts a card field from markdown to HTML
type Renderer interface {
	Render(text string) string
}

// Parser turns markdown lines into cards
type Parser struct {
	renderer Renderer
}

// New creates a parser that renders card fields with r
func New(r Renderer) *Parser {
	if r == nil {
		r = render.New(render.DefaultOptions())
	}
	return &Parser{renderer: r}
}

// NewParser creates a parser with the default renderer
func NewParser() *Parser {
	return New(nil)
}

// Parse extracts cards from lines using the default renderer
func Parse(lines []string) []card.Card {
	return NewParser().Parse("", lines)
}

// Parse extracts cards from lines in document order, stamping each with category.
// It never fails: malformed input yields fewer cards.
func (p *Parser) Parse(category string, lines []string) []card.Card {
	s := state{
		parser:   p,
		category: category,
		current:  card.Card{Category: category},
	}
	for _, line := range lines {
		s.feed(line)
	}
	s.flush()
	return s.cards
}

// state carries the in-progress card across lines of a single Parse call
type state struct {
	parser   *Parser
	category string
	section  Section
	current  card.Card
	cards    []card.Card
}

func (s *state) feed(line string) {
	if rest, ok := strings.CutPrefix(line, headingPrefix); ok {
		s.flush()
		if title := strings.TrimSpace(rest); title != "" {
			s.current.Title = title
		}
		return
	}

	if strings.HasPrefix(line, subheadingPrefix) {
		s.section = s.section.advance()
		return
	}

	if line == "\n" {
		line = lineBreak
	}
	switch s.section {
	case SectionFront:
		s.current.Front += line + "\n"
	case SectionBack:
		s.current.Back += line + "\n"
	}
}

// flush emits the current card if it is non-empty and starts a new one.
// An empty card is kept as is, along with its section.
func (s *state) flush() {
	if s.current.IsEmpty() {
		return
	}

	c := s.current
	c.FrontSource, c.BackSource = c.Front, c.Back
	c.Front = s.parser.renderer.Render(c.Front)
	c.Back = s.parser.renderer.Render(c.Back)
	s.cards = append(s.cards, c)

	s.current = card.Card{Category: s.category}
	s.section = SectionTitle
}
