package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	"github.com/gubarz/cardinal/internal/card"
	"github.com/gubarz/cardinal/internal/clipboard"
	"github.com/gubarz/cardinal/internal/config"
	"github.com/gubarz/cardinal/internal/study"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Card Items
// ============================================================================

// cardItem wraps a Card with the text the filter matches against
type cardItem struct {
	card   card.Card
	search string
}

// newCardItem creates a cardItem from a Card
func newCardItem(c card.Card) cardItem {
	return cardItem{
		card:   c,
		search: c.Category + " " + c.Title,
	}
}

// cardItems implements fuzzy.Source
type cardItems []cardItem

func (c cardItems) String(i int) string { return c[i].search }
func (c cardItems) Len() int            { return len(c) }

// filterItems returns the items matching query, best match first
func filterItems(items []cardItem, query string) []cardItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, cardItems(items))
	result := make([]cardItem, len(matches))
	for i, m := range matches {
		result[i] = items[m.Index]
	}
	return result
}

func itemCards(items []cardItem) []card.Card {
	cards := make([]card.Card, len(items))
	for i, item := range items {
		cards[i] = item.card
	}
	return cards
}

// ============================================================================
// Markdown
// ============================================================================

// markdownRenderer draws card markdown for the terminal
type markdownRenderer interface {
	Render(in string) (string, error)
}

// newGlamourRenderer returns a terminal renderer using the configured style
func newGlamourRenderer() (markdownRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(config.GetGlamourStyle()),
		glamour.WithWordWrap(config.GetWordWrap()),
	)
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Main Model - Study + Filter
// ============================================================================

// uiPhase represents which phase the TUI is in
type uiPhase int

const (
	phaseStudy  uiPhase = iota // Showing cards
	phaseFilter                // Typing a filter query
)

// mainModel is the Bubble Tea model for studying cards
type mainModel struct {
	// Common state
	width     int
	height    int
	textInput textinput.Model
	quitting  bool

	// Phase management
	phase uiPhase

	// Card state
	cards     []cardItem
	filtered  []cardItem
	session   *study.Session
	seed      uint64
	showBack  bool
	lastQuery string
	status    string

	// Dependencies
	clipboard clipboard.Clipboard
	markdown  markdownRenderer
	rendered  map[string]string
}

// newMainModel creates a new mainModel with the given cards
func newMainModel(cards []card.Card, seed uint64, clip clipboard.Clipboard, md markdownRenderer) mainModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter by title or category..."
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]cardItem, len(cards))
	for i, c := range cards {
		items[i] = newCardItem(c)
	}

	m := mainModel{
		cards:     items,
		filtered:  items,
		textInput: ti,
		phase:     phaseStudy,
		seed:      seed,
		clipboard: clip,
		markdown:  md,
		rendered:  make(map[string]string),
	}
	m.restartSession()
	return m
}

// restartSession starts a new study session over the filtered cards
func (m *mainModel) restartSession() {
	if m.seed != 0 {
		m.session = study.NewSeeded(itemCards(m.filtered), m.seed)
	} else {
		m.session = study.New(itemCards(m.filtered), nil)
	}
	m.showBack = false
}

// Init implements tea.Model
func (m mainModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for both phases
	if wsMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsMsg.Width
		m.height = wsMsg.Height
		m.textInput.Width = wsMsg.Width - 4
	}

	// Dispatch based on phase
	switch m.phase {
	case phaseFilter:
		return m.updateFilter(msg)
	default:
		return m.updateStudy(msg)
	}
}

// updateStudy handles updates while a card is shown
func (m mainModel) updateStudy(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	cmd := m.handleStudyKey(keyMsg)
	return m, cmd
}

// handleStudyKey processes keyboard input while studying
func (m *mainModel) handleStudyKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.quitting = true
		return tea.Quit
	case " ", "space", "f":
		m.showBack = !m.showBack
	case "enter", "right", "y", "l":
		// The back must be seen before a card counts as known
		if !m.showBack {
			m.showBack = true
			return nil
		}
		m.grade(true)
	case "left", "n", "h":
		m.grade(false)
	case "ctrl+r":
		m.session.Reset()
		m.status = "returned graded cards to the pile"
	case "c":
		m.copyBack()
	case "/":
		m.phase = phaseFilter
		m.textInput.SetValue(m.lastQuery)
		m.textInput.CursorEnd()
		return m.textInput.Focus()
	}
	return nil
}

// grade records the answer for the current card and moves on
func (m *mainModel) grade(correct bool) {
	if _, ok := m.session.Current(); !ok {
		return
	}
	m.session.Next(correct)
	m.showBack = false
}

// copyBack copies the markdown of the current card's back
func (m *mainModel) copyBack() {
	c, ok := m.session.Current()
	if !ok || m.clipboard == nil {
		return
	}
	if err := m.clipboard.Copy(strings.TrimRight(c.BackSource, "\n")); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied back of card"
}

// updateFilter handles updates while typing a filter query
func (m mainModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			// Discard the edit
			m.filtered = filterItems(m.cards, m.lastQuery)
			m.phase = phaseStudy
			m.textInput.Blur()
			return m, nil
		case "enter":
			m.lastQuery = m.textInput.Value()
			m.filtered = filterItems(m.cards, m.lastQuery)
			m.phase = phaseStudy
			m.textInput.Blur()
			m.restartSession()
			return m, nil
		}
	case filterMsg:
		m.filtered = filterItems(m.cards, m.textInput.Value())
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	// Only trigger debounced filter if query changed
	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m mainModel) View() string {
	if m.quitting {
		return ""
	}

	width := maxInt(m.width, 40)
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(m.renderHeader(width))
	body := strings.TrimRight(m.renderBody(), "\n")
	b.WriteString(styles.Border.Width(width - 2).Render(body))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the category, title and progress line
func (m mainModel) renderHeader(width int) string {
	b := getBuilder()
	defer putBuilder(b)

	if c, ok := m.session.Current(); ok {
		if c.Category != "" {
			b.WriteString(styles.Category.Render("[" + c.Category + "]"))
			b.WriteString(" ")
		}
		b.WriteString(styles.Title.Render(c.Title))
		b.WriteString("\n")
	}

	remaining, correct, incorrect := m.session.Counts()
	b.WriteString(styles.Dim.Render(fmt.Sprintf("%d left", remaining)))
	b.WriteString(" • ")
	b.WriteString(styles.Correct.Render(fmt.Sprintf("✓ %d", correct)))
	b.WriteString(" • ")
	b.WriteString(styles.Incorrect.Render(fmt.Sprintf("✗ %d", incorrect)))
	b.WriteString(styles.Dim.Render(fmt.Sprintf(" • %d/%d cards", len(m.filtered), len(m.cards))))
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// renderBody renders the visible side of the current card
func (m mainModel) renderBody() string {
	c, ok := m.session.Current()
	if !ok {
		return styles.Dim.Render("No cards match.") + "\n"
	}

	side, source := "front", c.FrontSource
	if m.showBack {
		side, source = "back", c.BackSource
	}
	return styles.Side.Render(side) + "\n" + m.renderMarkdown(source)
}

// renderMarkdown renders card markdown for the terminal, caching by source
func (m mainModel) renderMarkdown(source string) string {
	if out, ok := m.rendered[source]; ok {
		return out
	}
	out := source
	if m.markdown != nil {
		if rendered, err := m.markdown.Render(source); err == nil {
			out = rendered
		}
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	m.rendered[source] = out
	return out
}

// renderFooter renders the key help or the filter input
func (m mainModel) renderFooter() string {
	if m.phase == phaseFilter {
		return m.textInput.View() + "\n" + styles.Dim.Render("enter apply • esc cancel")
	}

	b := getBuilder()
	defer putBuilder(b)
	if m.status != "" {
		b.WriteString(styles.Dim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(styles.Dim.Render("space flip • enter/→ reveal, then correct • ← incorrect • ctrl+r reset • c copy • / filter • esc quit"))
	return b.String()
}

// ============================================================================
// Run TUI
// ============================================================================

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is not a terminal (e.g., piped or captured by $()), use /dev/tty
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	// stdout IS a terminal - use normal stdin/stdout
	return os.Stdin, os.Stdout, func() {}
}

// RunTUI launches the study interface over cards, pre-filtered by initialQuery
func RunTUI(cards []card.Card, clip clipboard.Clipboard, initialQuery string) error {
	if len(cards) == 0 {
		return fmt.Errorf("no cards found")
	}

	md, err := newGlamourRenderer()
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	m := newMainModel(cards, config.GetShuffleSeed(), clip, md)
	if initialQuery != "" {
		m.lastQuery = initialQuery
		m.filtered = filterItems(m.cards, initialQuery)
		if len(m.filtered) == 0 {
			return fmt.Errorf("no cards match %q", initialQuery)
		}
		m.restartSession()
	}

	ttyIn, ttyOut, cleanup := getTTY()
	RefreshStyles() // Refresh after getTTY sets up the renderer
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err = p.Run()
	cleanup()
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
