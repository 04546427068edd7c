package clipboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard writes to the OS clipboard, printing the text when none is available
type systemClipboard struct {
	fallback io.Writer
}

// System returns the OS clipboard
func System() Clipboard {
	return &systemClipboard{fallback: os.Stdout}
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	return clipboard.WriteAll(text)
}

// Memory is a Clipboard that keeps the last copied text, for tests
type Memory struct {
	Text string
}

// Copy stores text
func (m *Memory) Copy(text string) error {
	m.Text = text
	return nil
}
