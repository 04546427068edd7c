package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/cardinal/internal/card"
	"github.com/gubarz/cardinal/internal/library"
)

func TestFilterCategory(t *testing.T) {
	deck := &library.Deck{
		Cards: []card.Card{
			{Title: "a", Category: "Go Basics"},
			{Title: "b", Category: "Rust"},
			{Title: "c", Category: "Go Basics"},
		},
		Categories: []string{"Go Basics", "Rust"},
	}

	tests := []struct {
		name       string
		category   string
		wantTitles []string
		wantCats   []string
	}{
		{name: "empty keeps everything", category: "", wantTitles: []string{"a", "b", "c"}, wantCats: []string{"Go Basics", "Rust"}},
		{name: "case insensitive", category: "go basics", wantTitles: []string{"a", "c"}, wantCats: []string{"Go Basics"}},
		{name: "surrounding space", category: "  Rust ", wantTitles: []string{"b"}, wantCats: []string{"Rust"}},
		{name: "unknown", category: "Python", wantTitles: nil, wantCats: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterCategory(deck, tt.category)
			var titles []string
			for _, c := range got.Cards {
				titles = append(titles, c.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			assert.Equal(t, tt.wantCats, got.Categories)
		})
	}
}

func TestUseColor(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, useColor("always", f))
	assert.False(t, useColor("never", f))
	assert.False(t, useColor("auto", f), "a regular file is not a terminal")

	var buf bytes.Buffer
	assert.False(t, useColor("auto", &buf), "a buffer is not a terminal")
	assert.True(t, useColor("always", &buf))
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "deck.md", resolvePath([]string{"deck.md"}))
}

func TestCardsCommandJSON(t *testing.T) {
	dir := t.TempDir()
	content := "# Capital of France\n## \nWhich city?\n## \n**Paris**\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world-capitals.md"), []byte(content), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"cards", dir,
		"--format", "json",
		"--config", filepath.Join(dir, "absent.yaml"),
	})
	require.NoError(t, rootCmd.Execute())

	var deck library.Deck
	require.NoError(t, json.Unmarshal(out.Bytes(), &deck))
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "Capital of France", deck.Cards[0].Title)
	assert.Equal(t, "World Capitals", deck.Cards[0].Category)
	assert.Contains(t, deck.Cards[0].Back, "<strong>Paris</strong>")
	assert.Equal(t, []string{"World Capitals"}, deck.Categories)
}

func TestCardsCommandPlainHeaders(t *testing.T) {
	dir := t.TempDir()
	content := "# Capital of France\n## \nWhich city?\n## \nParis\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capitals.md"), []byte(content), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"cards", dir,
		"--format", "plain",
		"--headers",
		"--config", filepath.Join(dir, "absent.yaml"),
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "title"))
	assert.Contains(t, lines[1], "Capital of France")
	assert.Contains(t, lines[1], "Paris")
	assert.NotContains(t, out.String(), "\x1b[", "output to a buffer is not colored")
}
