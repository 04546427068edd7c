package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/cardinal/internal/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCategoryFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"capitals.md", "Capitals"},
		{"/tmp/world_capitals.md", "World Capitals"},
		{"go-interview_questions.md", "Go Interview Questions"},
		{"already Upper.txt", "Already Upper"},
		{"double--dash__under.md", "Double Dash Under"},
		{"noext", "Noext"},
		{"élan-vital.md", "Élan Vital"},
		{"camelCase.md", "CamelCase"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := CategoryFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryFromPathInvalidUTF8(t *testing.T) {
	_, err := CategoryFromPath("bad\xff.md")
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "invalid utf8 skipped", input: "a\n\xff\xfe\nb\n", want: []string{"a", "b"}},
		{name: "bom stripped", input: "\ufeff# T\n", want: []string{"# T"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLinesLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	got, err := ReadLines(strings.NewReader("# T\n" + long + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, long, got[1])
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "cards"), ExpandTilde("~/cards"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "~user/x", ExpandTilde("~user/x"))
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, "", DefaultOptions())
	assert.True(t, errors.Is(err, ErrMissingArgument))

	_, err = Load(ctx, filepath.Join(t.TempDir(), "missing"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrNotFileOrDir))
}

func TestLoadFileUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := t.TempDir()
	path := writeFile(t, dir, "locked.md", "# T\n## \nx\n")
	require.NoError(t, os.Chmod(path, 0))

	_, err := Load(context.Background(), path, DefaultOptions())
	var readErr *FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, path, readErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "world-capitals.md", "# Capitals\n## \nFrance\n## \nParis\n")

	deck, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "Capitals", deck.Cards[0].Title)
	assert.Equal(t, "World Capitals", deck.Cards[0].Category)
	assert.Contains(t, deck.Cards[0].Front, "France")
	assert.Contains(t, deck.Cards[0].Back, "Paris")
	assert.Equal(t, []string{"World Capitals"}, deck.Categories)
}

func TestLoadSingleFileIgnoresExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "# T\n## \nx\n")

	deck, err := Load(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 1)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_second.md", "# B1\n## \nb\n# B2\n## \nb\n")
	writeFile(t, dir, "a-first.md", "# A1\n## \na\n")
	writeFile(t, dir, "empty.md", "no cards here\n")
	writeFile(t, dir, "ignored.txt", "# X\n## \nx\n")
	writeFile(t, dir, "nested/deep.md", "# D\n## \nd\n")
	writeFile(t, dir, "bad\xff.md", "# Bad\n## \nbad\n")

	deck, err := Load(context.Background(), dir, Options{Extensions: []string{".md"}, Workers: 2})
	require.NoError(t, err)

	var titles []string
	for _, c := range deck.Cards {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"A1", "B1", "B2"}, titles)
	assert.Equal(t, []string{"A First", "B Second", "Empty"}, deck.Categories)
}

func TestLoadDirectoryRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.md", "# Top\n## \nt\n")
	writeFile(t, dir, "nested/deep.md", "# Deep\n## \nd\n")

	deck, err := Load(context.Background(), dir, Options{Recursive: true, Extensions: []string{"md"}})
	require.NoError(t, err)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "Deep", deck.Cards[0].Title)
	assert.Equal(t, "Top", deck.Cards[1].Title)
}

func TestLoadDirectoryAllExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", "# One\n## \n1\n")
	writeFile(t, dir, "two.txt", "# Two\n## \n2\n")

	deck, err := Load(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Len(t, deck.Cards, 2)
	assert.Equal(t, []string{"One", "Two"}, deck.Categories)
}

func TestLoadDirectoryCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", "# One\n## \n1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, dir, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFilesSkipsFileReadErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "kept.md", "# Kept\n## \nf\n")
	gone := writeFile(t, dir, "gone.md", "# Gone\n## \nf\n")

	files, err := listFiles(dir, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []string{gone, good}, files)

	// Removed between listing and opening
	require.NoError(t, os.Remove(gone))

	_, _, err = LoadFile(gone, parser.NewParser())
	var readErr *FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, gone, readErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	deck, err := loadFiles(context.Background(), files, parser.NewParser(), 2)
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "Kept", deck.Cards[0].Title)
	assert.Equal(t, []string{"Kept"}, deck.Categories)
}
