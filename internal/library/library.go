// Package library locates flashcard files on disk and feeds them to the card parser.
package library

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gubarz/cardinal/internal/card"
	"github.com/gubarz/cardinal/internal/log"
	"github.com/gubarz/cardinal/internal/parser"
)

// Deck holds every card loaded from a path plus the distinct categories seen
type Deck struct {
	Cards      []card.Card `json:"cards"`
	Categories []string    `json:"categories"`
}

// Options controls how a directory is scanned
type Options struct {
	Recursive  bool           // Descend into subdirectories
	Extensions []string       // File extensions to load, empty loads every regular file
	Workers    int            // Files parsed concurrently, <= 0 means GOMAXPROCS
	Parser     *parser.Parser // nil uses the default parser
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{Extensions: []string{".md"}}
}

// Load reads cards from a single file or from every matching file in a directory.
// A file that cannot be read inside a directory is logged and skipped.
func Load(ctx context.Context, path string, opts Options) (*Deck, error) {
	if path == "" {
		return nil, ErrMissingArgument
	}
	path = ExpandTilde(path)

	info, err := os.Stat(path)
	if err != nil || (!info.Mode().IsRegular() && !info.IsDir()) {
		return nil, errors.Wrapf(ErrNotFileOrDir, "%s", path)
	}

	p := opts.Parser
	if p == nil {
		p = parser.NewParser()
	}

	if !info.IsDir() {
		cards, category, err := LoadFile(path, p)
		if err != nil {
			return nil, err
		}
		return &Deck{Cards: cards, Categories: []string{category}}, nil
	}

	// WalkDir does not descend into a symlinked root
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	files, err := listFiles(path, opts)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	return loadFiles(ctx, files, p, opts.Workers)
}

type fileResult struct {
	cards    []card.Card
	category string
	ok       bool
}

// loadFiles parses files concurrently and joins the results in file order
func loadFiles(ctx context.Context, files []string, p *parser.Parser, workers int) (*Deck, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := log.Get()

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cards, category, err := LoadFile(file, p)
			if err != nil {
				logger.Warn("skipping file", zap.String("path", file), zap.Error(err))
				return nil
			}
			logger.Debug("loaded file", zap.String("path", file), zap.Int("cards", len(cards)))
			results[i] = fileResult{cards: cards, category: category, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deck := &Deck{}
	seen := make(map[string]bool)
	for _, r := range results {
		if !r.ok {
			continue
		}
		deck.Cards = append(deck.Cards, r.cards...)
		if !seen[r.category] {
			seen[r.category] = true
			deck.Categories = append(deck.Categories, r.category)
		}
	}
	sort.Strings(deck.Categories)
	return deck, nil
}

// LoadFile parses one file, stamping its cards with the category derived from its name
func LoadFile(path string, p *parser.Parser) ([]card.Card, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", &FileReadError{Path: path, Err: err}
	}
	defer file.Close()

	category, err := CategoryFromPath(path)
	if err != nil {
		return nil, "", err
	}

	lines, err := ReadLines(file)
	if err != nil {
		return nil, "", &FileReadError{Path: path, Err: err}
	}

	return p.Parse(category, lines), category, nil
}

// listFiles returns the regular files under dir that match the configured extensions
func listFiles(dir string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Get().Warn("skipping entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if path != dir && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		// Follow symlinks so linked files count as regular files
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
		if matchesExtension(path, opts.Extensions) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func matchesExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// ReadLines splits r into lines without their terminators.
// Lines that are not valid UTF-8 are skipped.
func ReadLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	var lines []string
	first := true
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if first {
				line = strings.TrimPrefix(line, "\ufeff")
			}
			if utf8.ValidString(line) {
				lines = append(lines, line)
			}
		}
		first = false
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}

// CategoryFromPath turns a file name like "world_capitals-europe.md" into "World Capitals Europe"
func CategoryFromPath(path string) (string, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	if !utf8.ValidString(stem) {
		return "", errors.Wrapf(ErrInvalidCategory, "%q", base)
	}

	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	words := strings.Fields(stem)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " "), nil
}

// ExpandTilde expands a leading ~/ to the user's home directory
func ExpandTilde(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
