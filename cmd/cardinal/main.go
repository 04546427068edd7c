package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/gubarz/cardinal/internal/clipboard"
	"github.com/gubarz/cardinal/internal/config"
	"github.com/gubarz/cardinal/internal/library"
	"github.com/gubarz/cardinal/internal/log"
	"github.com/gubarz/cardinal/internal/parser"
	"github.com/gubarz/cardinal/internal/present/format"
	"github.com/gubarz/cardinal/internal/render"
	"github.com/gubarz/cardinal/internal/ui"
)

var version = "0.1.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "cardinal [path]",
	Short: "Markdown flashcards",
	Long: `Flashcard tool that uses real Markdown files.

Every "# " heading starts a card, the first "## " starts its front
and the second "## " starts its back. Study a file or a directory
of cards interactively, or export them as JSON, NDJSON or HTML.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStudy,
}

var cardsCmd = &cobra.Command{
	Use:   "cards [path]",
	Short: "Print cards",
	Long: `Parses the cards under path and prints them.

Formats: plain, json, ndjson, html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCards,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [path]",
	Short: "Print distinct categories",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCategories,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(cardsCmd, categoriesCmd)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/cardinal/cardinal.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log to stderr")
	rootCmd.PersistentFlags().StringP("category", "c", "", "Only use cards from this category")
	rootCmd.PersistentFlags().StringP("query", "q", "", "Initial filter query")
	rootCmd.PersistentFlags().BoolP("recursive", "r", false, "Scan subdirectories")
	rootCmd.PersistentFlags().BoolP("benchmark", "b", false, "Benchmark load time and exit")

	cardsCmd.Flags().StringP("format", "f", "", "Output format: plain, json, ndjson, html")
	cardsCmd.Flags().Bool("headers", false, "Print a header row in plain format")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("recursive", rootCmd.PersistentFlags().Lookup("recursive"))
	viper.BindPFlag("format", cardsCmd.Flags().Lookup("format"))
}

func initConfig() {
	if err := config.InitFile(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	if err := log.Set(config.GetDebug()); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
	}
}

// newParser builds a card parser from the render settings
func newParser() *parser.Parser {
	opts := render.Options{
		HighlightStyle: config.GetHighlightStyle(),
		HardWraps:      config.GetHardWraps(),
		XHTML:          config.GetXHTML(),
	}
	return parser.New(render.New(opts))
}

// resolvePath picks the argument, then the configured path
func resolvePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.GetPath()
}

// loadDeck validates config, loads path and applies the category flag
func loadDeck(cmd *cobra.Command, args []string) (*library.Deck, error) {
	if err := config.CheckConfigValidity(viper.GetViper()); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	path := resolvePath(args)
	opts := library.DefaultOptions()
	opts.Recursive = config.GetRecursive()
	if extensions := config.GetExtensions(); len(extensions) > 0 {
		opts.Extensions = extensions
	}
	opts.Workers = config.GetWorkers()
	opts.Parser = newParser()

	benchmark, _ := cmd.Flags().GetBool("benchmark")
	start := time.Now()

	deck, err := library.Load(cmd.Context(), path, opts)
	if err != nil {
		return nil, err
	}

	category, _ := cmd.Flags().GetString("category")
	deck = filterCategory(deck, category)

	if benchmark {
		elapsed := time.Since(start)
		// Force GC and get memory stats
		runtime.GC()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d cards in %d categories in %v\n", len(deck.Cards), len(deck.Categories), elapsed)
		fmt.Fprintf(cmd.ErrOrStderr(), "Memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, HeapObjects=%d\n",
			m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.HeapObjects)
	}

	return deck, nil
}

// filterCategory keeps the cards whose category matches, ignoring case
func filterCategory(deck *library.Deck, category string) *library.Deck {
	category = strings.TrimSpace(category)
	if category == "" {
		return deck
	}

	out := &library.Deck{}
	for _, c := range deck.Cards {
		if strings.EqualFold(c.Category, category) {
			out.Cards = append(out.Cards, c)
		}
	}
	for _, name := range deck.Categories {
		if strings.EqualFold(name, category) {
			out.Categories = append(out.Categories, name)
		}
	}
	return out
}

// useColor resolves the color mode against the writer output goes to.
// Only a terminal file gets color in auto mode.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runStudy(cmd *cobra.Command, args []string) error {
	deck, err := loadDeck(cmd, args)
	if err != nil {
		return err
	}
	if benchmark, _ := cmd.Flags().GetBool("benchmark"); benchmark {
		return nil
	}

	query, _ := cmd.Flags().GetString("query")
	return ui.RunTUI(deck.Cards, clipboard.System(), query)
}

func runCards(cmd *cobra.Command, args []string) error {
	deck, err := loadDeck(cmd, args)
	if err != nil {
		return err
	}
	if benchmark, _ := cmd.Flags().GetBool("benchmark"); benchmark {
		return nil
	}

	out := cmd.OutOrStdout()
	headers, _ := cmd.Flags().GetBool("headers")
	plain := format.PlainOptions{
		Headers: headers,
		Color:   useColor(config.GetColor(), out),
	}
	return format.Write(out, config.GetFormat(), deck, plain)
}

func runCategories(cmd *cobra.Command, args []string) error {
	deck, err := loadDeck(cmd, args)
	if err != nil {
		return err
	}
	if benchmark, _ := cmd.Flags().GetBool("benchmark"); benchmark {
		return nil
	}
	return format.WriteCategories(cmd.OutOrStdout(), deck.Categories)
}

func main() {
	defer log.Flush()

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Flush()
		os.Exit(1)
	}
}
