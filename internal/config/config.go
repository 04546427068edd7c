package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var (
	// Formats lists the values accepted by the format key
	Formats = []string{"plain", "json", "ndjson", "html"}
	// ColorModes lists the values accepted by the color key
	ColorModes = []string{"auto", "always", "never"}
)

// InitFile initializes configuration, reading file instead of searching when it is set.
// A named file that exists but cannot be parsed is an error, a missing one is not.
func InitFile(file string) error {
	SetDefaults(viper.GetViper())

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("cardinal")
		viper.SetConfigType("yaml")

		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cardinal"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("CARDINAL")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil || file == "" {
		// A searched config is optional
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading config %s: %w", file, err)
}

// CheckConfigValidity reports every invalid setting in v
func CheckConfigValidity(v *viper.Viper) error {
	var err error
	if format := v.GetString("format"); !slices.Contains(Formats, format) {
		err = multierr.Append(err, fmt.Errorf("format %q must be one of %v", format, Formats))
	}
	if color := v.GetString("color"); !slices.Contains(ColorModes, color) {
		err = multierr.Append(err, fmt.Errorf("color %q must be one of %v", color, ColorModes))
	}
	if v.GetInt("workers") < 0 {
		err = multierr.Append(err, fmt.Errorf("workers must not be negative"))
	}
	if v.GetInt("word_wrap") <= 0 {
		err = multierr.Append(err, fmt.Errorf("word_wrap must be greater than 0"))
	}
	return err
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("path", ".")
	v.SetDefault("recursive", false)
	v.SetDefault("extensions", []string{".md"})
	v.SetDefault("workers", 0)                // 0 = one per CPU
	v.SetDefault("format", "plain")           // plain, json, ndjson, html
	v.SetDefault("color", "auto")             // auto, always, never
	v.SetDefault("debug", false)              // Log to stderr
	v.SetDefault("highlight_style", "github") // Chroma style, "" disables
	v.SetDefault("hard_wraps", false)         // Soft breaks become <br>
	v.SetDefault("xhtml", false)              // Self-closing void tags
	v.SetDefault("shuffle_seed", uint64(0))   // 0 = random order
	v.SetDefault("glamour_style", "dark")     // Terminal rendering style
	v.SetDefault("word_wrap", 80)             // Terminal rendering width
	v.SetDefault("color_title", "36")         // Cyan
	v.SetDefault("color_category", "90")      // Gray
	v.SetDefault("color_dim", "241")
	v.SetDefault("color_border", "240")
	v.SetDefault("color_correct", "32")   // Green
	v.SetDefault("color_incorrect", "31") // Red
}

// GetPath returns the configured card path
func GetPath() string {
	return viper.GetString("path")
}

// GetRecursive returns whether directories are scanned recursively
func GetRecursive() bool {
	return viper.GetBool("recursive")
}

// GetExtensions returns the file extensions loaded from a directory
func GetExtensions() []string {
	return viper.GetStringSlice("extensions")
}

// GetWorkers returns how many files are parsed concurrently
func GetWorkers() int {
	return viper.GetInt("workers")
}

// GetFormat returns the output format for the cards command
func GetFormat() string {
	return viper.GetString("format")
}

// GetColor returns the color mode
func GetColor() string {
	return viper.GetString("color")
}

// GetDebug returns whether debug logging is enabled
func GetDebug() bool {
	return viper.GetBool("debug")
}

// GetHighlightStyle returns the chroma style for code blocks
func GetHighlightStyle() string {
	return viper.GetString("highlight_style")
}

// GetHardWraps returns whether soft line breaks render as <br>
func GetHardWraps() bool {
	return viper.GetBool("hard_wraps")
}

// GetXHTML returns whether HTML is rendered as XHTML
func GetXHTML() bool {
	return viper.GetBool("xhtml")
}

// GetShuffleSeed returns the study shuffle seed, 0 for random
func GetShuffleSeed() uint64 {
	return viper.GetUint64("shuffle_seed")
}

// GetGlamourStyle returns the glamour style used in the study view
func GetGlamourStyle() string {
	return viper.GetString("glamour_style")
}

// GetWordWrap returns the word wrap width used in the study view
func GetWordWrap() int {
	return viper.GetInt("word_wrap")
}

// GetColorTitle returns ANSI color code for card titles
func GetColorTitle() string {
	return viper.GetString("color_title")
}

// GetColorCategory returns ANSI color code for categories
func GetColorCategory() string {
	return viper.GetString("color_category")
}

// GetColorDim returns color for secondary text
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColorBorder returns color for borders and dividers
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorCorrect returns ANSI color code for the correct counter
func GetColorCorrect() string {
	return viper.GetString("color_correct")
}

// GetColorIncorrect returns ANSI color code for the incorrect counter
func GetColorIncorrect() string {
	return viper.GetString("color_incorrect")
}
