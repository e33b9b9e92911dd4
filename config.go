package lurk

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the overlay program reads at startup.
type Config struct {
	// Seed drives every random decision. Zero picks a time-based seed.
	Seed  uint64 `yaml:"seed"`
	Debug bool   `yaml:"debug"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Window filtering
	SelfTitle string   `yaml:"self_title"`
	Denylist  []string `yaml:"denylist"`

	// Speech lines shown for message ids 1, 2 and 3.
	Messages []string `yaml:"messages"`

	// AtlasJSON and AtlasPages name a TexturePacker atlas holding the
	// creature frames. Unset, the built-in placeholder frames are drawn.
	AtlasJSON  string   `yaml:"atlas_json"`
	AtlasPages []string `yaml:"atlas_pages"`

	ScreenshotDir string `yaml:"screenshot_dir"`
	Sound         bool   `yaml:"sound"`

	// Windows backs the file provider: each entry is an image file standing
	// in for a captured window.
	Windows []WindowFile `yaml:"windows"`
}

// WindowFile is one file-provider entry.
type WindowFile struct {
	ID   WindowID `yaml:"id"`
	Name string   `yaml:"name"`
	Path string   `yaml:"path"`
	Rect RectSpec `yaml:"rect"`
}

// RectSpec is the YAML form of a RectI.
type RectSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// RectI converts r to a RectI.
func (r RectSpec) RectI() RectI {
	return RectI{Pos: Vec2I{r.X, r.Y}, Dim: Vec2I{r.W, r.H}}
}

// DefaultConfig returns Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		SelfTitle: DefaultWindowTitle,
		Denylist:  append([]string(nil), DefaultDenylist...),
		Messages: []string{
			"click me!",
			"bet you can't find me",
			"lucky. again?",
		},
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field combinations YAML decoding cannot.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if len(c.Messages) != 3 {
		return fmt.Errorf("messages: want 3 lines, got %d", len(c.Messages))
	}
	if (c.AtlasJSON == "") != (len(c.AtlasPages) == 0) {
		return fmt.Errorf("atlas_json and atlas_pages must be set together")
	}
	seen := make(map[WindowID]bool, len(c.Windows))
	for _, w := range c.Windows {
		if seen[w.ID] {
			return fmt.Errorf("duplicate window id %d", w.ID)
		}
		seen[w.ID] = true
		if w.Path == "" {
			return fmt.Errorf("window %q: empty path", w.Name)
		}
		if w.Rect.W <= 0 || w.Rect.H <= 0 {
			return fmt.Errorf("window %q: rect must have positive size", w.Name)
		}
	}
	return nil
}

// Filter returns the candidate filter described by the config.
func (c Config) Filter() CandidateFilter {
	return CandidateFilter{SelfTitle: c.SelfTitle, Denylist: c.Denylist}
}

// ParseLogLevel maps a level name to an slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
