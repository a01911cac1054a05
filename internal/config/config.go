// Package config loads the demo configuration from YAML or TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	swipeerrors "github.com/go-drift/swipeactions/pkg/errors"
	"github.com/go-drift/swipeactions/pkg/graphics"
	"github.com/go-drift/swipeactions/pkg/swipe"
)

// CurrentVersion is written by Default and accepted by Validate.
const CurrentVersion = "v1.0.0"

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrVersion is returned when the config version is malformed or from
	// an incompatible major release.
	ErrVersion = errors.New("unsupported config version")
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Action kinds understood by the demo.
const (
	ActionBookmark = "bookmark"
	ActionDelete   = "delete"
)

// Config is the demo configuration.
type Config struct {
	Version  string         `yaml:"version" toml:"version"`
	Locale   string         `yaml:"locale" toml:"locale"`
	Viewport ViewportConfig `yaml:"viewport" toml:"viewport"`
	List     ListConfig     `yaml:"list" toml:"list"`
	Row      RowConfig      `yaml:"row" toml:"row"`
	Cards    []CardConfig   `yaml:"cards" toml:"cards"`
	Actions  []ActionConfig `yaml:"actions" toml:"actions"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// ViewportConfig is the size of the demo surface.
type ViewportConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Size returns the viewport as a graphics.Size.
func (v ViewportConfig) Size() graphics.Size {
	return graphics.Size{Width: v.Width, Height: v.Height}
}

// ListConfig controls the card list.
type ListConfig struct {
	Padding float64 `yaml:"padding" toml:"padding"`
	Spacing float64 `yaml:"spacing" toml:"spacing"`
}

// RowConfig controls every swipe row.
type RowConfig struct {
	CornerRadius float64         `yaml:"cornerRadius" toml:"cornerRadius"`
	Direction    swipe.Direction `yaml:"direction" toml:"direction"`
	Height       float64         `yaml:"height" toml:"height"`
}

// CardConfig is one card in the list.
type CardConfig struct {
	Name  string         `yaml:"name" toml:"name"`
	Color graphics.Color `yaml:"color" toml:"color"`
}

// ActionConfig is one button in every row's action strip.
type ActionConfig struct {
	Kind     string         `yaml:"kind" toml:"kind"`
	Tint     graphics.Color `yaml:"tint" toml:"tint"`
	Icon     string         `yaml:"icon" toml:"icon"`
	IconFont swipe.Font     `yaml:"iconFont,omitempty" toml:"iconFont,omitempty"`
	Disabled bool           `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// LoggingConfig controls the demo logger.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration of the stock demo: four cards with
// bookmark and delete actions on the trailing edge.
func Default() Config {
	return Config{
		Version:  CurrentVersion,
		Locale:   "en",
		Viewport: ViewportConfig{Width: 390, Height: 844},
		List:     ListConfig{Padding: 15, Spacing: 10},
		Row:      RowConfig{CornerRadius: 15, Direction: swipe.Trailing, Height: 70},
		Cards: []CardConfig{
			{Name: "black", Color: graphics.ColorBlack},
			{Name: "yellow", Color: graphics.ColorYellow},
			{Name: "purple", Color: graphics.ColorPurple},
			{Name: "brown", Color: graphics.ColorBrown},
		},
		Actions: []ActionConfig{
			{Kind: ActionBookmark, Tint: graphics.ColorBlue, Icon: "star.fill", IconFont: swipe.FontTitle3},
			{Kind: ActionDelete, Tint: graphics.ColorRed, Icon: "trash.fill", IconFont: swipe.FontTitle3},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and validates the config file at path. Fields missing from the
// file keep their Default values.
func Load(path string) (*Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, swipeerrors.Wrap("config.Load", swipeerrors.KindConfig, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, swipeerrors.Wrap("config.Load", swipeerrors.KindConfig,
			fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, swipeerrors.Wrap("config.Load", swipeerrors.KindConfig,
			fmt.Errorf("%s: %w", filepath.Base(path), err))
	}
	return cfg, nil
}

// LoadOptional is Load, except that an empty path or a missing file yields
// the defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return &cfg, nil
	}
	return Load(path)
}

// Parse decodes data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	defaults := cfg
	// Lists are replaced, not merged element by element.
	cfg.Cards, cfg.Actions = nil, nil
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown toml key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if cfg.Cards == nil {
		cfg.Cards = defaults.Cards
	}
	if cfg.Actions == nil {
		cfg.Actions = defaults.Actions
	}
	for i := range cfg.Actions {
		if cfg.Actions[i].IconFont == (swipe.Font{}) {
			cfg.Actions[i].IconFont = swipe.FontTitle3
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config for values the demo cannot run with.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive (got %vx%v)", c.Viewport.Width, c.Viewport.Height)
	}
	if c.List.Padding < 0 || c.List.Spacing < 0 {
		return fmt.Errorf("list padding and spacing cannot be negative")
	}
	if c.Row.Height <= 0 {
		return fmt.Errorf("row.height must be positive (got %v)", c.Row.Height)
	}
	if c.Row.CornerRadius < 0 {
		return fmt.Errorf("row.cornerRadius cannot be negative (got %v)", c.Row.CornerRadius)
	}

	seen := make(map[string]bool, len(c.Cards))
	for i, card := range c.Cards {
		name := strings.TrimSpace(card.Name)
		if name == "" {
			return fmt.Errorf("cards[%d] has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate card name %q", name)
		}
		seen[name] = true
	}

	for i, action := range c.Actions {
		switch action.Kind {
		case ActionBookmark, ActionDelete:
		default:
			return fmt.Errorf("actions[%d]: unknown kind %q", i, action.Kind)
		}
		if strings.TrimSpace(action.Icon) == "" {
			return fmt.Errorf("actions[%d] has no icon", i)
		}
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Logging.Level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Language returns the configured locale tag.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func validateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("%w: version is required", ErrVersion)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrVersion, v)
	}
	if major := semver.Major(v); major != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: major version %s, want %s", ErrVersion, major, semver.Major(CurrentVersion))
	}
	return nil
}
