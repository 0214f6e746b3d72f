// Package config loads settings for the contfrac command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kbolino/contfrac"
)

// Config holds the settings that can be given in a YAML file. Zero values
// mean "use the library default".
type Config struct {
	MaxTerms    int    `yaml:"max_terms"`
	RenderTerms int    `yaml:"render_terms"`
	Limit       int    `yaml:"limit"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the library defaults.
func Default() Config {
	return Config{
		MaxTerms:    contfrac.DefaultMaxTerms,
		RenderTerms: contfrac.DefaultRenderTerms,
		Limit:       contfrac.DefaultLimit,
		LogLevel:    "info",
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error when path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.MaxTerms < 0 || cfg.RenderTerms < 0 || cfg.Limit < 0 {
		return cfg, fmt.Errorf("decoding config: negative term count")
	}
	return cfg, nil
}

// Options converts the settings to ContFrac options.
func (c Config) Options() []contfrac.Option {
	return []contfrac.Option{
		contfrac.WithMaxTerms(c.MaxTerms),
		contfrac.WithRenderTerms(c.RenderTerms),
		contfrac.WithLimit(c.Limit),
	}
}
