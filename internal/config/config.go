// Package config loads the optional veritas.yaml file. Every section falls
// back to built-in defaults, so a missing file is not an error.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dtnitsch/veritas/pkg/fetcher"
	"github.com/dtnitsch/veritas/pkg/lexicon"
	"github.com/dtnitsch/veritas/pkg/scoring"
	"github.com/dtnitsch/veritas/pkg/storage"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "veritas.yaml"

// Defaults for the fetch section.
const (
	DefaultCacheDir = "veritas-cache"
	DefaultCacheTTL = 24 * time.Hour
	DefaultWorkers  = 4
)

type Config struct {
	Fetch   FetchConfig      `yaml:"fetch"`
	Scoring scoring.Weights  `yaml:"scoring"`
	Lexicon *lexicon.Lexicon `yaml:"lexicon,omitempty"`
	DB      DBConfig         `yaml:"db"`
	Output  OutputConfig     `yaml:"output"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	MaxBytes  int64         `yaml:"max_bytes"`
	CacheDir  string        `yaml:"cache_dir"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	Workers   int           `yaml:"workers"`
}

type DBConfig struct {
	// Path of the history database; empty uses the default next to the binary.
	Path string `yaml:"path"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	// Dir is the default report directory for url batches; --out overrides it.
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:   fetcher.DefaultTimeout,
			UserAgent: fetcher.DefaultUserAgent,
			MaxBytes:  fetcher.DefaultMaxBytes,
			CacheDir:  DefaultCacheDir,
			CacheTTL:  DefaultCacheTTL,
			Workers:   DefaultWorkers,
		},
		Scoring: scoring.DefaultWeights(),
		Output: OutputConfig{
			Format: storage.FormatJSON,
		},
	}
}

// Load reads path over the defaults. A missing file at the default path
// yields the defaults; a missing file that was asked for explicitly is an
// error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch.timeout must be positive"))
	}
	if c.Fetch.MaxBytes <= 0 {
		errs = append(errs, errors.New("fetch.max_bytes must be positive"))
	}
	if c.Fetch.CacheTTL < 0 {
		errs = append(errs, errors.New("fetch.cache_ttl must not be negative"))
	}
	if c.Fetch.Workers < 1 {
		errs = append(errs, errors.New("fetch.workers must be at least 1"))
	}
	switch strings.ToLower(c.Output.Format) {
	case storage.FormatJSON, storage.FormatYAML, "yml":
	default:
		errs = append(errs, fmt.Errorf("output.format %q is not json or yaml", c.Output.Format))
	}
	if err := c.Scoring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scoring: %w", err))
	}
	return errors.Join(errs...)
}

// ResolvedLexicon returns the built-in tables with any configured overrides
// applied.
func (c *Config) ResolvedLexicon() *lexicon.Lexicon {
	return lexicon.Default().Merge(c.Lexicon)
}

// FetcherOptions maps the fetch section onto fetcher.Options.
func (c *Config) FetcherOptions() fetcher.Options {
	return fetcher.Options{
		Timeout:   c.Fetch.Timeout,
		UserAgent: c.Fetch.UserAgent,
		MaxBytes:  c.Fetch.MaxBytes,
	}
}
