package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// Config is the specref configuration file.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Converter ConverterConfig `yaml:"converter"`
	Enrich    EnrichConfig    `yaml:"enrich"`
	Grammar   GrammarConfig   `yaml:"grammar"`
	Runner    RunnerConfig    `yaml:"runner"`
	Watch     WatchConfig     `yaml:"watch"`
	Notify    NotifyConfig    `yaml:"notify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InputConfig selects the documents of a batch run.
type InputConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions,omitempty"`
}

// OutputConfig controls where enriched documents are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// ConverterConfig selects how input documents become HTML.
type ConverterConfig struct {
	Kind    ConverterKind `yaml:"kind"`
	Command string        `yaml:"command,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	Retry   RetryConfig   `yaml:"retry"`
}

// RetryConfig controls how failed conversions are retried.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff"`
	Initial    time.Duration    `yaml:"initial,omitempty"`
	Max        time.Duration    `yaml:"max,omitempty"`
	MaxRetries *int             `yaml:"max_retries,omitempty"` // nil means DefaultMaxRetries
}

// EnrichConfig tunes the enrichment pipeline.
type EnrichConfig struct {
	Stages    []string `yaml:"stages,omitempty"` // empty means all stages
	TOCMarker string   `yaml:"toc_marker,omitempty"`
}

// GrammarConfig tunes reference recognition.
type GrammarConfig struct {
	Policy       MatchPolicy `yaml:"policy"`
	FormsFile    string      `yaml:"forms_file,omitempty"`
	DocumentHref string      `yaml:"document_href,omitempty"`
}

// RunnerConfig tunes batch processing.
type RunnerConfig struct {
	Workers int `yaml:"workers"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce       time.Duration `yaml:"debounce,omitempty"`
	RescanInterval time.Duration `yaml:"rescan_interval,omitempty"` // zero disables periodic rescans
	MetricsAddr    string        `yaml:"metrics_addr,omitempty"`
}

// NotifyConfig configures document event publishing. An empty URL disables it.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads configuration from path. Environment variables from .env files are
// loaded first and ${VAR} references in the file are expanded. An empty path
// yields the defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if configPath == "" {
		return Default(), nil
	}

	// #nosec G304 -- configuration path is supplied by the operator
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(strings.NewReader(os.ExpandEnv(string(data))))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes, defaults and validates a configuration document. Unknown keys
// are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").Fatal().Build()
	}

	applyDefaults(cfg)
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	header := "# specref configuration\n# ${VAR} references are expanded from the environment and .env files.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
