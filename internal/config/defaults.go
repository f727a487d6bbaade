package config

import "time"

// Default values applied when the configuration leaves a field empty.
const (
	DefaultInputDirectory  = "."
	DefaultOutputDirectory = "./out"
	DefaultConverter       = "lowriter"
	DefaultConvertTimeout  = 2 * time.Minute
	DefaultWorkers         = 4
	DefaultDebounce        = 2 * time.Second
	DefaultRetryInitial    = time.Second
	DefaultRetryMax        = 30 * time.Second
	DefaultMaxRetries      = 2
	DefaultNotifySubject   = "specref.documents"
	DefaultTOCMarker       = `<div id="Table of Contents`
	DefaultDocumentHref    = "../{ts}/{ts}.html"
)

// DefaultExtensions are the input file extensions processed when none are configured.
func DefaultExtensions() []string {
	return []string{".docx", ".doc", ".odt", ".html", ".htm"}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Input.Directory == "" {
		cfg.Input.Directory = DefaultInputDirectory
	}
	if len(cfg.Input.Extensions) == 0 {
		cfg.Input.Extensions = DefaultExtensions()
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if cfg.Converter.Kind == "" {
		cfg.Converter.Kind = ConverterAuto
	}
	if cfg.Converter.Command == "" {
		cfg.Converter.Command = DefaultConverter
	}
	if cfg.Converter.Timeout == 0 {
		cfg.Converter.Timeout = DefaultConvertTimeout
	}
	if cfg.Converter.Retry.Backoff == "" {
		cfg.Converter.Retry.Backoff = RetryBackoffLinear
	}
	if cfg.Converter.Retry.Initial == 0 {
		cfg.Converter.Retry.Initial = DefaultRetryInitial
	}
	if cfg.Converter.Retry.Max == 0 {
		cfg.Converter.Retry.Max = DefaultRetryMax
	}
	if cfg.Converter.Retry.MaxRetries == nil {
		n := DefaultMaxRetries
		cfg.Converter.Retry.MaxRetries = &n
	}
	if cfg.Enrich.TOCMarker == "" {
		cfg.Enrich.TOCMarker = DefaultTOCMarker
	}
	if cfg.Grammar.Policy == "" {
		cfg.Grammar.Policy = MatchPolicyFirst
	}
	if cfg.Grammar.DocumentHref == "" {
		cfg.Grammar.DocumentHref = DefaultDocumentHref
	}
	if cfg.Runner.Workers == 0 {
		cfg.Runner.Workers = DefaultWorkers
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
