package config

import (
	"strings"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// Normalize canonicalises enum fields and extensions. Unknown enum values are
// reported rather than silently replaced.
func (c *Config) Normalize() error {
	var err error

	if c.Converter.Kind, err = converterKindNormalizer.NormalizeWithValidation(string(c.Converter.Kind)); err != nil {
		return invalid("converter.kind", err)
	}
	if c.Converter.Retry.Backoff, err = retryBackoffNormalizer.NormalizeWithValidation(string(c.Converter.Retry.Backoff)); err != nil {
		return invalid("converter.retry.backoff", err)
	}
	if c.Grammar.Policy, err = matchPolicyNormalizer.NormalizeWithValidation(string(c.Grammar.Policy)); err != nil {
		return invalid("grammar.policy", err)
	}
	if c.Logging.Level, err = logLevelNormalizer.NormalizeWithValidation(string(c.Logging.Level)); err != nil {
		return invalid("logging.level", err)
	}
	if c.Logging.Format, err = logFormatNormalizer.NormalizeWithValidation(string(c.Logging.Format)); err != nil {
		return invalid("logging.format", err)
	}

	exts := make([]string, 0, len(c.Input.Extensions))
	for _, ext := range c.Input.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Input.Extensions = exts
	return nil
}

// Validate checks cross-field constraints after defaults and normalization.
func (c *Config) Validate() error {
	switch {
	case len(c.Input.Extensions) == 0:
		return errors.ConfigError("input.extensions must name at least one extension").Build()
	case c.Runner.Workers < 1:
		return errors.ConfigError("runner.workers must be positive").
			WithContext("workers", c.Runner.Workers).
			Build()
	case c.Converter.Timeout < 0:
		return errors.ConfigError("converter.timeout must not be negative").Build()
	case c.Converter.Retry.Initial < 0 || c.Converter.Retry.Max < 0:
		return errors.ConfigError("converter.retry durations must not be negative").Build()
	case c.Converter.Retry.MaxRetries != nil && *c.Converter.Retry.MaxRetries < 0:
		return errors.ConfigError("converter.retry.max_retries must not be negative").Build()
	case c.Watch.Debounce < 0 || c.Watch.RescanInterval < 0:
		return errors.ConfigError("watch durations must not be negative").Build()
	case !strings.Contains(c.Grammar.DocumentHref, "{ts}"):
		return errors.ConfigError("grammar.document_href must contain {ts}").
			WithContext("document_href", c.Grammar.DocumentHref).
			Build()
	}
	return nil
}

func invalid(field string, err error) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid "+field).
		WithContext("field", field).
		Fatal().
		Build()
}
