package config

import "git.home.luguber.info/inful/specref/internal/foundation/normalization"

// ConverterKind selects the document converter.
type ConverterKind string

const (
	// ConverterAuto converts office documents with LibreOffice and reads HTML as is.
	ConverterAuto        ConverterKind = "auto"
	ConverterLibreOffice ConverterKind = "libreoffice"
	ConverterPassthrough ConverterKind = "passthrough"
)

var converterKindNormalizer = normalization.NewEnumNormalizer("converter kind", map[string]ConverterKind{
	"auto":        ConverterAuto,
	"libreoffice": ConverterLibreOffice,
	"lowriter":    ConverterLibreOffice,
	"passthrough": ConverterPassthrough,
	"html":        ConverterPassthrough,
}, ConverterAuto)

// MatchPolicy mirrors the grammar's policy for overlapping reference forms.
type MatchPolicy string

const (
	MatchPolicyFirst   MatchPolicy = "first"
	MatchPolicyLongest MatchPolicy = "longest"
)

var matchPolicyNormalizer = normalization.NewEnumNormalizer("match policy", map[string]MatchPolicy{
	"first":   MatchPolicyFirst,
	"longest": MatchPolicyLongest,
}, MatchPolicyFirst)

// RetryBackoffMode selects how the delay between retries grows.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewEnumNormalizer("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffLinear)
