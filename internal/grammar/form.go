package grammar

import "strings"

// Capture roles a form may bind.
const (
	RoleTS     = "ts"
	RoleClause = "clause"
)

// Form is one surface form of a cross-reference.
//
// Pattern is an RE2 expression that may use the macros {ts}, {ref}, {clause} and
// {numeral}, or bind the roles directly with (?P<ts>...) and (?P<clause>...).
type Form struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description,omitempty"`
}

// Pattern macros.
const (
	macroTS      = `\b(?P<ts>\d{2}\.\d{3})\b`
	macroRef     = `\[\d+\]`
	macroClause  = `(?P<clause>\d+(?:\.\d+)*[a-z]?)\b`
	macroNumeral = `(?P<clause>\d+(?:\.\d+)+[a-z]?)\b`
)

var macros = strings.NewReplacer(
	"{ts}", macroTS,
	"{ref}", macroRef,
	"{clause}", macroClause,
	"{numeral}", macroNumeral,
)

// Expand returns the form's pattern with macros substituted.
func (f Form) Expand() string {
	return macros.Replace(f.Pattern)
}

// DefaultForms returns the built-in reference table, most specific form first.
func DefaultForms() []Form {
	return []Form{
		{
			Name:        "document-clause",
			Pattern:     `(?:\bTS\s+)?{ts}\s+{ref},?\s+\b[cC]lause\s+{clause}`,
			Description: "TS 23.501 [2], clause 5.4.4.1b",
		},
		{
			Name:        "clause-of-document",
			Pattern:     `(?:\b(?:in|see)\s+)?\b[cC]lause\s+{clause}\s+(?:\([^<>.]+\)\s+)?(?:of|in)\s+TS\s+{ts}\s+{ref}`,
			Description: "clause 5.3.3.1 (Some text) in TS 23.401 [13]",
		},
		{
			Name:        "clause",
			Pattern:     `(?:\b(?:in|see)\s+)?\b[cC]lause\s+{clause}`,
			Description: "see clause 4.4",
		},
		{
			Name:        "bare-numeral",
			Pattern:     `\b(?:in|see)\s+{numeral}`,
			Description: "in 4.3.3.2",
		},
		{
			Name:        "document",
			Pattern:     `(?:\bTS\s+)?{ts}\s+{ref}`,
			Description: "TS 23.501 [2]",
		},
	}
}
