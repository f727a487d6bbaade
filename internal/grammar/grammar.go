// Package grammar recognises specification cross-references in running text.
//
// A Grammar is an ordered table of Forms compiled into a single alternation. Each
// form is wrapped in its own capture group so a match reports which form produced
// it, and the ts and clause roles are renamed per form so that captures from
// different rows never mix.
package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/scan"
)

// Policy selects which alternative wins when several forms match at the same
// leftmost position.
type Policy string

const (
	// PolicyFirst prefers the earliest form in the table.
	PolicyFirst Policy = "first"
	// PolicyLongest prefers the longest match regardless of table order.
	PolicyLongest Policy = "longest"
)

// DefaultDocumentHref is the inter-document link template.
const DefaultDocumentHref = "../{ts}/{ts}.html"

// Option configures a Grammar.
type Option func(*Grammar)

// WithPolicy sets the match policy.
func WithPolicy(p Policy) Option {
	return func(g *Grammar) { g.policy = p }
}

// WithDocumentHref sets the link template for references that name a document.
// Every {ts} in the template is replaced by the TS number.
func WithDocumentHref(template string) Option {
	return func(g *Grammar) { g.documentHref = template }
}

type compiledForm struct {
	form   Form
	group  int
	ts     int
	clause int
}

// Grammar matches references. It is safe for concurrent use.
type Grammar struct {
	forms        []compiledForm
	re           *regexp.Regexp
	policy       Policy
	documentHref string
}

var roleGroup = regexp.MustCompile(`\(\?P?<(ts|clause)>`)

// New validates forms and compiles them into a grammar.
func New(forms []Form, opts ...Option) (*Grammar, error) {
	g := &Grammar{policy: PolicyFirst, documentHref: DefaultDocumentHref}
	for _, opt := range opts {
		opt(g)
	}

	if g.policy != PolicyFirst && g.policy != PolicyLongest {
		return nil, errors.ValidationError(fmt.Sprintf("unknown match policy %q", g.policy)).
			WithContext("policy", string(g.policy)).
			Build()
	}
	if len(forms) == 0 {
		return nil, errors.ValidationError("grammar has no forms").Build()
	}

	seen := make(map[string]bool, len(forms))
	alternatives := make([]string, 0, len(forms))
	for i, f := range forms {
		if err := validateForm(f, seen); err != nil {
			return nil, err
		}
		seen[f.Name] = true

		prefix := fmt.Sprintf("f%d", i)
		body := roleGroup.ReplaceAllString(f.Expand(), "(?P<"+prefix+"_$1>")
		alternatives = append(alternatives, "(?P<"+prefix+">"+body+")")
	}

	re, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to compile grammar").Fatal().Build()
	}
	if g.policy == PolicyLongest {
		re.Longest()
	}
	g.re = re

	g.forms = make([]compiledForm, len(forms))
	for i, f := range forms {
		prefix := fmt.Sprintf("f%d", i)
		g.forms[i] = compiledForm{
			form:   f,
			group:  re.SubexpIndex(prefix),
			ts:     re.SubexpIndex(prefix + "_" + RoleTS),
			clause: re.SubexpIndex(prefix + "_" + RoleClause),
		}
	}
	return g, nil
}

func validateForm(f Form, seen map[string]bool) error {
	invalid := func(msg string) error {
		return errors.ValidationError(msg).WithContext("form", f.Name).Build()
	}

	if strings.TrimSpace(f.Name) == "" {
		return invalid("form name is empty")
	}
	if seen[f.Name] {
		return invalid(fmt.Sprintf("duplicate form %q", f.Name))
	}

	re, err := regexp.Compile(f.Expand())
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, fmt.Sprintf("form %q does not compile", f.Name)).
			WithContext("form", f.Name).
			Fatal().
			Build()
	}
	if re.SubexpIndex(RoleTS) < 0 && re.SubexpIndex(RoleClause) < 0 {
		return invalid(fmt.Sprintf("form %q captures neither ts nor clause", f.Name))
	}
	if re.MatchString("") {
		return invalid(fmt.Sprintf("form %q matches the empty string", f.Name))
	}
	return nil
}

// Default returns a grammar over DefaultForms.
func Default(opts ...Option) *Grammar {
	g, err := New(DefaultForms(), opts...)
	if err != nil {
		panic(fmt.Sprintf("grammar: default table: %v", err))
	}
	return g
}

// Forms returns the table in match order.
func (g *Grammar) Forms() []Form {
	out := make([]Form, len(g.forms))
	for i, cf := range g.forms {
		out[i] = cf.form
	}
	return out
}

// Policy returns the match policy.
func (g *Grammar) Policy() Policy { return g.policy }

// FindAll returns the non-overlapping references in text, left to right.
func (g *Grammar) FindAll(text string) []Reference {
	matches := g.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		for _, cf := range g.forms {
			if m[2*cf.group] < 0 {
				continue
			}
			refs = append(refs, Reference{
				Form:   cf.form.Name,
				TS:     capture(text, m, cf.ts),
				Clause: capture(text, m, cf.clause),
				Span:   scan.Span{Start: m[0], End: m[1]},
				Text:   text[m[0]:m[1]],
			})
			break
		}
	}
	return refs
}

func capture(text string, m []int, group int) string {
	if group < 0 || m[2*group] < 0 {
		return ""
	}
	return text[m[2*group]:m[2*group+1]]
}

// Href renders the link target of ref. References that name a document link to
// that document, optionally at the clause anchor; references with only a clause
// link within the current document.
func (g *Grammar) Href(ref Reference) (string, bool) {
	switch {
	case ref.TS != "":
		href := strings.ReplaceAll(g.documentHref, "{ts}", ref.TS)
		if ref.Clause != "" {
			href += "#" + ref.Clause
		}
		return href, true
	case ref.Clause != "":
		return "#" + ref.Clause, true
	default:
		return "", false
	}
}
