package enrich

import (
	"strings"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
	"git.home.luguber.info/inful/specref/internal/foundation/normalization"
)

// Stage names, in execution order.
const (
	StageRemoveHardSpaces    = "remove_hard_spaces"
	StageRemoveLanguageSpans = "remove_language_spans"
	StageLinkTOC             = "link_toc"
	StageIDHeadings          = "id_headings"
	StageLinkReferences      = "link_references"
)

// Enrich applies all stages with their defaults.
func Enrich(doc string) string {
	doc = RemoveHardSpaces(doc)
	doc = RemoveLanguageSpans(doc)
	doc = LinkTOC(doc)
	doc = IDHeadings(doc)
	return LinkReferences(doc)
}

// stageResult is what one stage reports back to the Enricher.
type stageResult struct {
	edits int
	refs  map[string]int
}

type stage struct {
	name string
	run  func(e *Enricher, doc string) (string, stageResult)
}

func countOnly(fn func(string) (string, int)) func(*Enricher, string) (string, stageResult) {
	return func(_ *Enricher, doc string) (string, stageResult) {
		out, n := fn(doc)
		return out, stageResult{edits: n}
	}
}

// registry lists every stage in execution order.
var registry = []stage{
	{name: StageRemoveHardSpaces, run: countOnly(removeHardSpaces)},
	{name: StageRemoveLanguageSpans, run: countOnly(removeLanguageSpans)},
	{name: StageLinkTOC, run: func(e *Enricher, doc string) (string, stageResult) {
		out, n := linkTOC(doc, e.tocMarker)
		return out, stageResult{edits: n}
	}},
	{name: StageIDHeadings, run: countOnly(idHeadings)},
	{name: StageLinkReferences, run: func(e *Enricher, doc string) (string, stageResult) {
		out, refs := linkReferences(doc, e.grammar)
		n := 0
		for _, c := range refs {
			n += c
		}
		return out, stageResult{edits: n, refs: refs}
	}},
}

// StageNames returns the stage names in execution order.
func StageNames() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.name
	}
	return names
}

var stageNormalizer = func() *normalization.EnumNormalizer[string] {
	values := make(map[string]string, 2*len(registry))
	for _, s := range registry {
		values[s.name] = s.name
		values[strings.ReplaceAll(s.name, "_", "-")] = s.name
	}
	return normalization.NewEnumNormalizer("stage", values, "")
}()

// ParseStages turns a list of stage names into an include filter. Names are
// case-insensitive and may use dashes instead of underscores. An empty list
// selects every stage.
func ParseStages(list []string) (map[string]struct{}, error) {
	include := make(map[string]struct{}, len(list))
	for _, raw := range list {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		name, err := stageNormalizer.NormalizeWithValidation(raw)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryValidation, "unknown stage").
				WithContext("stage", raw).
				WithContext("valid", strings.Join(StageNames(), ",")).
				Build()
		}
		include[name] = struct{}{}
	}
	return include, nil
}

// buildPipeline returns the registered stages that pass the include filter, in
// execution order. An empty filter selects every stage.
func buildPipeline(include map[string]struct{}) []stage {
	if len(include) == 0 {
		return registry
	}
	out := make([]stage, 0, len(include))
	for _, s := range registry {
		if _, ok := include[s.name]; ok {
			out = append(out, s)
		}
	}
	return out
}
