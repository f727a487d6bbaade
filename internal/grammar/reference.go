package grammar

import "git.home.luguber.info/inful/specref/internal/scan"

// Reference is one recognised cross-reference.
type Reference struct {
	// Form is the name of the form that matched.
	Form string
	// TS is the target document number (NN.NNN), empty for intra-document references.
	TS string
	// Clause is the clause label, empty for document-only references.
	Clause string
	// Span is the matched range in the searched text.
	Span scan.Span
	// Text is the matched text, which becomes the visible link text.
	Text string
}

// Local reports whether the reference points into the current document.
func (r Reference) Local() bool { return r.TS == "" }
