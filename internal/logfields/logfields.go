package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyDocument   = "document"
	KeyTSNumber   = "ts_number"
	KeyStage      = "stage"
	KeyForm       = "form"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyConverter  = "converter"
	KeyWorkers    = "workers"
	KeySubject    = "subject"
	KeyAnchor     = "anchor"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Document(name string) slog.Attr   { return slog.String(KeyDocument, name) }
func TSNumber(ts string) slog.Attr     { return slog.String(KeyTSNumber, ts) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Form(name string) slog.Attr       { return slog.String(KeyForm, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr        { return slog.String(KeyOutput, p) }
func Converter(name string) slog.Attr  { return slog.String(KeyConverter, name) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func Subject(s string) slog.Attr       { return slog.String(KeySubject, s) }
func Anchor(a string) slog.Attr        { return slog.String(KeyAnchor, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
