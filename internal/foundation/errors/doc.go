// Package errors provides the classified error type used by specref's outer layers.
//
// The enrichment core never fails: a missing pattern leaves text unchanged. Errors
// only arise around it, when loading configuration or grammar tables, converting
// source documents, touching the file system or publishing notifications. Those
// errors carry a category and severity so the CLI can pick an exit code and log
// level without string matching.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryConversion, "converter failed").
//		WithContext("file", path).
//		Build()
package errors
