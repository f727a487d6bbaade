package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError_Builder(t *testing.T) {
	err := NewError(CategoryConfig, "invalid configuration").
		WithSeverity(SeverityFatal).
		WithContext("file", "specref.yaml").
		Build()

	assert.Equal(t, CategoryConfig, err.Category())
	assert.Equal(t, SeverityFatal, err.Severity())
	assert.Equal(t, "invalid configuration", err.Message())
	assert.True(t, err.IsFatal())

	file, ok := err.Context().GetString("file")
	require.True(t, ok)
	assert.Equal(t, "specref.yaml", file)
	assert.Equal(t, "[config:fatal] invalid configuration", err.Error())
}

func TestClassifiedError_WrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := WrapError(cause, CategoryConversion, "converter failed").Build()

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[conversion:error] converter failed: exit status 1", err.Error())
}

func TestAsClassified_FindsWrappedError(t *testing.T) {
	inner := ValidationError("unknown stage").Build()
	outer := fmt.Errorf("parsing flags: %w", inner)

	classified, ok := AsClassified(outer)
	require.True(t, ok)
	assert.Equal(t, CategoryValidation, classified.Category())
	assert.True(t, IsClassified(outer))
	assert.True(t, HasCategory(outer, CategoryValidation))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	assert.Equal(t, SeverityError, GetSeverity(stderrors.New("plain")))
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := NotFoundError("input missing").Build()
	derived := base.WithContext("path", "/tmp/x")

	_, ok := base.Context().Get("path")
	assert.False(t, ok)
	path, ok := derived.Context().GetString("path")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/x", path)
	assert.ErrorIs(t, derived, base)
}

func TestNotifyError_IsWarning(t *testing.T) {
	assert.Equal(t, SeverityWarning, NotifyError("publish failed").Build().Severity())
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"not found", NotFoundError("missing").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"conversion", ConversionError("lowriter missing").Build(), 8},
		{"filesystem", FileSystemError("write failed").Build(), 11},
		{"internal", InternalError("bug").Build(), 10},
		{"unclassified", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.stderr = &stderr

	exitCode := -1
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(WrapError(stderrors.New("permission denied"), CategoryFileSystem, "cannot write output").
		WithContext("path", "out/23.501/23.501.html").
		Build())

	assert.Equal(t, 11, exitCode)
	assert.Contains(t, stderr.String(), "cannot write output (use -v for details)")
	assert.Contains(t, logs.String(), "category=filesystem")
	assert.Contains(t, logs.String(), "permission denied")
}

func TestCLIErrorAdapter_VerboseFormat(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, nil)
	msg := adapter.FormatError(WrapError(stderrors.New("exit status 77"), CategoryConversion, "converter failed").Build())
	assert.Equal(t, "Error: [conversion:error] converter failed: exit status 77", msg)
	assert.Equal(t, "Error: boom", adapter.FormatError(stderrors.New("boom")))
	assert.Equal(t, "", adapter.FormatError(nil))
}
