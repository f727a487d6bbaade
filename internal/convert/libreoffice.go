package convert

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// DefaultCommand is the LibreOffice writer entry point.
const DefaultCommand = "lowriter"

// LibreOffice converts office documents by running the LibreOffice command
// line into a scratch directory.
type LibreOffice struct {
	Command string
	Timeout time.Duration // zero means no limit beyond the caller's context
}

// NewLibreOffice returns a converter running command, or DefaultCommand when empty.
func NewLibreOffice(command string, timeout time.Duration) *LibreOffice {
	if command == "" {
		command = DefaultCommand
	}
	return &LibreOffice{Command: command, Timeout: timeout}
}

func (l *LibreOffice) Name() string { return "libreoffice" }

// Convert implements Converter.
func (l *LibreOffice) Convert(ctx context.Context, path string) (string, error) {
	src, err := filepath.Abs(path)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve source path").
			WithContext("path", path).
			Build()
	}
	if _, err := os.Stat(src); err != nil {
		return "", errors.WrapError(err, errors.CategoryNotFound, "source document not found").
			WithContext("path", path).
			Build()
	}

	tmp, err := os.MkdirTemp("", "specref-convert-*")
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to create scratch directory").Build()
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	runCtx := ctx
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	// Each run gets its own profile so concurrent conversions do not contend
	// for the user installation lock.
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(tmp, "profile"))
	args := []string{profile, "--headless", "--convert-to", "html", src, "--outdir", tmp}

	// #nosec G204 -- command is operator configuration, arguments are not shell-interpreted
	cmd := exec.CommandContext(runCtx, l.Command, args...)
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", l.runError(ctx, runCtx, err, path, stderr.String())
	}

	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	out := filepath.Join(tmp, stem+".html")
	data, err := os.ReadFile(filepath.Clean(out))
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConversion, "converter produced no output").
			WithContext("path", path).
			WithContext("command", l.Command).
			Build()
	}
	text, err := DecodeHTML(data)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConversion, "failed to decode converted document").
			WithContext("path", path).
			Build()
	}
	return text, nil
}

func (l *LibreOffice) runError(ctx, runCtx context.Context, err error, path, stderr string) error {
	switch {
	case stderrors.Is(err, exec.ErrNotFound):
		return errors.WrapError(err, errors.CategoryConversion, "converter command not found").
			WithContext("command", l.Command).
			Fatal().
			Build()
	case ctx.Err() != nil:
		return errors.WrapError(ctx.Err(), errors.CategoryRuntime, "conversion canceled").
			WithContext("path", path).
			Build()
	case runCtx.Err() != nil:
		return errors.WrapError(runCtx.Err(), errors.CategoryConversion, "conversion timed out").
			WithContext("path", path).
			WithContext("timeout", l.Timeout.String()).
			Build()
	}
	b := errors.WrapError(err, errors.CategoryConversion, "converter failed").
		WithContext("path", path).
		WithContext("command", l.Command)
	if msg := strings.TrimSpace(stderr); msg != "" {
		b = b.WithContext("stderr", msg)
	}
	return b.Build()
}
