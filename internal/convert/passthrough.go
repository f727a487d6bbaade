package convert

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

// Passthrough reads HTML sources as they are.
type Passthrough struct{}

func (Passthrough) Name() string { return "passthrough" }

// Convert implements Converter.
func (Passthrough) Convert(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.WrapError(err, errors.CategoryNotFound, "source document not found").
				WithContext("path", path).
				Build()
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read source document").
			WithContext("path", path).
			Build()
	}
	out, err := DecodeHTML(data)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConversion, "failed to decode source document").
			WithContext("path", path).
			Build()
	}
	return out, nil
}
