package grammar

import (
	stderrors "errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

type formsFile struct {
	Forms []Form `yaml:"forms"`
}

// LoadForms reads a YAML grammar table:
//
//	forms:
//	  - name: document-clause
//	    pattern: '(?:\bTS\s+)?{ts}\s+{ref},?\s+\b[cC]lause\s+{clause}'
//
// Forms are returned in file order; validation happens in New.
func LoadForms(r io.Reader) ([]Form, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f formsFile
	if err := dec.Decode(&f); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.ConfigError("grammar table is empty").Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse grammar table").Fatal().Build()
	}
	if len(f.Forms) == 0 {
		return nil, errors.ConfigError("grammar table defines no forms").Build()
	}
	return f.Forms, nil
}

// LoadFormsFile reads a YAML grammar table from path.
func LoadFormsFile(path string) ([]Form, error) {
	// #nosec G304 -- path is an explicit user-supplied grammar file
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "grammar file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open grammar file").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = fh.Close() }()

	forms, err := LoadForms(fh)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return forms, nil
}
