// Package corpus processes a directory of specification sources: it discovers
// inputs, derives each document's TS number from its file name, and converts,
// enriches and writes every document with a bounded worker pool.
package corpus

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/specref/internal/foundation/errors"
)

var (
	compactTS = regexp.MustCompile(`^\d{5}$`)
	dottedTS  = regexp.MustCompile(`^\d{2}\.\d{3}$`)
)

// Discover lists the regular files directly inside dir whose extension is one
// of exts, sorted by name. Hidden files and office lock files are ignored.
func Discover(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "input directory not found").
				WithContext("path", dir).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read input directory").
			WithContext("path", dir).
			Build()
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(name))) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// TSNumberFromPath derives the dotted TS number from a file named
// "<number>-<version>.<ext>", e.g. "23501-g10.docx" gives "23.501". Names
// without a version part or with a malformed number report false.
func TSNumberFromPath(path string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	number, version, ok := strings.Cut(stem, "-")
	if !ok || version == "" {
		return "", false
	}
	switch {
	case compactTS.MatchString(number):
		return number[:2] + "." + number[2:], true
	case dottedTS.MatchString(number):
		return number, true
	}
	return "", false
}

// OutputPath is where the enriched document for ts is written. The layout
// matches the grammar's default inter-document href "../{ts}/{ts}.html".
func OutputPath(outDir, ts string) string {
	return filepath.Join(outDir, ts, ts+".html")
}
