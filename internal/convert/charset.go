package convert

import (
	"fmt"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeHTML returns data as UTF-8. The encoding comes from a byte order mark
// or a <meta> charset declaration; undeclared input that is not valid UTF-8 is
// read as windows-1252. A UTF-8 byte order mark is dropped.
func DecodeHTML(data []byte) (string, error) {
	enc, name, _ := charset.DetermineEncoding(data, "text/html")
	if name == "utf-8" {
		enc = unicode.UTF8BOM
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}
