package renamer

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ParseEncoding resolves a user-facing encoding name to a text encoding.
// Names mirror the ones script authors are used to: utf8, utf8bom, unicode
// (UTF-16LE), bigendianunicode, ascii and ansi (Windows-1252).
func ParseEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf8":
		return unicode.UTF8, nil
	case "utf8bom":
		return unicode.UTF8BOM, nil
	case "unicode", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "bigendianunicode":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "ascii":
		// ASCII is a strict subset of UTF-8; no transformation needed.
		return unicode.UTF8, nil
	case "ansi":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
