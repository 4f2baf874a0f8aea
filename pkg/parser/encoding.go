package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode sniffs the encoding of uploaded text, strips any BOM,
// and returns UTF-8 bytes plus the detected encoding name. Valid UTF-8
// passes through untouched; UTF-16 is recognized by BOM; anything else
// falls back to Latin-1, which cannot fail.
func DetectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[3:], "utf-8-bom", nil

	case bytes.HasPrefix(data, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("utf-16le decode: %w", err)
		}
		return out, "utf-16le", nil

	case bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data[2:])
		if err != nil {
			return nil, "", fmt.Errorf("utf-16be decode: %w", err)
		}
		return out, "utf-16be", nil

	case utf8.Valid(data):
		return data, "utf-8", nil
	}

	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, "", fmt.Errorf("latin-1 decode: %w", err)
	}
	return out, "latin-1", nil
}
