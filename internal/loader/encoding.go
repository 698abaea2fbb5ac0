package loader

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeText returns raw as UTF-8. A byte order mark selects UTF-8 or UTF-16;
// input that is not valid UTF-8 is read as Windows-1252, the usual encoding of
// spreadsheet exports on Windows.
func decodeText(raw []byte) (string, error) {
	out, err := io.ReadAll(textReader(bytes.NewReader(raw), raw))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// textReader wraps r with the decoder chosen from a prefix of its content.
func textReader(r io.Reader, head []byte) io.Reader {
	fallback := unicode.UTF8.NewDecoder()
	if !hasBOM(head) && !utf8.Valid(head) {
		fallback = charmap.Windows1252.NewDecoder()
	}
	return transform.NewReader(r, unicode.BOMOverride(fallback))
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(b, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(b, []byte{0xFF, 0xFE})
}
