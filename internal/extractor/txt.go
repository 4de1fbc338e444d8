package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textExtractor handles plain text and Markdown, which differ only in tag.
type textExtractor struct {
	tag format.Tag
}

func NewTextExtractor(tag format.Tag) Extractor {
	return textExtractor{tag: tag}
}

func (e textExtractor) Extract(_ context.Context, r io.ReadSeeker) Result {
	data, err := readAll(r)
	if err != nil {
		return Failed(e.tag, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return Failed(e.tag, err)
	}

	return Text(strings.TrimSpace(normalizeNewlines(text)))
}

// decodeText decodes UTF-8, honouring UTF-8 and UTF-16 byte order marks.
func decodeText(data []byte) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16(data, unicode.LittleEndian)
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16(data, unicode.BigEndian)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("content is not valid UTF-8 (invalid byte at offset %d)", invalidOffset(data))
	}

	return string(data), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16 content: %w", err)
	}
	return string(decoded), nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
