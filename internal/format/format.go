package format

import (
	"path/filepath"
	"strings"
)

// Tag identifies a supported document category.
type Tag string

const (
	PDF      Tag = "pdf"
	DOCX     Tag = "docx"
	TXT      Tag = "txt"
	Excel    Tag = "excel"
	Markdown Tag = "markdown"
	ImageOCR Tag = "image_ocr"
	Unknown  Tag = "unknown"
)

var extensions = map[string]Tag{
	".pdf":  PDF,
	".docx": DOCX,
	".doc":  DOCX,
	".txt":  TXT,
	".xlsx": Excel,
	".xls":  Excel,
	".md":   Markdown,
	".jpg":  ImageOCR,
	".jpeg": ImageOCR,
	".png":  ImageOCR,
	".tiff": ImageOCR,
	".bmp":  ImageOCR,
}

// supportedOrder keeps SupportedExtensions stable for messages.
var supportedOrder = []string{
	".pdf", ".docx", ".doc", ".txt", ".xlsx", ".xls", ".md",
	".jpg", ".jpeg", ".png", ".tiff", ".bmp",
}

// Resolve maps a filename to its format tag. Names without a known
// extension resolve to Unknown.
func Resolve(filename string) Tag {
	if tag, ok := extensions[Extension(filename)]; ok {
		return tag
	}
	return Unknown
}

// Extension returns the lowercase suffix of filename including the dot.
// A leading dot does not start a suffix, so ".pdf" has none.
func Extension(filename string) string {
	name := filepath.Base(filename)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// IsSupported reports whether filename carries a supported extension.
func IsSupported(filename string) bool {
	return Resolve(filename) != Unknown
}

// SupportedExtensions returns every accepted extension.
func SupportedExtensions() []string {
	out := make([]string, len(supportedOrder))
	copy(out, supportedOrder)
	return out
}

// All returns every tag that must have an extractor.
func All() []Tag {
	return []Tag{PDF, DOCX, TXT, Excel, Markdown, ImageOCR}
}

// Display returns the uppercase form shown in metadata records.
func (t Tag) Display() string {
	return strings.ToUpper(string(t))
}

func (t Tag) String() string {
	return string(t)
}
