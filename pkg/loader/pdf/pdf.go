// Package pdf extracts plain text from PDF files on disk.
package pdf

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"papergraph/pkg/logger"
)

// Extractor reads text from local PDF files. The zero value is ready to use.
type Extractor struct{}

// NewExtractor returns a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the full text of the PDF at path. Extraction is a
// fail-soft boundary: an unreadable or corrupt file yields an empty string
// with a logged warning, never an error, so one bad PDF cannot abort a batch.
// Pages that fail to decode individually are skipped.
func (e *Extractor) ExtractText(path string) (text string) {
	// ledongthuc/pdf panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("[PDF] Extraction panicked", "path", path, "recover", r)
			text = ""
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		logger.Warn("[PDF] Failed to open file", "path", path, "err", err)
		return ""
	}
	defer f.Close()

	var b strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("[PDF] Failed to read page", "path", path, "page", i, "err", err)
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String()
}
