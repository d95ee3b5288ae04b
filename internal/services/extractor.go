package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns document bytes into plain text
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor extracts the text layer of PDF documents
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText concatenates the plain text of every page, separated by
// newlines. Malformed documents return an *ExtractionError, including
// those that make the parser panic.
func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewExtractionError("extract_text", fmt.Errorf("pdf parser panic: %v", r), "")
		}
	}()

	if len(data) == 0 {
		return "", NewExtractionError("extract_text", nil, "document is empty")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", NewExtractionError("open_document", err, "")
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", NewExtractionError("read_page", fmt.Errorf("page %d: %w", i, err), "")
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
