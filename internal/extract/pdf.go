package extract

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var disablePDFConfigDir sync.Once

// pdfPageCount validates the file with pdfcpu and returns its page count
func pdfPageCount(data []byte) (count int, err error) {
	disablePDFConfigDir.Do(api.DisableConfigDir)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu: %v", r)
		}
	}()
	return api.PageCount(bytes.NewReader(data), nil)
}

// extractPDF concatenates the text of every page, separated by a blank line
func (e *Extractor) extractPDF(doc *Document) (text string, err error) {
	if n, err := pdfPageCount(doc.Data); err != nil {
		fmt.Fprintf(e.out, "  Warning: PDF preflight failed: %v\n", err)
	} else {
		fmt.Fprintf(e.out, "  PDF has %d pages\n", n)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only pages have no content to interpret
			fmt.Fprintf(e.out, "  Warning: no text on page %d: %v\n", i, err)
			pageText = ""
		}
		pages = append(pages, pageText)
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", fmt.Errorf("%w: the PDF may be scanned; consider OCR", ErrNoExtractableText)
	}
	return text, nil
}
