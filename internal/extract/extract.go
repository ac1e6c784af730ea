package extract

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFileType is returned for documents no handler accepts
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrNoExtractableText is returned when a PDF yields no text at all
	ErrNoExtractableText = errors.New("no extractable text found")
)

// Kind identifies the handler used for a document
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindPlainText
	KindCSV
	KindSpreadsheet
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindPlainText:
		return "plain_text"
	case KindCSV:
		return "csv"
	case KindSpreadsheet:
		return "spreadsheet"
	default:
		return "unsupported"
	}
}

// Document is an uploaded file: its bytes plus declared name and media type
type Document struct {
	Name      string
	MediaType string
	Data      []byte
}

// NewDocumentFromFile reads a local file, guessing the media type from its extension
func NewDocumentFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &Document{
		Name:      filepath.Base(path),
		MediaType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Data:      data,
	}, nil
}

// detection rules in priority order; a rule matches on media type or extension
var rules = []struct {
	kind       Kind
	mediaTypes []string
	extensions []string
}{
	{KindPDF, []string{"application/pdf"}, []string{".pdf"}},
	{KindPlainText, []string{"text/plain"}, []string{".txt"}},
	{KindCSV, []string{"text/csv"}, []string{".csv"}},
	{KindSpreadsheet, []string{
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, []string{".xls", ".xlsx"}},
}

// DetectKind picks the handler for a document from its name and media type
func DetectKind(name, mediaType string) Kind {
	declared := strings.ToLower(strings.TrimSpace(mediaType))
	if parsed, _, err := mime.ParseMediaType(declared); err == nil {
		declared = parsed
	}
	ext := strings.ToLower(filepath.Ext(name))

	for _, rule := range rules {
		for _, mt := range rule.mediaTypes {
			if declared == mt {
				return rule.kind
			}
		}
		for _, e := range rule.extensions {
			if ext == e {
				return rule.kind
			}
		}
	}
	return KindUnsupported
}

// handler turns a document's bytes into text
type handler func(doc *Document) (string, error)

// Extractor dispatches documents to the handler for their kind
type Extractor struct {
	handlers map[Kind]handler
	out      io.Writer
}

// NewExtractor creates an extractor writing progress notes to out (may be nil)
func NewExtractor(out io.Writer) *Extractor {
	if out == nil {
		out = io.Discard
	}
	e := &Extractor{out: out}
	e.handlers = map[Kind]handler{
		KindPDF:         e.extractPDF,
		KindPlainText:   extractPlainText,
		KindCSV:         extractCSV,
		KindSpreadsheet: extractSpreadsheet,
	}
	return e
}

// Extract returns the text content of doc
func (e *Extractor) Extract(doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: no document", ErrUnsupportedFileType)
	}

	kind := DetectKind(doc.Name, doc.MediaType)
	h, ok := e.handlers[kind]
	if !ok {
		return "", fmt.Errorf("%w %q (%s): please upload PDF, TXT, CSV, XLS or XLSX",
			ErrUnsupportedFileType, doc.Name, doc.MediaType)
	}

	fmt.Fprintf(e.out, "  Extracting %s as %s (%d bytes)\n", doc.Name, kind, len(doc.Data))
	text, err := h(doc)
	if err != nil {
		return "", err
	}
	return text, nil
}
