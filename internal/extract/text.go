package extract

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// extractPlainText decodes UTF-8, dropping undecodable bytes
func extractPlainText(doc *Document) (string, error) {
	return strings.ToValidUTF8(string(stripBOM(doc.Data)), ""), nil
}
