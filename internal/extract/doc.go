// Package extract converts uploaded documents (PDF, plain text, CSV and
// XLS/XLSX spreadsheets) into a single plain-text string for translation.
// The handler is chosen from the declared media type or the file extension;
// anything else is rejected with ErrUnsupportedFileType.
package extract
