// Package server is the HTTP shell: a single page form plus a small JSON
// API to submit text or a document, read the translation and download the
// last run's text and audio.
package server
