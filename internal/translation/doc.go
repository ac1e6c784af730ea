// Package translation translates English text chunk by chunk with a large
// language model. Gemini (google.golang.org/genai) is the default model;
// OpenAI chat completion is available as an alternative. Chunks are sent
// strictly in order, one request each, and a failed chunk fails the whole run.
package translation
