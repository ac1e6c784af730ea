// Package models lists the language and speech models available to the
// configured API keys, so users can pick a value for --model and
// --openai-model.
package models
