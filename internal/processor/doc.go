// Package processor wires configuration to the translation pipeline. It owns
// the process-wide language model client, builds the extractor, translator
// and synthesizer once, and runs the CLI, GUI and HTTP modes.
package processor
