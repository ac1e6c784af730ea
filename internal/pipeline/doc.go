// Package pipeline runs one translation request end to end: extract the
// document (if any), chunk, translate, synthesize. Each run moves through a
// fixed sequence of states and either reaches Done with a full Result or
// stops at Failed with nothing partial kept.
package pipeline
