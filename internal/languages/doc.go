// Package languages holds the fixed set of target languages voxlate can
// translate into, together with the code used for speech synthesis.
package languages
