package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/chunk"
	"codeberg.org/snonux/voxlate/internal/extract"
	"codeberg.org/snonux/voxlate/internal/languages"
	"github.com/google/uuid"
)

// Extractor turns a document into text
type Extractor interface {
	Extract(doc *extract.Document) (string, error)
}

// Translator translates ordered chunks into one text
type Translator interface {
	Translate(ctx context.Context, chunks []string, targetLanguage string) (string, error)
}

// Synthesizer turns text into an audio artifact
type Synthesizer interface {
	Synthesize(ctx context.Context, text, langCode string) (*audio.Artifact, error)
}

// Request is one user action: typed text or an uploaded document
type Request struct {
	Text     string
	Document *extract.Document // takes precedence over Text when set
	Language languages.Language
}

// Result is everything a successful run produced
type Result struct {
	RunID       string
	SourceText  string
	Chunks      []string
	Translation string
	Language    languages.Language
	Audio       *audio.Artifact
}

// Pipeline wires the stages of a run
type Pipeline struct {
	extractor   Extractor
	translator  Translator
	synthesizer Synthesizer
	maxChars    int
	out         io.Writer
	observer    func(State)
}

// New creates a pipeline; maxChars <= 0 uses the default chunk size
func New(extractor Extractor, translator Translator, synthesizer Synthesizer, maxChars int) *Pipeline {
	if maxChars <= 0 {
		maxChars = chunk.DefaultMaxChars
	}
	return &Pipeline{
		extractor:   extractor,
		translator:  translator,
		synthesizer: synthesizer,
		maxChars:    maxChars,
		out:         io.Discard,
	}
}

// SetProgress sets where progress lines are written
func (p *Pipeline) SetProgress(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	p.out = w
}

// OnStateChange registers a callback for every state transition
func (p *Pipeline) OnStateChange(fn func(State)) {
	p.observer = fn
}

func (p *Pipeline) notify(s State) {
	if p.observer != nil {
		p.observer(s)
	}
}

// Run executes one request. On error no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	return p.run(ctx, req, p.notify)
}

func (p *Pipeline) run(ctx context.Context, req Request, notify func(State)) (*Result, error) {
	runID := uuid.NewString()

	fail := func(err error) (*Result, error) {
		fmt.Fprintf(p.out, "Error: %v\n", err)
		notify(Failed)
		return nil, err
	}

	lang, ok := languages.ByCode(req.Language.Code)
	if !ok {
		return fail(fmt.Errorf("%w: %q", languages.ErrUnknownLanguage, req.Language.Name))
	}

	fmt.Fprintf(p.out, "Run %s: translating into %s (%s)\n", runID, lang.Name, lang.Code)

	text := req.Text
	if req.Document != nil {
		notify(Extracting)
		fmt.Fprintf(p.out, "Extracting text from %s...\n", req.Document.Name)

		extracted, err := p.extractor.Extract(req.Document)
		if err != nil {
			return fail(err)
		}
		text = extracted
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fail(ErrEmptyInput)
	}

	notify(Translating)
	chunks := chunk.Split(text, p.maxChars)
	fmt.Fprintf(p.out, "Translating %d chars in %d chunk(s)...\n", len([]rune(text)), len(chunks))

	translated, err := p.translator.Translate(ctx, chunks, lang.Name)
	if err != nil {
		return fail(err)
	}

	notify(Synthesizing)
	fmt.Fprintf(p.out, "Generating audio...\n")

	artifact, err := p.synthesizer.Synthesize(ctx, translated, lang.Code)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(p.out, "Done: audio saved to %s\n", artifact.Path)
	notify(Done)

	return &Result{
		RunID:       runID,
		SourceText:  text,
		Chunks:      chunks,
		Translation: translated,
		Language:    lang,
		Audio:       artifact,
	}, nil
}
