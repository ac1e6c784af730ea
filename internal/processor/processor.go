package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/breaker"
	"codeberg.org/snonux/voxlate/internal/cli"
	"codeberg.org/snonux/voxlate/internal/extract"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/pipeline"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// Processor handles the main translation logic
type Processor struct {
	flags *cli.Flags
	out   io.Writer

	model    *sharedModel
	observer func(pipeline.State)

	// constructors, replaced in tests
	newModel  func(ctx context.Context, config translation.ModelConfig) (translation.Model, error)
	newSpeech func(config *audio.Config) (audio.Provider, error)
	geminiKey func() (string, error)
	openAIKey func() (string, error)

	mu      sync.Mutex
	session *pipeline.Session
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	p := &Processor{
		flags:     flags,
		out:       os.Stdout,
		newModel:  translation.NewModel,
		newSpeech: audio.NewProvider,
		geminiKey: cli.GetGeminiKey,
		openAIKey: cli.GetOpenAIKey,
	}
	p.model = &sharedModel{build: p.buildModel}
	return p
}

// SetOutput redirects progress output; call before the first run
func (p *Processor) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	p.out = w
}

// OnStateChange registers a pipeline state observer; call before the first run
func (p *Processor) OnStateChange(fn func(pipeline.State)) {
	p.observer = fn
}

// OutputDir returns the directory receiving the run artifacts
func (p *Processor) OutputDir() string {
	return p.stringSetting("output.directory", p.flags.OutputDir, cli.DefaultOutputDir())
}

// Language returns the configured target language
func (p *Processor) Language() (languages.Language, error) {
	return languages.Lookup(p.stringSetting("translation.language", p.flags.Language, languages.Default().Name))
}

// Run prepares the clients and submits one request
func (p *Processor) Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	session, err := p.prepare(ctx)
	if err != nil {
		fmt.Fprintf(p.out, "Error: %v\n", err)
		return nil, err
	}
	return session.Submit(ctx, req)
}

// ProcessText translates text given on the command line
func (p *Processor) ProcessText(text string) error {
	lang, err := p.Language()
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nProcessing text (%d chars)\n", len([]rune(text)))
	return p.process(pipeline.Request{Text: text, Language: lang})
}

// ProcessFile translates the contents of a document
func (p *Processor) ProcessFile(path string) error {
	lang, err := p.Language()
	if err != nil {
		return err
	}

	doc, err := extract.NewDocumentFromFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\nProcessing: %s\n", path)
	return p.process(pipeline.Request{Document: doc, Language: lang})
}

func (p *Processor) process(req pipeline.Request) error {
	result, err := p.Run(context.Background(), req)
	if err != nil {
		return err
	}

	translationFile, err := translation.SaveTranslation(p.OutputDir(), result.Translation)
	if err != nil {
		fmt.Fprintf(p.out, "  Warning: Failed to save translation: %v\n", err)
	}

	fmt.Fprintf(p.out, "\n=== %s translation ===\n%s\n", result.Language.Name, result.Translation)
	fmt.Fprintf(p.out, "======================\n")
	if translationFile != "" {
		fmt.Fprintf(p.out, "Translation: %s\n", translationFile)
	}
	fmt.Fprintf(p.out, "Audio:       %s\n", result.Audio.Path)
	return nil
}

// prepare resolves credentials, refreshes the model client and builds the
// session on first use
func (p *Processor) prepare(ctx context.Context) (*pipeline.Session, error) {
	key, err := p.modelCredential()
	if err != nil {
		return nil, err
	}
	if err := p.model.ensure(ctx, key); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		return p.session, nil
	}

	synthesizer, err := p.buildSynthesizer()
	if err != nil {
		return nil, err
	}

	translator := translation.NewTranslator(p.model, float32(p.floatSetting("translation.temperature", p.flags.Temperature)))
	translator.SetProgress(p.out)

	pl := pipeline.New(extract.NewExtractor(p.out), translator, synthesizer, p.intSetting("translation.max_chars", p.flags.MaxChars))
	pl.SetProgress(p.out)
	if p.observer != nil {
		pl.OnStateChange(p.observer)
	}

	p.session = pipeline.NewSession(pl)
	return p.session, nil
}

// modelCredential returns what the model client is keyed on: the API key,
// or the Vertex project when Vertex AI is used
func (p *Processor) modelCredential() (string, error) {
	if project := p.stringSetting("translation.vertex_project", p.flags.VertexProject, ""); project != "" {
		return "vertex:" + project, nil
	}
	if p.modelProvider() == "openai" {
		return p.openAIKey()
	}
	return p.geminiKey()
}

func (p *Processor) modelProvider() string {
	return strings.ToLower(p.stringSetting("translation.provider", p.flags.ModelProvider, "gemini"))
}

func (p *Processor) buildModel(ctx context.Context, key string) (translation.Model, error) {
	config := translation.ModelConfig{
		Provider: p.modelProvider(),
		Model:    p.stringSetting("translation.model", p.flags.Model, ""),
	}
	if project, ok := strings.CutPrefix(key, "vertex:"); ok {
		config.Project = project
		config.Location = p.stringSetting("translation.vertex_location", p.flags.VertexLocation, "us-central1")
	} else {
		config.APIKey = key
	}

	model, err := p.newModel(ctx, config)
	if err != nil {
		return nil, err
	}
	name := config.Model
	if named, ok := model.(interface{ Name() string }); ok {
		name = named.Name()
	}
	fmt.Fprintf(p.out, "Using %s model %s\n", config.Provider, name)

	return translation.NewBreakerModel(model, breaker.DefaultConfig()), nil
}

func (p *Processor) audioConfig() (*audio.Config, error) {
	config := audio.DefaultProviderConfig()
	config.Provider = p.stringSetting("audio.provider", p.flags.AudioProvider, config.Provider)
	config.OutputDir = p.OutputDir()
	config.EnableCache = p.flags.EnableCache || viper.GetBool("audio.enable_cache")
	config.CacheDir = p.stringSetting("audio.cache_dir", "", config.CacheDir)
	config.OpenAIModel = p.stringSetting("audio.openai_model", p.flags.OpenAIModel, config.OpenAIModel)
	config.OpenAIVoice = p.stringSetting("audio.openai_voice", p.flags.OpenAIVoice, config.OpenAIVoice)
	config.OpenAISpeed = p.floatSetting("audio.openai_speed", p.flags.OpenAISpeed)

	if config.Provider == "openai" {
		key, err := p.openAIKey()
		if err != nil {
			return nil, fmt.Errorf("openai speech provider: %w", err)
		}
		config.OpenAIKey = key
	}
	return config, nil
}

func (p *Processor) buildSynthesizer() (*audio.Synthesizer, error) {
	config, err := p.audioConfig()
	if err != nil {
		return nil, err
	}

	provider, err := p.newSpeech(config)
	if err != nil {
		return nil, err
	}
	if err := provider.IsAvailable(); err != nil {
		return nil, fmt.Errorf("speech provider %s unavailable: %w", provider.Name(), err)
	}

	synthesizer, err := audio.NewSynthesizer(audio.NewBreakerProvider(provider, breaker.DefaultConfig()), config)
	if err != nil {
		return nil, err
	}
	synthesizer.SetProgress(p.out)
	return synthesizer, nil
}

// stringSetting prefers an explicit config value, then the flag, then def
func (p *Processor) stringSetting(key, flagValue, def string) string {
	if viper.IsSet(key) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	if flagValue != "" {
		return flagValue
	}
	return def
}

func (p *Processor) intSetting(key string, flagValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return flagValue
}

func (p *Processor) floatSetting(key string, flagValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return flagValue
}
