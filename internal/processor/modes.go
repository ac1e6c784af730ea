package processor

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"codeberg.org/snonux/voxlate/internal/archive"
	"codeberg.org/snonux/voxlate/internal/gui"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/models"
	"codeberg.org/snonux/voxlate/internal/server"
)

// RunGUIMode launches the desktop window
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		OutputDir: p.OutputDir(),
		AutoPlay:  !(p.flags.NoAutoPlay || viper.GetBool("gui.no_auto_play")),
	}
	if lang, err := p.Language(); err == nil {
		guiConfig.Language = lang.Name
	}

	app := gui.New(p, guiConfig)
	app.Run()

	return nil
}

// RunServer serves the web interface on addr until it fails
func (p *Processor) RunServer(addr string) error {
	return server.New(p, p.out).Listen(addr)
}

// ListLanguages prints the supported target languages
func (p *Processor) ListLanguages() {
	fmt.Fprintln(p.out, "Supported target languages:")
	for _, lang := range languages.All() {
		fmt.Fprintf(p.out, "  %-22s %s\n", lang.Name, lang.Code)
	}
}

// ListModels prints the models available for the configured keys
func (p *Processor) ListModels(ctx context.Context) error {
	geminiKey, _ := p.geminiKey()
	openAIKey, _ := p.openAIKey()

	lister := models.NewLister(geminiKey, openAIKey)
	lister.SetOutput(p.out)
	return lister.ListAvailableModels(ctx)
}

// ArchiveLastRun moves the previous run's artifacts out of the output slot
func (p *Processor) ArchiveLastRun() error {
	_, err := archive.ArchiveRun(p.OutputDir(), p.out)
	return err
}

var _ gui.Runner = (*Processor)(nil)
var _ server.Runner = (*Processor)(nil)
