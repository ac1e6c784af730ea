package gui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/voxlate/internal"
	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/extract"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/pipeline"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// documentExtensions are offered by the open dialog
var documentExtensions = []string{".pdf", ".txt", ".csv", ".xls", ".xlsx"}

// Runner executes pipeline requests for the window
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	SetOutput(w io.Writer)
	OnStateChange(fn func(pipeline.State))
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	tabs           *container.AppTabs
	textTab        *container.TabItem
	fileTab        *container.TabItem
	textInput      *widget.Entry
	fileLabel      *widget.Label
	openFileBtn    *ttwidget.Button
	languageSelect *widget.Select
	submitButton   *ttwidget.Button
	resultEntry    *widget.Entry
	audioPlayer    *AudioPlayer
	saveTextBtn    *ttwidget.Button
	saveAudioBtn   *ttwidget.Button
	statusLabel    *widget.Label
	logViewer      *LogViewer

	// State management
	document *extract.Document
	result   *pipeline.Result
	running  bool

	runner Runner
	config *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	OutputDir string
	AutoPlay  bool
	Language  string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		OutputDir: filepath.Join(homeDir, ".local", "state", "voxlate"),
		AutoPlay:  true,
		Language:  languages.Default().Name,
	}
}

// New creates a new GUI application
func New(runner Runner, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.OutputDir == "" {
			config.OutputDir = defaults.OutputDir
		}
		if config.Language == "" {
			config.Language = defaults.Language
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.voxlate")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		runner: runner,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	a.setupUI()

	// Progress goes to the log panel, state changes to the status label
	runner.SetOutput(a.logViewer)
	runner.OnStateChange(func(s pipeline.State) {
		fyne.Do(func() {
			a.updateStatus(statusText(s))
		})
	})

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Voxlate v%s - Translate & Speak", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(900, 750))

	// Input: free text or a document
	a.textInput = widget.NewMultiLineEntry()
	a.textInput.SetPlaceHolder("English text to translate...")
	a.textInput.Wrapping = fyne.TextWrapWord

	a.fileLabel = widget.NewLabel("No file selected")
	a.openFileBtn = ttwidget.NewButtonWithIcon("Open...", theme.FolderOpenIcon(), a.onOpenFile)

	a.textTab = container.NewTabItemWithIcon("Text", theme.DocumentCreateIcon(), a.textInput)
	a.fileTab = container.NewTabItemWithIcon("File", theme.FileIcon(),
		container.NewVBox(
			container.NewHBox(a.openFileBtn, a.fileLabel),
			widget.NewLabel("Supported: PDF, TXT, CSV, XLS, XLSX"),
		))
	a.tabs = container.NewAppTabs(a.textTab, a.fileTab)

	a.languageSelect = widget.NewSelect(languages.Names(), nil)
	if lang, err := languages.Lookup(a.config.Language); err == nil {
		a.languageSelect.SetSelected(lang.Name)
	} else {
		a.languageSelect.SetSelected(languages.Default().Name)
	}

	a.submitButton = ttwidget.NewButtonWithIcon("Translate & Speak", theme.MediaPlayIcon(), a.onSubmit)
	a.submitButton.Importance = widget.HighImportance

	controls := container.NewHBox(
		widget.NewLabel("Target language:"),
		a.languageSelect,
		layout.NewSpacer(),
		a.submitButton,
	)

	inputSection := container.NewBorder(nil, controls, nil, nil, a.tabs)

	// Output: translated text, audio and downloads
	a.resultEntry = widget.NewMultiLineEntry()
	a.resultEntry.SetPlaceHolder("The translation will appear here...")
	a.resultEntry.Wrapping = fyne.TextWrapWord
	a.resultEntry.Disable()

	a.audioPlayer = NewAudioPlayer()

	a.saveTextBtn = ttwidget.NewButtonWithIcon("Save translation", theme.DocumentSaveIcon(), a.onSaveTranslation)
	a.saveAudioBtn = ttwidget.NewButtonWithIcon("Save audio", theme.DownloadIcon(), a.onSaveAudio)

	outputSection := container.NewBorder(
		nil,
		container.NewVBox(
			a.audioPlayer,
			container.NewHBox(a.saveTextBtn, a.saveAudioBtn),
		),
		nil, nil,
		a.resultEntry,
	)

	a.logViewer = NewLogViewer()
	a.statusLabel = widget.NewLabel("Ready")

	split := container.NewVSplit(inputSection, outputSection)
	split.Offset = 0.45

	content := container.NewBorder(
		nil,
		container.NewVBox(
			widget.NewSeparator(),
			a.logViewer,
			a.statusLabel,
		),
		nil, nil,
		split,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()
	a.setResultActionsEnabled(false)

	a.window.SetOnClosed(func() {
		a.audioPlayer.Clear()
		a.cancel()
		a.wg.Wait()
	})

	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onSubmit starts one pipeline run in the background
func (a *Application) onSubmit() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}

	req, err := a.buildRequest()
	if err != nil {
		a.mu.Unlock()
		a.showError(err)
		return
	}
	a.running = true
	a.result = nil
	a.mu.Unlock()

	a.submitButton.Disable()
	a.setResultActionsEnabled(false)
	a.resultEntry.SetText("")
	a.audioPlayer.Clear()
	a.updateStatus("Working...")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		result, err := a.runner.Run(a.ctx, req)

		fyne.Do(func() {
			a.mu.Lock()
			a.running = false
			a.result = result
			a.mu.Unlock()

			a.submitButton.Enable()

			if err != nil {
				a.showError(err)
				return
			}
			a.showResult(result)
		})
	}()
}

// buildRequest reads the active tab and the selected language
func (a *Application) buildRequest() (pipeline.Request, error) {
	lang, err := languages.Lookup(a.languageSelect.Selected)
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{Language: lang}
	if a.tabs.Selected() == a.fileTab {
		if a.document == nil {
			return pipeline.Request{}, fmt.Errorf("no file selected")
		}
		req.Document = a.document
	} else {
		req.Text = a.textInput.Text
	}
	return req, nil
}

func (a *Application) showResult(result *pipeline.Result) {
	a.resultEntry.SetText(result.Translation)
	a.setResultActionsEnabled(true)
	a.updateStatus(fmt.Sprintf("Done: %d chunk(s) translated to %s", len(result.Chunks), result.Language.Name))

	if result.Audio != nil && result.Audio.Path != "" {
		a.audioPlayer.SetAudioFile(result.Audio.Path)
		if a.config.AutoPlay {
			a.audioPlayer.Play()
		}
	}
}

// onOpenFile lets the user pick a document for the file tab
func (a *Application) onOpenFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			a.showError(fmt.Errorf("failed to read %s: %w", reader.URI().Name(), err))
			return
		}

		a.document = &extract.Document{
			Name:      reader.URI().Name(),
			MediaType: reader.URI().MimeType(),
			Data:      data,
		}
		a.fileLabel.SetText(fmt.Sprintf("%s (%d bytes)", reader.URI().Name(), len(data)))
	}, a.window)

	d.SetFilter(storage.NewExtensionFileFilter(documentExtensions))
	d.Show()
}

func (a *Application) onSaveTranslation() {
	a.mu.Lock()
	result := a.result
	a.mu.Unlock()
	if result == nil {
		return
	}

	a.saveFile(internal.SuggestedFileName("translation", result.Language.Name, "txt"), []byte(result.Translation))
}

func (a *Application) onSaveAudio() {
	a.mu.Lock()
	result := a.result
	a.mu.Unlock()
	if result == nil || result.Audio == nil {
		return
	}

	a.saveFile(internal.SuggestedFileName("translated_audio", result.Language.Name, result.Audio.Format), result.Audio.Data)
}

// saveFile asks for a destination and writes data there
func (a *Application) saveFile(name string, data []byte) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if _, err := writer.Write(data); err != nil {
			a.showError(fmt.Errorf("failed to save %s: %w", writer.URI().Name(), err))
			return
		}
		a.updateStatus("Saved " + writer.URI().Path())
	}, a.window)

	d.SetFileName(name)
	if uri, err := storage.ListerForURI(storage.NewFileURI(a.config.OutputDir)); err == nil {
		d.SetLocation(uri)
	}
	d.Show()
}

// setupKeyboardShortcuts registers Ctrl+Enter to submit
func (a *Application) setupKeyboardShortcuts() {
	submit := &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault}
	a.window.Canvas().AddShortcut(submit, func(fyne.Shortcut) {
		if !a.submitButton.Disabled() {
			a.onSubmit()
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.submitButton.SetToolTip("Translate and synthesize speech (Ctrl+Enter)")
	a.openFileBtn.SetToolTip("Choose a PDF, TXT, CSV, XLS or XLSX file")
	a.saveTextBtn.SetToolTip("Save " + translation.FileName)
	a.saveAudioBtn.SetToolTip("Save " + audio.OutputFileName)
}

func (a *Application) setResultActionsEnabled(enabled bool) {
	if enabled {
		a.saveTextBtn.Enable()
		a.saveAudioBtn.Enable()
	} else {
		a.saveTextBtn.Disable()
		a.saveAudioBtn.Disable()
	}
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus(fmt.Sprintf("Error (%s): %v", pipeline.Kind(err), err))
}

// statusText describes a pipeline state for the status label
func statusText(s pipeline.State) string {
	switch s {
	case pipeline.Idle:
		return "Ready"
	case pipeline.Extracting:
		return "Extracting text..."
	case pipeline.Translating:
		return "Translating..."
	case pipeline.Synthesizing:
		return "Synthesizing speech..."
	case pipeline.Done:
		return "Done"
	case pipeline.Failed:
		return "Failed"
	default:
		return s.String()
	}
}
