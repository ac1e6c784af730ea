package gui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer is a widget that displays log messages
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	partial     string // unterminated line from the last Write
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: 1000, // Keep last 1000 messages
		messages:    make([]string, 0),
	}

	// Create log entry (read-only multiline)
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable() // Make it read-only
	v.logEntry.Wrapping = fyne.TextWrapWord

	// Create scroll container
	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 140))

	// Configure scroll behavior
	v.scrollView.Direction = container.ScrollBoth

	// Create container with label
	v.container = container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer so the viewer can receive pipeline progress.
// Each complete non-blank line becomes one message.
func (v *LogViewer) Write(p []byte) (int, error) {
	v.mu.Lock()
	text := v.partial + string(p)
	lines := strings.Split(text, "\n")
	v.partial = lines[len(lines)-1]
	v.mu.Unlock()

	for _, line := range lines[:len(lines)-1] {
		if strings.TrimSpace(line) != "" {
			v.AddMessage(strings.TrimRight(line, "\r"))
		}
	}

	// Mirror to the terminal the GUI was started from
	os.Stdout.Write(p)
	return len(p), nil
}

// Messages returns the logged messages, newest first
func (v *LogViewer) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	result := make([]string, len(v.messages))
	copy(result, v.messages)
	return result
}

// AddMessage adds a message to the log
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Add timestamp
	timestamp := time.Now().Format("15:04:05")
	fullMessage := fmt.Sprintf("[%s] %s", timestamp, message)

	// Prepend to messages (newest first)
	v.messages = append([]string{fullMessage}, v.messages...)

	// Trim if too many messages (remove oldest from the end)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[:v.maxMessages]
	}

	// Update UI on main thread
	fyne.Do(func() {
		// Set the full text with newest messages at top
		text := strings.Join(v.messages, "\n")
		v.logEntry.SetText(text)

		// Keep scroll at top to show newest messages
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = v.messages[:0]
	v.partial = ""

	fyne.Do(func() {
		v.logEntry.SetText("")
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Log adds a message without timestamp (for internal use)
func (v *LogViewer) Log(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	v.AddMessage(message)
}
