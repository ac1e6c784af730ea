package gui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/voxlate/internal/pipeline"
	"codeberg.org/snonux/voxlate/internal/testutil"
)

func TestLogViewer_Write(t *testing.T) {
	test.NewTempApp(t)
	v := NewLogViewer()

	v.Write([]byte("Extracting text\n  chunk 1/2"))
	v.Write([]byte(" done\n\n"))
	v.Write([]byte("unterminated"))

	got := v.Messages()
	if len(got) != 2 {
		t.Fatalf("Expected 2 messages, got %d: %v", len(got), got)
	}

	// newest first, each prefixed with a timestamp
	if !strings.HasSuffix(got[0], "  chunk 1/2 done") {
		t.Errorf("Unexpected newest message %q", got[0])
	}
	if !strings.HasSuffix(got[1], "Extracting text") {
		t.Errorf("Unexpected oldest message %q", got[1])
	}

	v.Clear()
	if len(v.Messages()) != 0 {
		t.Error("Expected no messages after Clear")
	}
}

func TestAudioPlayer_SetAudioFile(t *testing.T) {
	test.NewTempApp(t)
	p := NewAudioPlayer()

	if !p.playButton.Disabled() {
		t.Error("Play button should start disabled")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "translated_audio.mp3")
	testutil.CreateTestFile(t, file, testutil.MP3Data)

	p.SetAudioFile(file)
	if p.playButton.Disabled() {
		t.Error("Play button should be enabled once audio is loaded")
	}
	if !strings.Contains(p.statusLabel.Text, "translated_audio.mp3") {
		t.Errorf("Unexpected status %q", p.statusLabel.Text)
	}

	p.Clear()
	if !p.playButton.Disabled() || p.statusLabel.Text != "No audio loaded" {
		t.Errorf("Clear did not reset the player: %q", p.statusLabel.Text)
	}
}

func TestStatusText(t *testing.T) {
	states := []pipeline.State{pipeline.Idle, pipeline.Extracting, pipeline.Translating, pipeline.Synthesizing, pipeline.Done, pipeline.Failed}
	want := []string{"Ready", "Extracting text...", "Translating...", "Synthesizing speech...", "Done", "Failed"}

	var got []string
	for _, s := range states {
		got = append(got, statusText(s))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statusText = %v, want %v", got, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if !config.AutoPlay {
		t.Error("AutoPlay should default to true")
	}
	if config.Language != "Spanish" {
		t.Errorf("Expected Spanish, got %s", config.Language)
	}
	if !strings.HasSuffix(config.OutputDir, filepath.Join(".local", "state", "voxlate")) {
		t.Errorf("Unexpected output dir %s", config.OutputDir)
	}
}
