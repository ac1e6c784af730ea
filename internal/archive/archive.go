package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// ErrNothingToArchive is returned when the output slot is empty
var ErrNothingToArchive = errors.New("no translation or audio to archive")

// Artifacts are the files making up one run's output slot
var Artifacts = []string{translation.FileName, audio.OutputFileName}

// ArchiveRun moves the current run artifacts in outputDir into
// outputDir/archive/run-<timestamp> and returns that directory
func ArchiveRun(outputDir string, out io.Writer) (string, error) {
	var present []string
	for _, name := range Artifacts {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err == nil {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNothingToArchive, outputDir)
	}

	archiveDir := filepath.Join(outputDir, "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runDir := filepath.Join(archiveDir, "run-"+timestamp)

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(runDir); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		runDir = filepath.Join(archiveDir, "run-"+timestamp)
	}

	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	for _, name := range present {
		if err := os.Rename(filepath.Join(outputDir, name), filepath.Join(runDir, name)); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", name, err)
		}
	}

	if out != nil {
		fmt.Fprintf(out, "Last run archived to: %s\n", runDir)
	}
	return runDir, nil
}
