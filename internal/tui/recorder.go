package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder captures form state changes and renders for debugging.
type Recorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
	enabled  bool
}

// NewRecorder creates a recorder writing into a fresh temporary directory.
// A recorder that cannot create its files silently disables itself.
func NewRecorder(enabled bool) *Recorder {
	if !enabled {
		return &Recorder{enabled: false}
	}

	recordDir, err := os.MkdirTemp("", fmt.Sprintf("txrisk-strict-%d-", time.Now().Unix()))
	if err != nil {
		return &Recorder{enabled: false}
	}

	logPath := filepath.Join(recordDir, "form.log")
	logFile, err := os.Create(filepath.Clean(logPath)) // #nosec G304 -- safe constructed path
	if err != nil {
		return &Recorder{enabled: false}
	}

	r := &Recorder{
		enabled:  true,
		logFile:  logFile,
		frameDir: recordDir,
	}

	r.Log("Strict mode recorder started at %s", recordDir)
	return r
}

// Dir returns the directory frames are written to, or "" when disabled.
func (r *Recorder) Dir() string {
	if !r.enabled {
		return ""
	}
	return r.frameDir
}

// Frames returns how many updates have been recorded.
func (r *Recorder) Frames() int {
	return r.frameNum
}

// RecordState captures the state after an update along with its rendered view.
func (r *Recorder) RecordState(model Model, msg tea.Msg, view string) {
	if !r.enabled {
		return
	}

	r.frameNum++

	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Time: %s", time.Now().Format("15:04:05.000"))
	r.Log("Message Type: %T", msg)
	r.Log("Focus: %d", model.focus)
	r.Log("Loading: %v", model.loading)
	r.Log("Has result: %v", model.result != nil)

	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes to the log file.
func (r *Recorder) Log(format string, args ...any) {
	if !r.enabled || r.logFile == nil {
		return
	}

	if _, err := fmt.Fprintf(r.logFile, format+"\n", args...); err != nil {
		return
	}
	_ = r.logFile.Sync()
}

// Close closes the recorder.
func (r *Recorder) Close() {
	if r.logFile != nil {
		r.Log("Recording complete. %d frames captured.", r.frameNum)
		_ = r.logFile.Close() // Best effort close
		r.logFile = nil
	}
}
