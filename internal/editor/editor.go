// Package editor opens palette JSON in the user's text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/swatchly/swatch/internal/model"
)

const fallbackEditor = "vim"

// Editor resolves which editor to launch and runs edit round-trips.
type Editor struct {
	globalConfig *model.GlobalConfig
}

// NewEditor creates an Editor honoring the user's global config.
func NewEditor(globalConfig *model.GlobalConfig) *Editor {
	return &Editor{globalConfig: globalConfig}
}

// Resolve picks the editor command: global config, then $EDITOR, then vim.
func (e *Editor) Resolve() string {
	if e.globalConfig != nil && e.globalConfig.Editor != "" {
		return e.globalConfig.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return fallbackEditor
}

// Edit writes content to a temp file, opens the editor on it, and returns
// whatever the user saved. The editor gets the terminal for the duration.
func (e *Editor) Edit(content string) (string, error) {
	tmp, err := os.CreateTemp("", "swatch-edit-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, writeErr := tmp.WriteString(content)
	if err := tmp.Close(); writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return "", fmt.Errorf("failed to write temp file: %w", writeErr)
	}

	cmd := exec.Command(e.Resolve(), tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
