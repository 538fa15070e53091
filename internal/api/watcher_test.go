package api

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	t.Cleanup(func() { fw.watcher.Close() })
	return fw
}

func TestClassifyChange_Palette(t *testing.T) {
	fw := newTestWatcher(t)

	tests := []struct {
		name     string
		op       fsnotify.Op
		wantType FileChangeType
	}{
		{"create", fsnotify.Create, FileChangeCreated},
		{"write", fsnotify.Write, FileChangeModified},
		{"remove", fsnotify.Remove, FileChangeDeleted},
		{"rename", fsnotify.Rename, FileChangeDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{
				Name: filepath.Join(fw.swatchDir, "palettes", "abc123.json"),
				Op:   tt.op,
			}

			change := fw.classifyChange(event)

			if change.Kind != FileChangeKindPalette {
				t.Errorf("Expected palette kind, got %s", change.Kind)
			}
			if change.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, change.Type)
			}
			if change.PaletteID != "abc123" {
				t.Errorf("Expected palette ID abc123, got %s", change.PaletteID)
			}
		})
	}
}

func TestClassifyChange_Library(t *testing.T) {
	fw := newTestWatcher(t)

	event := fsnotify.Event{
		Name: filepath.Join(fw.swatchDir, "config.toml"),
		Op:   fsnotify.Write,
	}

	change := fw.classifyChange(event)

	if change.Kind != FileChangeKindLibrary {
		t.Errorf("Expected library kind, got %s", change.Kind)
	}
	if change.Type != FileChangeModified {
		t.Errorf("Expected modified type, got %s", change.Type)
	}
}

func TestClassifyChange_Unknown(t *testing.T) {
	fw := newTestWatcher(t)

	tests := []struct {
		name string
		path string
	}{
		{"stray file at root", filepath.Join(fw.swatchDir, "notes.txt")},
		{"non-json in palettes", filepath.Join(fw.swatchDir, "palettes", "backup.bak")},
		{"nested unknown dir", filepath.Join(fw.swatchDir, "themes", "dark.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: fsnotify.Write}

			change := fw.classifyChange(event)

			if change.Kind != FileChangeKindUnknown {
				t.Errorf("Expected unknown kind for %s, got %s", tt.path, change.Kind)
			}
		})
	}
}

func TestFileWatcher_Subscribe(t *testing.T) {
	fw := newTestWatcher(t)

	sub := &recordingSubscriber{}
	fw.Subscribe(sub)

	if len(fw.subscribers) != 1 {
		t.Errorf("Expected 1 subscriber, got %d", len(fw.subscribers))
	}
}

func TestFileWatcher_Unsubscribe(t *testing.T) {
	fw := newTestWatcher(t)

	sub := &recordingSubscriber{}
	fw.Subscribe(sub)
	fw.Unsubscribe(sub)

	if len(fw.subscribers) != 0 {
		t.Errorf("Expected 0 subscribers, got %d", len(fw.subscribers))
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := newTestWatcher(t)

	if err := fw.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Fatalf("Failed to stop watcher: %v", err)
	}

	if err := fw.Start(); err == nil {
		t.Error("Expected restart after stop to fail")
	}
}

type recordingSubscriber struct {
	changes []FileChange
}

func (r *recordingSubscriber) OnFileChange(change FileChange) {
	r.changes = append(r.changes, change)
}
