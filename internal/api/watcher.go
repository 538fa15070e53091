package api

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/swatchly/swatch/internal/config"
)

// debounceWindow coalesces the burst of fsnotify events a single save
// typically produces (write, chmod, rename of a temp file) into one
// notification.
const debounceWindow = 100 * time.Millisecond

// FileChangeType indicates what happened to the file.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChangeKind indicates which kind of swatch data changed.
type FileChangeKind string

const (
	FileChangeKindPalette FileChangeKind = "palette"
	FileChangeKindLibrary FileChangeKind = "library"
	FileChangeKindUnknown FileChangeKind = "unknown"
)

// FileChange is the notification delivered to subscribers.
type FileChange struct {
	Type      FileChangeType `json:"type"`
	Kind      FileChangeKind `json:"kind"`
	PaletteID string         `json:"palette_id,omitempty"`
	Path      string         `json:"path"` // Relative to the swatch data root
}

// FileWatcherSubscriber receives file change notifications.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

// FileWatcher watches a library's swatch data directory so external edits
// (another terminal, a git pull, an editor saving a palette JSON) reach the
// browser without a manual refresh. Single-use: once stopped it cannot be
// restarted; library switches build a fresh watcher.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	swatchDir   string
	stopCh      chan struct{}
	mu          sync.RWMutex
	subscribers []FileWatcherSubscriber
	running     bool
	stopped     bool
	debounceMu  sync.Mutex
	debounce    map[string]*time.Timer
}

// NewFileWatcher creates a watcher for the given library root. Call Start
// to begin receiving events.
func NewFileWatcher(libraryRoot string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:   watcher,
		swatchDir: filepath.Join(libraryRoot, config.DefaultSwatchDir),
		stopCh:    make(chan struct{}),
		debounce:  make(map[string]*time.Timer),
	}, nil
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	fw.subscribers = append(fw.subscribers, sub)
	fw.mu.Unlock()
}

// Unsubscribe removes a previously added subscriber.
func (fw *FileWatcher) Unsubscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for i, s := range fw.subscribers {
		if s == sub {
			fw.subscribers = append(fw.subscribers[:i], fw.subscribers[i+1:]...)
			return
		}
	}
}

// Start registers watches over the swatch tree and begins dispatching.
// Starting an already running watcher is a no-op.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	if err := fw.watchTree(fw.swatchDir); err != nil {
		return err
	}

	go fw.dispatch()
	return nil
}

// Stop permanently shuts the watcher down and cancels pending debounces.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	fw.debounceMu.Lock()
	for path, timer := range fw.debounce {
		timer.Stop()
		delete(fw.debounce, path)
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

// watchTree adds watches for dir and everything below it. Missing or
// unreadable directories are skipped; the tree may not exist yet.
func (fw *FileWatcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				log.Printf("Warning: failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

func (fw *FileWatcher) dispatch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return // Editor temp and hidden files
	}

	// New subdirectories need their own watch
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			fw.watcher.Add(event.Name)
		}
	}

	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()
	if timer, exists := fw.debounce[event.Name]; exists {
		timer.Stop()
	}
	fw.debounce[event.Name] = time.AfterFunc(debounceWindow, func() {
		fw.emitChange(event)
		fw.debounceMu.Lock()
		delete(fw.debounce, event.Name)
		fw.debounceMu.Unlock()
	})
}

func (fw *FileWatcher) emitChange(event fsnotify.Event) {
	// A debounce timer can fire just after Stop
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]FileWatcherSubscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	change := fw.classifyChange(event)
	if change.Kind == FileChangeKindUnknown {
		return
	}

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

// classifyChange maps an fsnotify event onto the swatch data layout:
// palettes/<id>.json is a palette, config.toml at the root is the library
// config, anything else is unknown and not emitted.
func (fw *FileWatcher) classifyChange(event fsnotify.Event) FileChange {
	relPath, err := filepath.Rel(fw.swatchDir, event.Name)
	if err != nil {
		return FileChange{Kind: FileChangeKindUnknown}
	}

	var changeType FileChangeType
	switch {
	case event.Op.Has(fsnotify.Create):
		changeType = FileChangeCreated
	case event.Op.Has(fsnotify.Write):
		changeType = FileChangeModified
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// A renamed source path is gone as far as readers are concerned
		changeType = FileChangeDeleted
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}

	parts := strings.Split(relPath, string(filepath.Separator))

	if len(parts) == 2 && parts[0] == config.PalettesDir && strings.HasSuffix(parts[1], ".json") {
		return FileChange{
			Type:      changeType,
			Kind:      FileChangeKindPalette,
			PaletteID: strings.TrimSuffix(parts[1], ".json"),
			Path:      relPath,
		}
	}

	if len(parts) == 1 && parts[0] == config.ConfigFileName {
		return FileChange{Type: changeType, Kind: FileChangeKindLibrary, Path: relPath}
	}

	return FileChange{Kind: FileChangeKindUnknown}
}
