// Package watcher watches catalog source files for edits with
// debouncing, so a burst of editor writes triggers a single reload of
// the catalog.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/patternbook/patternbook/internal/logging"
)

// SourceWatcher watches catalog files for changes with debouncing.
type SourceWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	logger    logging.Logger
	mutex     sync.RWMutex
}

// ChangeEvent represents a catalog source file change.
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
	Size    int64
}

// EventType represents the type of file change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType.
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter determines if a file should be watched.
type FileFilter func(path string) bool

// ChangeHandler handles a debounced batch of file changes.
type ChangeHandler func(events []ChangeEvent) error

// debouncer groups rapid file changes together.
type debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

// New creates a source watcher with the given debounce delay.
func New(debounceDelay time.Duration, logger logging.Logger) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.NewLogger(nil)
	}

	return &SourceWatcher{
		watcher: watcher,
		debouncer: &debouncer{
			delay:   debounceDelay,
			events:  make(chan ChangeEvent, 100),
			output:  make(chan []ChangeEvent, 10),
			pending: make([]ChangeEvent, 0),
		},
		filters:  make([]FileFilter, 0),
		handlers: make([]ChangeHandler, 0),
		logger:   logger.WithComponent("watcher"),
	}, nil
}

// AddFilter adds a file filter.
func (sw *SourceWatcher) AddFilter(filter FileFilter) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	sw.filters = append(sw.filters, filter)
}

// AddHandler adds a change handler.
func (sw *SourceWatcher) AddHandler(handler ChangeHandler) {
	sw.mutex.Lock()
	defer sw.mutex.Unlock()
	sw.handlers = append(sw.handlers, handler)
}

// AddPath adds a file or directory to watch. fsnotify watches the
// containing directory for single files so editors that replace-on-save
// are still observed.
func (sw *SourceWatcher) AddPath(path string) error {
	cleanPath, err := validatePath(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(cleanPath)
	if err == nil && !info.IsDir() {
		return sw.watcher.Add(filepath.Dir(cleanPath))
	}
	return sw.watcher.Add(cleanPath)
}

// validatePath validates and cleans a file path to prevent directory
// traversal outside the working tree.
func validatePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	if !strings.HasPrefix(absPath, cwd) {
		return "", fmt.Errorf("path %s is outside current working directory", path)
	}
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("path contains directory traversal: %s", path)
	}

	return cleanPath, nil
}

// Start starts the watcher goroutines. They exit when ctx is cancelled.
func (sw *SourceWatcher) Start(ctx context.Context) error {
	go sw.debouncer.start(ctx)
	go sw.processEvents(ctx)
	go sw.watchLoop(ctx)
	return nil
}

// Stop stops the watcher and cleans up resources.
func (sw *SourceWatcher) Stop() error {
	if sw.debouncer.timer != nil {
		sw.debouncer.timer.Stop()
	}
	return sw.watcher.Close()
}

func (sw *SourceWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-sw.watcher.Events:
			sw.handleFsnotifyEvent(event)
		case err := <-sw.watcher.Errors:
			// Keep watching after transient errors
			sw.logger.Warn(ctx, err, "File watcher error")
		}
	}
}

func (sw *SourceWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	sw.mutex.RLock()
	filters := sw.filters
	sw.mutex.RUnlock()

	for _, filter := range filters {
		if !filter(event.Name) {
			return
		}
	}

	var modTime time.Time
	var size int64
	if info, err := os.Stat(event.Name); err == nil {
		modTime = info.ModTime()
		size = info.Size()
	}

	var eventType EventType
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventTypeCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventTypeModified
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventTypeDeleted
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventTypeRenamed
	default:
		eventType = EventTypeModified
	}

	select {
	case sw.debouncer.events <- ChangeEvent{
		Type:    eventType,
		Path:    event.Name,
		ModTime: modTime,
		Size:    size,
	}:
	default:
		// Channel full, skip this event
	}
}

func (sw *SourceWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-sw.debouncer.output:
			sw.mutex.RLock()
			handlers := sw.handlers
			sw.mutex.RUnlock()

			for _, handler := range handlers {
				if err := handler(events); err != nil {
					sw.logger.Warn(ctx, err, "Change handler error")
				}
			}
		}
	}
}

func (d *debouncer) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.addEvent(event)
		}
	}
}

func (d *debouncer) addEvent(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.flush()
	})
}

func (d *debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	// Deduplicate events by path; the last event for a path wins
	eventMap := make(map[string]ChangeEvent)
	for _, event := range d.pending {
		eventMap[event.Path] = event
	}

	events := make([]ChangeEvent, 0, len(eventMap))
	for _, event := range eventMap {
		events = append(events, event)
	}

	select {
	case d.output <- events:
	default:
		// Channel full, skip
	}

	d.pending = d.pending[:0]
}

// Common file filters

// CatalogFilter keeps catalog source files (.yaml, .yml, .md).
func CatalogFilter(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".md", ".markdown":
		return true
	}
	return false
}

// NoHiddenFilter drops dotfiles (editor swap and lock files).
func NoHiddenFilter(path string) bool {
	return !strings.HasPrefix(filepath.Base(path), ".")
}
