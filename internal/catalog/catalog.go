// Package catalog implements the in-memory pattern catalog: the owning
// collection of all pattern entries, indexed by name and grouped by
// category with insertion order preserved.
//
// The catalog is process-scoped state constructed at startup and discarded
// at shutdown. Mutations (Add, Remove, amendments) take an exclusive lock
// and are linearized in call order; queries and renders take a shared read
// lock. Watchers receive change events over buffered channels for the
// serve command's live reload path.
package catalog

import (
	"sync"
	"time"

	"github.com/patternbook/patternbook/internal/errors"
	"github.com/patternbook/patternbook/internal/types"
)

// Catalog manages all pattern entries.
type Catalog struct {
	entries    map[string]*types.PatternEntry
	byCategory map[types.Category][]string
	order      []string
	mutex      sync.RWMutex
	watchers   []chan types.CatalogEvent
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries:    make(map[string]*types.PatternEntry),
		byCategory: make(map[types.Category][]string),
		order:      make([]string, 0),
		watchers:   make([]chan types.CatalogEvent, 0),
	}
}

// Add inserts an entry into the catalog. The entry is validated first
// (empty name or summary, unknown category) and rejected with
// DuplicateName if its name is already present. A failed Add leaves both
// the name index and the category grouping untouched. The catalog stores
// its own copy; the caller keeps ownership of the argument.
func (c *Catalog) Add(entry *types.PatternEntry) error {
	if err := ValidateEntry(entry); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[entry.Name]; exists {
		return errors.ErrDuplicateName(entry.Name)
	}

	stored := entry.Clone()
	c.entries[stored.Name] = stored
	c.byCategory[stored.Category] = append(c.byCategory[stored.Category], stored.Name)
	c.order = append(c.order, stored.Name)

	c.notifyLocked(types.EventTypeAdded, stored)
	return nil
}

// Remove deletes an entry by name, failing with NotFound if absent.
// Other entries' Related lists are left as-is: removing a referenced
// entry leaves a dangling reference behind, which ValidateAll reports
// rather than silently pruning.
func (c *Catalog) Remove(name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[name]
	if !exists {
		return errors.ErrNotFound(name)
	}

	delete(c.entries, name)
	c.byCategory[entry.Category] = removeName(c.byCategory[entry.Category], name)
	c.order = removeName(c.order, name)

	c.notifyLocked(types.EventTypeRemoved, entry)
	return nil
}

// AmendNotes appends clarifying remarks to an existing entry.
func (c *Catalog) AmendNotes(name string, notes ...string) error {
	return c.amend(name, func(e *types.PatternEntry) {
		e.Notes = append(e.Notes, notes...)
	})
}

// AmendApplicability appends use-case strings to an existing entry.
func (c *Catalog) AmendApplicability(name string, uses ...string) error {
	return c.amend(name, func(e *types.PatternEntry) {
		e.Applicability = append(e.Applicability, uses...)
	})
}

// AmendKnownUses appends known-use strings to an existing entry.
func (c *Catalog) AmendKnownUses(name string, uses ...string) error {
	return c.amend(name, func(e *types.PatternEntry) {
		e.KnownUses = append(e.KnownUses, uses...)
	})
}

// amend applies an append-only mutation to a stored entry. Name, category
// and summary stay fixed after construction; this is the only
// post-construction mutation path.
func (c *Catalog) amend(name string, fn func(*types.PatternEntry)) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[name]
	if !exists {
		return errors.ErrNotFound(name)
	}

	fn(entry)
	c.notifyLocked(types.EventTypeAmended, entry)
	return nil
}

// Get retrieves a copy of an entry by exact, case-sensitive name.
func (c *Catalog) Get(name string) (*types.PatternEntry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[name]
	if !exists {
		return nil, false
	}
	return entry.Clone(), true
}

// All returns copies of every entry in catalog insertion order.
func (c *Catalog) All() []*types.PatternEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make([]*types.PatternEntry, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.entries[name].Clone())
	}
	return result
}

// Category returns copies of the entries in one category, in the order
// they were added. An empty category yields an empty slice, not an error.
func (c *Catalog) Category(cat types.Category) []*types.PatternEntry {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := c.byCategory[cat]
	result := make([]*types.PatternEntry, 0, len(names))
	for _, name := range names {
		result = append(result, c.entries[name].Clone())
	}
	return result
}

// Count returns the number of entries in the catalog.
func (c *Catalog) Count() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Watch returns a channel that receives catalog change events.
func (c *Catalog) Watch() <-chan types.CatalogEvent {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	ch := make(chan types.CatalogEvent, 100)
	c.watchers = append(c.watchers, ch)
	return ch
}

// Unwatch removes a watcher channel and closes it.
func (c *Catalog) Unwatch(ch <-chan types.CatalogEvent) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for i, watcher := range c.watchers {
		if watcher == ch {
			close(watcher)
			c.watchers = append(c.watchers[:i], c.watchers[i+1:]...)
			break
		}
	}
}

// notifyLocked fans an event out to all watchers. Callers must hold the
// write lock. Sends are non-blocking; a full watcher channel drops the
// event rather than stalling the mutation.
func (c *Catalog) notifyLocked(eventType types.EventType, entry *types.PatternEntry) {
	if len(c.watchers) == 0 {
		return
	}

	event := types.CatalogEvent{
		Type:      eventType,
		Entry:     entry.Clone(),
		Timestamp: time.Now(),
	}

	for _, watcher := range c.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}

// removeName deletes the first occurrence of name, preserving the order
// of the remainder.
func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
