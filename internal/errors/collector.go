package errors

import (
	"fmt"
	"sync"
)

// Violation pairs a source location with the error found there. Location
// is free-form: a record index for structured imports ("record 3"), a
// line reference for markdown imports, or an entry name for validation
// passes.
type Violation struct {
	Location string
	Err      *CatalogError
}

// String formats the violation for aggregate reports.
func (v Violation) String() string {
	if v.Location == "" {
		return v.Err.Error()
	}
	return fmt.Sprintf("%s: %v", v.Location, v.Err)
}

// ViolationCollector accumulates violations during a load or validation
// pass. Loads use partial-success semantics: valid records are still
// added while rejected ones land here.
type ViolationCollector struct {
	violations []Violation
	mutex      sync.RWMutex
}

// NewViolationCollector creates an empty collector.
func NewViolationCollector() *ViolationCollector {
	return &ViolationCollector{
		violations: make([]Violation, 0),
	}
}

// Add records a violation. Nil errors are ignored.
func (vc *ViolationCollector) Add(location string, err *CatalogError) {
	if err == nil {
		return
	}
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	vc.violations = append(vc.violations, Violation{Location: location, Err: err})
}

// Violations returns a copy of all collected violations in the order
// they were recorded.
func (vc *ViolationCollector) Violations() []Violation {
	vc.mutex.RLock()
	defer vc.mutex.RUnlock()
	result := make([]Violation, len(vc.violations))
	copy(result, vc.violations)
	return result
}

// HasViolations returns true if anything was collected.
func (vc *ViolationCollector) HasViolations() bool {
	vc.mutex.RLock()
	defer vc.mutex.RUnlock()
	return len(vc.violations) > 0
}

// Count returns the number of collected violations.
func (vc *ViolationCollector) Count() int {
	vc.mutex.RLock()
	defer vc.mutex.RUnlock()
	return len(vc.violations)
}

// Clear drops all collected violations.
func (vc *ViolationCollector) Clear() {
	vc.mutex.Lock()
	defer vc.mutex.Unlock()
	vc.violations = vc.violations[:0]
}

// ByKind returns collected violations matching the given kind.
func (vc *ViolationCollector) ByKind(kind Kind) []Violation {
	vc.mutex.RLock()
	defer vc.mutex.RUnlock()
	var matched []Violation
	for _, v := range vc.violations {
		if v.Err.Kind == kind {
			matched = append(matched, v)
		}
	}
	return matched
}
