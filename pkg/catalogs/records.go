package catalogs

import (
	"fmt"
	"maps"
	"sort"
	"sync"
)

// Records is a concurrent safe map of records keyed by document file name.
type Records struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// RecordsOption defines a function that configures a Records instance.
type RecordsOption func(*Records)

// WithRecordsCapacity sets the initial capacity of the records map.
func WithRecordsCapacity(capacity int) RecordsOption {
	return func(r *Records) {
		r.records = make(map[string]*Record, capacity)
	}
}

// WithRecordsMap initializes the map with existing records.
func WithRecordsMap(records map[string]*Record) RecordsOption {
	return func(r *Records) {
		if records != nil {
			r.records = make(map[string]*Record, len(records))
			maps.Copy(r.records, records)
		}
	}
}

// NewRecords creates a new Records map with optional configuration.
func NewRecords(opts ...RecordsOption) *Records {
	r := &Records{
		records: make(map[string]*Record),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Get returns a record by file name and whether it exists.
func (r *Records) Get(file string) (*Record, bool) {
	r.mu.RLock()
	rec, ok := r.records[file]
	r.mu.RUnlock()
	return rec, ok
}

// Set sets a record by file name. Returns an error if record is nil.
func (r *Records) Set(file string, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[file] = rec
	return nil
}

// Add adds a record, returning an error if the file is already present.
func (r *Records) Add(file string, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[file]; exists {
		return fmt.Errorf("record %s already exists", file)
	}

	r.records[file] = rec
	return nil
}

// Delete removes a record by file name. Returns an error if it doesn't exist.
func (r *Records) Delete(file string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[file]; !exists {
		return fmt.Errorf("record %s not found", file)
	}

	delete(r.records, file)
	return nil
}

// Exists checks if a record exists without returning it.
func (r *Records) Exists(file string) bool {
	r.mu.RLock()
	_, ok := r.records[file]
	r.mu.RUnlock()
	return ok
}

// Files returns the sorted list of record file names.
func (r *Records) Files() []string {
	r.mu.RLock()
	files := make([]string, 0, len(r.records))
	for file := range r.records {
		files = append(files, file)
	}
	r.mu.RUnlock()

	sort.Strings(files)
	return files
}

// List returns all records in file-name order.
func (r *Records) List() []*Record {
	files := r.Files()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, 0, len(files))
	for _, file := range files {
		out = append(out, r.records[file])
	}
	return out
}

// Len returns the number of records.
func (r *Records) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Clear removes all records.
func (r *Records) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]*Record)
}
