// Package catalogs provides the core catalog system for managing plant records.
// A catalog is a directory of individually addressable JSON documents plus a
// manifest file listing all member filenames and a count. The package offers
// file-backed and in-memory implementations behind a consistent interface and
// supports CRUD operations and persistence.
//
// Example usage:
//
//	// Open a file-backed catalog
//	catalog, err := catalogs.New(catalogs.WithPath("./catalog"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access records
//	for _, file := range catalog.Records().Files() {
//	    rec, _ := catalog.Record(file)
//	    fmt.Printf("%s: %s\n", file, rec.Name)
//	}
package catalogs

import (
	"os"

	"github.com/verdantlabs/verdant/pkg/errors"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Catalog     = (*catalog)(nil)
	_ Reader      = (*catalog)(nil)
	_ Writer      = (*catalog)(nil)
	_ Copier      = (*catalog)(nil)
	_ Persistence = (*catalog)(nil)
)

// catalog is the single concrete implementation of the Catalog interface.
// It can work as:
// - Memory catalog (readFS == nil)
// - Files catalog (readFS is os.DirFS)
// - Custom catalog (readFS is any fs.FS implementation).
type catalog struct {
	options   *catalogOptions
	records   *Records
	malformed []string
}

// New creates a new catalog with the given options.
// WithPath(path) = files catalog with auto-load.
func New(opts ...Option) (Catalog, error) {
	cat := &catalog{
		records: NewRecords(),
		options: catalogDefaults().apply(opts...),
	}

	// Auto-load if configured and has filesystem
	if cat.options.readFS != nil && cat.options.autoLoad {
		if err := cat.Load(); err != nil {
			return nil, errors.WrapResource("load", "catalog", "", err)
		}
	}

	return cat, nil
}

// NewFromPath creates a catalog backed by files on disk.
//
// Example:
//
//	catalog, err := catalogs.NewFromPath("./testdata/catalog")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromPath(path string) (Catalog, error) {
	// Verify path exists
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	return New(WithPath(path))
}

// NewEmpty creates an in-memory empty catalog.
// This is useful for testing or temporary catalogs that don't
// need persistence.
func NewEmpty() Catalog {
	return &catalog{
		records: NewRecords(),
		options: catalogDefaults(),
	}
}

// Records returns the record collection.
func (cat *catalog) Records() *Records {
	return cat.records
}

// Record returns a record by document file name.
func (cat *catalog) Record(file string) (Record, error) {
	rec, ok := cat.records.Get(file)
	if !ok {
		return Record{}, &errors.NotFoundError{
			Resource: "record",
			ID:       file,
		}
	}
	return *rec, nil
}

// Malformed returns the file names excluded at load time.
func (cat *catalog) Malformed() []string {
	out := make([]string, len(cat.malformed))
	copy(out, cat.malformed)
	return out
}

// WritePath returns the directory the catalog persists to.
func (cat *catalog) WritePath() string {
	return cat.options.writePath
}

// SetRecord sets a record (upsert).
func (cat *catalog) SetRecord(file string, rec Record) error {
	if cat.options.readOnly {
		return errors.ErrReadOnly
	}
	// Deep copy to prevent shared references
	recCopy := rec.Copy()
	return cat.records.Set(file, &recCopy)
}

// DeleteRecord deletes a record from the collection.
func (cat *catalog) DeleteRecord(file string) error {
	if cat.options.readOnly {
		return errors.ErrReadOnly
	}
	return cat.records.Delete(file)
}

// Copy creates a deep copy of the catalog.
func (cat *catalog) Copy() (Catalog, error) {
	newCat := &catalog{
		records:   NewRecords(WithRecordsCapacity(cat.records.Len())),
		options:   cat.options,
		malformed: append([]string(nil), cat.malformed...),
	}

	for _, file := range cat.records.Files() {
		rec, _ := cat.records.Get(file)
		recCopy := rec.Copy()
		if err := newCat.records.Set(file, &recCopy); err != nil {
			return nil, errors.WrapResource("copy", "record", file, err)
		}
	}

	return newCat, nil
}
