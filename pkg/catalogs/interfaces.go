package catalogs

// Reader provides read-only access to catalog data.
type Reader interface {
	// Records returns the record collection keyed by document file name.
	Records() *Records

	// Record returns a record by document file name.
	Record(file string) (Record, error)

	// Malformed returns the file names excluded at load time because
	// their documents could not be parsed. They are invisible to
	// reconciliation until repaired.
	Malformed() []string
}

// Writer provides write operations for catalog data.
type Writer interface {
	// SetRecord sets a record by document file name (upsert semantics).
	SetRecord(file string, rec Record) error

	// DeleteRecord removes a record by document file name.
	DeleteRecord(file string) error
}

// Copier provides catalog copying capabilities.
type Copier interface {
	// Copy returns a deep copy of the catalog.
	Copy() (Catalog, error)
}

// Persistence provides load/save operations against the backing store:
// a directory of JSON documents plus a manifest listing members.
type Persistence interface {
	// Load reads the manifest and every member document. A parse failure
	// on a single document excludes it from the catalog (see Malformed);
	// an unreadable store is fatal.
	Load() error

	// Save writes every record document and regenerates the manifest.
	Save() error

	// SaveRecord writes a single record document back to the store.
	SaveRecord(file string) error

	// RemoveRecord deletes a single record document from the store and
	// from the collection.
	RemoveRecord(file string) error

	// WriteManifest regenerates the manifest from the current members.
	WriteManifest() error

	// WritePath returns the directory the catalog persists to, or ""
	// for in-memory catalogs.
	WritePath() string
}

// Catalog is the complete interface combining all catalog capabilities.
type Catalog interface {
	Reader
	Writer
	Copier
	Persistence
}

// ReadOnlyCatalog provides read-only access to a catalog.
type ReadOnlyCatalog interface {
	Reader
	Copier
}
