// Package constants provides shared constants used throughout the verdant codebase.
// This includes file names, permissions, and limits that should be consistent
// across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Store layout constants
const (
	// ManifestFile is the name of the store manifest listing member documents
	ManifestFile = "manifest.json"

	// JournalFile is the name of the reconcile write-ahead journal
	JournalFile = ".reconcile-journal.yaml"

	// RecordExtension is the file extension of record documents
	RecordExtension = ".json"
)

// Reconciliation constants
const (
	// MinGroupableNameLength is the floor below which normalized display
	// names are too generic to group on text equality alone
	MinGroupableNameLength = 4

	// MinGenusTokenLength is the minimum length of a lone token accepted
	// as a genus-only fallback key
	MinGenusTokenLength = 5

	// FullTaxonomyRanks is the populated-rank count treated as a complete
	// taxonomy for scoring purposes
	FullTaxonomyRanks = 7
)
