package catalogs

import (
	"io/fs"
	"os"
)

// catalogOptions holds the configuration for a catalog.
type catalogOptions struct {
	readFS    fs.FS  // Filesystem to load from (nil for memory catalog)
	writePath string // Directory to persist to (empty for read-only / memory)
	readOnly  bool
	autoLoad  bool
}

// catalogDefaults returns the default catalog options.
func catalogDefaults() *catalogOptions {
	return &catalogOptions{
		autoLoad: true,
	}
}

// Option is a function that configures a catalog.
type Option func(*catalogOptions)

func (o *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPath configures the catalog to read from and write to a directory.
func WithPath(path string) Option {
	return func(o *catalogOptions) {
		o.readFS = os.DirFS(path)
		o.writePath = path
	}
}

// WithFS configures the catalog to read from a custom filesystem.
// The catalog cannot be persisted unless a write path is also set.
func WithFS(fsys fs.FS) Option {
	return func(o *catalogOptions) {
		o.readFS = fsys
	}
}

// WithWritePath sets the directory the catalog persists to.
func WithWritePath(path string) Option {
	return func(o *catalogOptions) {
		o.writePath = path
	}
}

// WithReadOnly marks the catalog read-only; all mutations fail.
func WithReadOnly() Option {
	return func(o *catalogOptions) {
		o.readOnly = true
	}
}

// WithNoAutoLoad disables loading the store during construction.
func WithNoAutoLoad() Option {
	return func(o *catalogOptions) {
		o.autoLoad = false
	}
}
