// Package verdant is the library entry point for the plant catalog
// reconciliation engine. It wraps a record store together with a
// configured reconciler behind one handle, so embedding applications can
// open a catalog, run reconciliation passes, and observe merges through
// event hooks.
package verdant

import (
	"context"
	"fmt"
	"sync"

	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/reconcile"
)

// Verdant manages a plant catalog and its reconciliation lifecycle.
type Verdant interface {
	// Catalog returns a copy of the current catalog
	Catalog() (catalogs.Catalog, error)

	// Reconcile runs one reconciliation pass over the catalog
	Reconcile(ctx context.Context) (*reconcile.Result, error)

	// OnRecordMerged registers a callback invoked for every applied merge
	OnRecordMerged(RecordMergedHook)
}

// verdant is the internal implementation of the Verdant interface.
type verdant struct {
	mu      sync.RWMutex
	catalog catalogs.Catalog
	config  *config
	hooks   *hooks
}

// New creates a new Verdant instance with the given options.
func New(opts ...Option) (Verdant, error) {
	v := &verdant{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := v.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	// Use provided catalog or open one from the configured path.
	switch {
	case v.config.initialCatalog != nil:
		v.catalog = *v.config.initialCatalog
	case v.config.path != "":
		cat, err := catalogs.NewFromPath(v.config.path)
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		v.catalog = cat
	default:
		v.catalog = catalogs.NewEmpty()
	}

	return v, nil
}

// options applies configuration options to the instance.
func (v *verdant) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(v.config); err != nil {
			return err
		}
	}
	return nil
}

// Catalog returns a copy of the current catalog so callers cannot mutate
// shared state.
func (v *verdant) Catalog() (catalogs.Catalog, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.catalog.Copy()
}

// Reconcile runs one reconciliation pass and fires merge hooks for every
// applied merge.
func (v *verdant) Reconcile(ctx context.Context) (*reconcile.Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	result, err := reconcile.New(v.config.reconcileOptions...).Run(ctx, v.catalog)
	if err != nil {
		return result, err
	}

	if !result.Metadata.DryRun && !result.Plan.IsEmpty() {
		for _, merge := range result.Plan.Merges {
			v.hooks.triggerRecordMerged(merge.Winner, merge.Losers)
		}
	}

	return result, nil
}

// OnRecordMerged registers a callback invoked for every applied merge.
func (v *verdant) OnRecordMerged(fn RecordMergedHook) {
	v.hooks.OnRecordMerged(fn)
}
