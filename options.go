package verdant

import (
	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/reconcile"
)

// config holds the assembled configuration for a Verdant instance.
type config struct {
	path             string
	initialCatalog   *catalogs.Catalog
	reconcileOptions []reconcile.Option
}

func defaultConfig() *config {
	return &config{}
}

// Option is a function that configures a Verdant instance.
type Option func(*config) error

// WithPath configures the record store directory to open.
func WithPath(path string) Option {
	return func(c *config) error {
		c.path = path
		return nil
	}
}

// WithInitialCatalog configures an already-open catalog to manage.
func WithInitialCatalog(catalog catalogs.Catalog) Option {
	return func(c *config) error {
		c.initialCatalog = &catalog
		return nil
	}
}

// WithReconcileOptions configures the reconciler used by Reconcile.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.reconcileOptions = append(c.reconcileOptions, opts...)
		return nil
	}
}
