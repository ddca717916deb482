package reconcile

import (
	"github.com/verdantlabs/verdant/pkg/grouper"
	"github.com/verdantlabs/verdant/pkg/normalize"
	"github.com/verdantlabs/verdant/pkg/score"
	"github.com/verdantlabs/verdant/pkg/variant"
)

// options configures a reconciler.
type options struct {
	normalizer *normalize.Normalizer
	classifier *variant.Classifier
	synonyms   *grouper.SynonymTable
	scorer     *score.Scorer
	dryRun     bool
	journal    bool
}

func defaultOptions() *options {
	return &options{
		normalizer: normalize.New(),
		classifier: variant.New(),
		scorer:     score.New(),
		journal:    true,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options)

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithNormalizer sets the name normalizer used for canonical keys and
// merge-time scientific name validation.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *options) {
		if n != nil {
			o.normalizer = n
		}
	}
}

// WithClassifier sets the variant classifier.
func WithClassifier(c *variant.Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithSynonyms sets the synonym table consulted during grouping.
func WithSynonyms(table *grouper.SynonymTable) Option {
	return func(o *options) {
		o.synonyms = table
	}
}

// WithScorer sets the completeness scorer used to pick winners.
func WithScorer(s *score.Scorer) Option {
	return func(o *options) {
		if s != nil {
			o.scorer = s
		}
	}
}

// WithWeights is shorthand for WithScorer with custom weights.
func WithWeights(weights score.Weights) Option {
	return func(o *options) {
		o.scorer = score.New(score.WithWeights(weights))
	}
}

// WithDryRun computes and reports the plan without applying it.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithoutJournal disables the write-ahead journal. Intended for
// in-memory catalogs and tests.
func WithoutJournal() Option {
	return func(o *options) {
		o.journal = false
	}
}
