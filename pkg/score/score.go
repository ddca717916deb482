// Package score computes a completeness score per record, used only to rank
// records within a group when picking a merge winner. The score is a simple
// linear scalarization, not a calibrated metric: it only needs to produce a
// strict ranking.
package score

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/constants"
	"github.com/verdantlabs/verdant/pkg/errors"
)

// Weights configures the completeness scalarization. Images are the
// scarcest, most valuable field; scientific names are a stronger
// completeness signal than prose.
type Weights struct {
	Description    float64 `yaml:"description"`     // per character
	ScientificName float64 `yaml:"scientific_name"` // per character
	Image          float64 `yaml:"image"`           // per image
	TaxonomyBonus  float64 `yaml:"taxonomy_bonus"`  // flat, for a full taxonomy
	TaxonomyRanks  int     `yaml:"taxonomy_ranks"`  // populated ranks counted as full
}

// DefaultWeights returns the standard weights.
func DefaultWeights() Weights {
	return Weights{
		Description:    1,
		ScientificName: 3,
		Image:          10,
		TaxonomyBonus:  25,
		TaxonomyRanks:  constants.FullTaxonomyRanks,
	}
}

// LoadWeights reads weights from a YAML file, filling absent fields from
// the defaults.
func LoadWeights(path string) (Weights, error) {
	weights := DefaultWeights()

	data, err := os.ReadFile(path)
	if err != nil {
		return weights, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return weights, errors.WrapParse("yaml", path, err)
	}
	return weights, nil
}

// Scorer ranks records by data completeness.
type Scorer struct {
	weights Weights
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights replaces the default weights.
func WithWeights(weights Weights) Option {
	return func(s *Scorer) {
		s.weights = weights
	}
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the completeness score for one record. Malformed
// scientific names contribute nothing.
func (s *Scorer) Score(rec *catalogs.Record) float64 {
	if rec == nil {
		return 0
	}

	total := float64(len(rec.Description)) * s.weights.Description
	total += float64(len(rec.ScientificName.String())) * s.weights.ScientificName
	total += float64(rec.ImageCount()) * s.weights.Image

	if rec.Taxonomy.PopulatedRanks() >= s.weights.TaxonomyRanks {
		total += s.weights.TaxonomyBonus
	}

	return total
}
