package reconcile

import (
	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/normalize"
)

// Merger combines loser records into a winner using field-specific policies.
// The policy is total: it is defined for every field combination, treats
// absence as the identity element for its merge operation, and never panics
// on missing fields.
type Merger struct {
	normalizer *normalize.Normalizer
}

// NewMerger creates a Merger. The normalizer revalidates scientific names
// before they may replace the winner's value.
func NewMerger(n *normalize.Normalizer) *Merger {
	return &Merger{normalizer: n}
}

// Merge folds losers into a copy of the winner, losers in score-descending
// order. The returned record is independent of all inputs.
//
// Field rules:
//   - name, description: replaced only by a strictly longer value
//   - scientificName: replaced only by a strictly longer value that still
//     yields a canonical key
//   - images and the compositional string lists: deduplicated union,
//     preserving within-list order
//   - imageUrl: adopted from the first loser that has one if empty
//   - id: never overwritten, the winner keeps its own
//   - unrecognized fields: the winner's values take precedence
//     unconditionally
func (m *Merger) Merge(winner *catalogs.Record, losers ...*catalogs.Record) *catalogs.Record {
	merged := winner.Copy()

	for _, loser := range losers {
		if loser == nil {
			continue
		}
		m.scalarFields(&merged, loser)
		m.listFields(&merged, loser)
		m.taxonomy(&merged, loser)
	}

	return &merged
}

// scalarFields applies the prefer-longer policy to scalar fields.
func (m *Merger) scalarFields(merged, loser *catalogs.Record) {
	if len(loser.Name) > len(merged.Name) {
		merged.Name = loser.Name
	}
	if len(loser.Description) > len(merged.Description) {
		merged.Description = loser.Description
	}

	// A longer scientific name only wins if it is well formed and still
	// normalizes to a key; prose never displaces a usable binomial.
	if loser.ScientificName.Valid &&
		len(loser.ScientificName.Value) > len(merged.ScientificName.String()) &&
		m.normalizer.Key(loser.ScientificName.Value) != nil {
		merged.ScientificName = loser.ScientificName
	}

	if merged.ImageURL == "" && loser.ImageURL != "" {
		merged.ImageURL = loser.ImageURL
	}
}

// listFields unions list-valued fields, deduplicating by value.
func (m *Merger) listFields(merged, loser *catalogs.Record) {
	merged.Images = unionStrings(merged.Images, loser.Images)
	merged.CareTips = unionStrings(merged.CareTips, loser.CareTips)
	merged.Category = unionStrings(merged.Category, loser.Category)
	merged.VivariumType = unionStrings(merged.VivariumType, loser.VivariumType)
	merged.CommonNames = unionStrings(merged.CommonNames, loser.CommonNames)
}

// taxonomy fills ranks absent on the winner from the loser. Populated
// winner ranks are never displaced.
func (m *Merger) taxonomy(merged, loser *catalogs.Record) {
	if len(loser.Taxonomy) == 0 {
		return
	}
	if merged.Taxonomy == nil {
		merged.Taxonomy = make(catalogs.Taxonomy, len(loser.Taxonomy))
	}
	for rank, value := range loser.Taxonomy {
		if value != "" && merged.Taxonomy[rank] == "" {
			merged.Taxonomy[rank] = value
		}
	}
}

// unionStrings appends entries of add not already present in base,
// preserving order and dropping exact-value duplicates only. Merging is
// idempotent: re-merging already-merged data appends nothing.
func unionStrings[S ~[]string](base S, add S) S {
	if len(add) == 0 {
		return base
	}

	seen := make(map[string]bool, len(base)+len(add))
	out := make(S, 0, len(base)+len(add))
	for _, v := range base {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range add {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
