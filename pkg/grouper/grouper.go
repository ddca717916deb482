// Package grouper partitions the record set into groups believed to denote
// the same underlying entity, while excluding legitimate cultivar and variant
// siblings. Grouping is pairwise O(n²) over the corpus; catalog sizes are in
// the hundreds, so this is not an optimization target.
package grouper

import (
	"github.com/verdantlabs/verdant/pkg/constants"
	"github.com/verdantlabs/verdant/pkg/normalize"
	"github.com/verdantlabs/verdant/pkg/variant"
)

// Candidate is one record as the grouper sees it: its document file name,
// display name, canonical key, and lexical variant classification.
type Candidate struct {
	File    string
	Name    string
	Key     *normalize.Key
	Variant *variant.Classification
}

// Group is a set of candidates denoting one real-world entity. A singleton
// group passes through reconciliation untouched.
type Group struct {
	Members []*Candidate
}

// Grouper clusters candidates using canonical keys, a synonym table, and
// normalized display-name equality, in that precedence order.
type Grouper struct {
	synonyms   *SynonymTable
	normalizer *normalize.Normalizer
	classifier *variant.Classifier
	minNameLen int
}

// Option configures a Grouper.
type Option func(*Grouper)

// WithSynonyms supplies the common-name synonym table.
func WithSynonyms(table *SynonymTable) Option {
	return func(g *Grouper) {
		g.synonyms = table
	}
}

// WithNormalizer supplies the name normalizer used for display-name cleaning.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(g *Grouper) {
		g.normalizer = n
	}
}

// WithClassifier supplies the variant classifier used to strip size
// qualifiers during display-name comparison.
func WithClassifier(c *variant.Classifier) Option {
	return func(g *Grouper) {
		g.classifier = c
	}
}

// WithMinNameLength sets the floor below which cleaned display names are too
// generic to group on text equality.
func WithMinNameLength(min int) Option {
	return func(g *Grouper) {
		g.minNameLen = min
	}
}

// New creates a Grouper.
func New(opts ...Option) *Grouper {
	g := &Grouper{
		normalizer: normalize.New(),
		classifier: variant.New(),
		minNameLen: constants.MinGroupableNameLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Group partitions candidates into entity groups. Group membership is
// transitive: if A matches B and B matches C, all three land together.
// Transitivity never overrides the hard exclusion: a keyless record whose
// name matches two records with conflicting keys must not bridge them, so a
// union is refused whenever any member of one cluster conflicts with any
// member of the other.
func (g *Grouper) Group(candidates []*Candidate) []*Group {
	parent := make([]int, len(candidates))
	members := make(map[int][]int, len(candidates))
	for i := range parent {
		parent[i] = i
		members[i] = []int{i}
	}

	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri == rj {
			return
		}
		for _, a := range members[ri] {
			for _, b := range members[rj] {
				if candidates[a].Key.ConflictsWith(candidates[b].Key) {
					return
				}
			}
		}
		parent[rj] = ri
		members[ri] = append(members[ri], members[rj]...)
		delete(members, rj)
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if g.sameEntity(candidates[i], candidates[j]) {
				union(i, j)
			}
		}
	}

	byRoot := make(map[int][]*Candidate)
	order := make([]int, 0, len(candidates))
	for i, cand := range candidates {
		root := find(i)
		if _, seen := byRoot[root]; !seen {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], cand)
	}

	groups := make([]*Group, 0, len(order))
	for _, root := range order {
		groups = append(groups, &Group{Members: byRoot[root]})
	}
	return groups
}

// sameEntity decides whether two candidates denote the same entity, applying
// the grouping rules in precedence order under the hard exclusion invariant.
func (g *Grouper) sameEntity(a, b *Candidate) bool {
	// Taxonomic disagreement always wins over name-text similarity: two
	// scientific names sharing a genus with different species epithets
	// are never grouped, regardless of any other rule.
	if a.Key.ConflictsWith(b.Key) {
		return false
	}

	// A cultivar/variegated variant is never folded into its base
	// species. It merges only with a duplicate of the same variant.
	if a.Variant != nil || b.Variant != nil {
		return g.sameVariant(a, b)
	}

	// Rule 1: exact species match. Requiring the species epithet to
	// agree keeps genus-only fallback keys from over-merging unrelated
	// species in the same genus.
	if a.Key.SameSpecies(b.Key) {
		return true
	}

	// Rule 2: known common-name synonym pair.
	if g.synonyms.SameGroup(g.normalizer.Clean(a.Name), g.normalizer.Clean(b.Name)) {
		return true
	}

	// Rule 3: normalized display-name equality above the length floor.
	nameA, okA := g.comparableName(a.Name)
	nameB, okB := g.comparableName(b.Name)
	return okA && okB && nameA == nameB
}

// sameVariant reports whether two candidates are duplicates of the same
// decorated variant.
func (g *Grouper) sameVariant(a, b *Candidate) bool {
	if a.Variant == nil || b.Variant == nil {
		return false
	}
	if a.Variant.VariantLabel != b.Variant.VariantLabel {
		return false
	}
	if a.Key.SameSpecies(b.Key) {
		return true
	}
	nameA, okA := g.comparableName(a.Name)
	nameB, okB := g.comparableName(b.Name)
	return okA && okB && nameA == nameB
}

// comparableName cleans a display name and strips size qualifiers for
// rule-3 comparison. Names at or below the length floor are too generic to
// compare; collapsing short generic words would over-merge.
func (g *Grouper) comparableName(name string) (string, bool) {
	cleaned := g.normalizer.Clean(name)
	if _, stripped, ok := g.classifier.SizeQualifier(cleaned); ok {
		cleaned = stripped
	}
	if len(cleaned) <= g.minNameLen {
		return "", false
	}
	return cleaned, true
}
