package reconcile

import "github.com/verdantlabs/verdant/pkg/catalogs"

// Plan is the set of merges a run intends to apply. Computing a plan
// never touches the store: the same catalog always yields the same plan.
type Plan struct {
	Merges []*Merge `yaml:"merges"`
}

// Merge records one winner absorbing one or more losers.
type Merge struct {
	// Key is the canonical key or shared name the group formed on.
	Key string `yaml:"key"`

	// Winner is the surviving document's file name.
	Winner string `yaml:"winner"`

	// Losers are the absorbed documents' file names, highest score
	// first.
	Losers []string `yaml:"losers"`

	// merged is the winner's post-merge record, held until apply.
	merged *catalogs.Record
}

// IsEmpty reports whether the plan contains no merges.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Merges) == 0
}

// LoserCount returns the total number of records the plan would absorb.
func (p *Plan) LoserCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, m := range p.Merges {
		n += len(m.Losers)
	}
	return n
}
