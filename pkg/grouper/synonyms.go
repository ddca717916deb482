package grouper

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/verdantlabs/verdant/pkg/errors"
	"github.com/verdantlabs/verdant/pkg/normalize"
)

// SynonymTable holds hand-curated groups of equivalent common names
// ("Fittonia" and "Nerve Plant" denote the same species). The table is
// immutable configuration: extending the catalog's domain means extending
// the table, not the grouping logic.
type SynonymTable struct {
	groups map[string]int
}

// synonymFile is the YAML shape of an on-disk synonym table.
type synonymFile struct {
	Synonyms [][]string `yaml:"synonyms"`
}

// NewSynonymTable builds a table from groups of equivalent names. Entries
// are canonicalized with the given normalizer so lookups match however the
// source document spelled them.
func NewSynonymTable(groups [][]string, n *normalize.Normalizer) *SynonymTable {
	t := &SynonymTable{groups: make(map[string]int)}
	for i, group := range groups {
		for _, name := range group {
			cleaned := n.Clean(name)
			if cleaned != "" {
				t.groups[cleaned] = i
			}
		}
	}
	return t
}

// LoadSynonyms reads a synonym table from a YAML file.
//
// File format:
//
//	synonyms:
//	  - ["Fittonia", "Nerve Plant"]
//	  - ["Baby's Tears", "Baby Tears", "Soleirolia"]
func LoadSynonyms(path string, n *normalize.Normalizer) (*SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var file synonymFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	return NewSynonymTable(file.Synonyms, n), nil
}

// SameGroup reports whether two cleaned display names sit in the same
// synonym group. Names absent from the table never match.
func (t *SynonymTable) SameGroup(a, b string) bool {
	if t == nil || a == "" || b == "" {
		return false
	}
	ga, ok := t.groups[a]
	if !ok {
		return false
	}
	gb, ok := t.groups[b]
	return ok && ga == gb
}

// Len returns the number of names the table knows.
func (t *SynonymTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.groups)
}
