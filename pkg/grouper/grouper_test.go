package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant/pkg/normalize"
	"github.com/verdantlabs/verdant/pkg/variant"
)

func testGrouper(t *testing.T) (*Grouper, *normalize.Normalizer, *variant.Classifier) {
	t.Helper()
	n := normalize.New()
	c := variant.New()
	table := NewSynonymTable([][]string{
		{"Fittonia", "Nerve Plant"},
		{"Baby's Tears", "Baby Tears", "Soleirolia"},
	}, n)
	g := New(WithSynonyms(table), WithNormalizer(n), WithClassifier(c))
	return g, n, c
}

// candidate builds a Candidate the way the reconciliation driver does:
// canonical key from the scientific name, lexical variant classification
// from both names.
func candidate(file, name, sci string, n *normalize.Normalizer, c *variant.Classifier) *Candidate {
	key := n.Key(sci)
	return &Candidate{
		File:    file,
		Name:    name,
		Key:     key,
		Variant: c.Lexical(name, sci, key),
	}
}

func findGroupOf(t *testing.T, groups []*Group, file string) *Group {
	t.Helper()
	for _, group := range groups {
		for _, m := range group.Members {
			if m.File == file {
				return group
			}
		}
	}
	t.Fatalf("no group contains %s", file)
	return nil
}

func TestGroupBySpeciesKey(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Nerve Plant", "Fittonia albivenis", n, c),
		candidate("b.json", "Fittonia", "Fittonia albivenis (a terrarium classic)", n, c),
		candidate("c.json", "Pilea", "Pilea peperomioides", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
	assert.Len(t, findGroupOf(t, groups, "a.json").Members, 2)
	assert.Len(t, findGroupOf(t, groups, "c.json").Members, 1)
}

func TestNoCrossSpeciesMerge(t *testing.T) {
	g, n, c := testGrouper(t)

	// Same genus, different species epithets: never grouped, even with
	// matching display names.
	cands := []*Candidate{
		candidate("a.json", "Alocasia", "Alocasia amazonica", n, c),
		candidate("b.json", "Alocasia", "Alocasia azlanii", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
}

func TestExclusionBeatsSynonymRule(t *testing.T) {
	g, n, c := testGrouper(t)

	// Display names are a known synonym pair, but the scientific names
	// disagree on the species epithet. Taxonomy wins.
	cands := []*Candidate{
		candidate("a.json", "Fittonia", "Fittonia albivenis", n, c),
		candidate("b.json", "Nerve Plant", "Fittonia gigantea", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
}

func TestSynonymPairGroups(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Fittonia", "", n, c),
		candidate("b.json", "Nerve Plant", "Fittonia albivenis", n, c),
		candidate("c.json", "Baby's Tears", "", n, c),
		candidate("d.json", "Baby Tears", "", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
	assert.Len(t, findGroupOf(t, groups, "a.json").Members, 2)
	assert.Len(t, findGroupOf(t, groups, "c.json").Members, 2)
}

func TestNameEqualityAfterSizeQualifier(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Haworthia Mini", "Haworthia fasciata", n, c),
		candidate("b.json", "Haworthia", "Haworthia fasciata", n, c),
	}

	groups := g.Group(cands)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 2)
}

func TestShortGenericNamesDoNotGroup(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Fern", "", n, c),
		candidate("b.json", "Fern", "", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2, "names at or below the length floor never group on text equality")
}

func TestVariantNeverGroupsWithBase(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Echeveria elegans", "Echeveria elegans", n, c),
		candidate("b.json", "Echeveria elegans 'Variegata'", "Echeveria elegans", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2, "cultivar marker blocks merging into the base species")
}

func TestDuplicateVariantsGroup(t *testing.T) {
	g, n, c := testGrouper(t)

	cands := []*Candidate{
		candidate("a.json", "Echeveria elegans 'Variegata'", "Echeveria elegans", n, c),
		candidate("b.json", "Echeveria elegans 'Variegata'", "Echeveria elegans 'Variegata'", n, c),
		candidate("c.json", "Echeveria elegans 'Raspberry Ice'", "Echeveria elegans", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
	assert.Len(t, findGroupOf(t, groups, "a.json").Members, 2)
	assert.Len(t, findGroupOf(t, groups, "c.json").Members, 1)
}

func TestGenusOnlyKeysAreNotSufficient(t *testing.T) {
	g, n, c := testGrouper(t)

	// Both records derive only a genus key; that alone must not merge them.
	cands := []*Candidate{
		candidate("a.json", "String of Pearls", "Senecio", n, c),
		candidate("b.json", "String of Bananas", "Senecio", n, c),
	}

	groups := g.Group(cands)
	assert.Len(t, groups, 2)
}

func TestGroupingIsTransitive(t *testing.T) {
	g, n, c := testGrouper(t)

	// a-b match on species key, b-c on synonym pair: all three group.
	cands := []*Candidate{
		candidate("a.json", "Mosaic Plant", "Fittonia albivenis", n, c),
		candidate("b.json", "Fittonia", "Fittonia albivenis", n, c),
		candidate("c.json", "Nerve Plant", "", n, c),
	}

	groups := g.Group(cands)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Members, 3)
}

func TestKeylessRecordCannotBridgeConflictingKeys(t *testing.T) {
	g, n, c := testGrouper(t)

	// A record with no scientific name shares a display name with two
	// records whose keys conflict on the species epithet. It may join one
	// of them, but it must never pull the conflicting pair into one group.
	cands := []*Candidate{
		candidate("a.json", "Elephant Ear", "Alocasia amazonica", n, c),
		candidate("b.json", "Elephant Ear", "", n, c),
		candidate("c.json", "Elephant Ear", "Alocasia azlanii", n, c),
	}

	groups := g.Group(cands)
	require.Len(t, groups, 2)
	assert.NotSame(t, findGroupOf(t, groups, "a.json"), findGroupOf(t, groups, "c.json"))
	assert.Len(t, findGroupOf(t, groups, "a.json").Members, 2)
	assert.Len(t, findGroupOf(t, groups, "c.json").Members, 1)
}

func TestSynonymTable(t *testing.T) {
	n := normalize.New()
	table := NewSynonymTable([][]string{
		{"Fittonia", "Nerve Plant"},
		{"Baby's Tears", "Baby Tears"},
	}, n)

	assert.True(t, table.SameGroup("fittonia", "nerve plant"))
	assert.True(t, table.SameGroup("babys tears", "baby tears"))
	assert.False(t, table.SameGroup("fittonia", "baby tears"))
	assert.False(t, table.SameGroup("fittonia", "unknown plant"))
	assert.False(t, table.SameGroup("", "fittonia"))

	var nilTable *SynonymTable
	assert.False(t, nilTable.SameGroup("fittonia", "nerve plant"))
	assert.Equal(t, 0, nilTable.Len())
}
