// Package normalize derives canonical genus+species keys from raw scientific
// name strings. Input is untrusted: vendor pages ship cultivar decorations,
// quotes, parenthetical asides, and whole descriptive sentences where a
// binomial belongs. Normalization is pure and idempotent; re-normalizing an
// already canonical key returns the same key.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/verdantlabs/verdant/pkg/constants"
)

// Key is the canonical identity of a species: genus plus species epithet,
// with hybrid notation retained. A genus-only key (empty Species) is a weak
// fallback and is never sufficient on its own to merge two records.
type Key struct {
	Genus   string
	Species string
	Hybrid  bool
}

// String renders the key in its canonical "<genus> <species>" form, with the
// hybrid marker between the tokens when present.
func (k *Key) String() string {
	if k == nil {
		return ""
	}
	if k.Species == "" {
		return k.Genus
	}
	if k.Hybrid {
		return k.Genus + " x " + k.Species
	}
	return k.Genus + " " + k.Species
}

// GenusOnly reports whether the key carries no species epithet.
func (k *Key) GenusOnly() bool {
	return k != nil && k.Species == ""
}

// SameSpecies reports whether two keys agree on both genus and species
// epithet. Either key being genus-only is never an agreement.
func (k *Key) SameSpecies(other *Key) bool {
	if k == nil || other == nil || k.GenusOnly() || other.GenusOnly() {
		return false
	}
	return k.Genus == other.Genus && k.Species == other.Species
}

// ConflictsWith reports whether two keys share a genus but carry different
// species epithets. Taxonomic disagreement always wins over name-text
// similarity: conflicting keys must never be grouped.
func (k *Key) ConflictsWith(other *Key) bool {
	if k == nil || other == nil || k.GenusOnly() || other.GenusOnly() {
		return false
	}
	return k.Genus == other.Genus && k.Species != other.Species
}

// Normalizer canonicalizes raw scientific name strings into Keys using an
// ordered list of rewrite rules followed by tokenization.
type Normalizer struct {
	rules      []Rule
	rankTokens map[string]bool
	maxTokens  int
	folder     cases.Caser
	stripAcc   transform.Transformer
}

// New creates a Normalizer with default rules, optionally customized.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		rules:      DefaultRules(),
		rankTokens: defaultRankTokens(),
		maxTokens:  defaultMaxTokens,
		folder:     cases.Fold(),
		stripAcc:   transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Clean lowercases the input, strips diacritics, and applies the rewrite
// rules in order. The result is whitespace-collapsed but not tokenized.
func (n *Normalizer) Clean(raw string) string {
	s := n.folder.String(raw)
	if stripped, _, err := transform.String(n.stripAcc, s); err == nil {
		s = stripped
	}
	for _, rule := range n.rules {
		s = rule.Apply(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

// Key derives the canonical key for a raw scientific name, or nil when no
// key can be derived. Cultivar and variety decorations are stripped for the
// key; callers needing them should inspect the original string.
func (n *Normalizer) Key(raw string) *Key {
	cleaned := n.Clean(raw)
	if cleaned == "" {
		return nil
	}

	tokens := n.meaningfulTokens(cleaned)
	if len(tokens) == 0 {
		return nil
	}

	// Descriptive-sentence noise: a binomial with decorations stripped
	// never leaves this many tokens behind.
	if len(tokens) > n.maxTokens {
		return nil
	}

	// Hybrid notation between genus and species tokens is retained
	// inside the key.
	if len(tokens) >= 3 && isHybridMarker(tokens[1]) {
		return &Key{Genus: tokens[0], Species: tokens[2], Hybrid: true}
	}

	if len(tokens) >= 2 {
		if isHybridMarker(tokens[0]) || isHybridMarker(tokens[1]) {
			// A dangling marker without both sides is noise.
			tokens = dropHybridMarkers(tokens)
			if len(tokens) >= 2 {
				return &Key{Genus: tokens[0], Species: tokens[1]}
			}
			if len(tokens) == 1 {
				return n.genusOnlyKey(tokens[0])
			}
			return nil
		}
		return &Key{Genus: tokens[0], Species: tokens[1]}
	}

	return n.genusOnlyKey(tokens[0])
}

// genusOnlyKey accepts a lone token as a weak genus-only key when it is long
// enough to plausibly be a genus name.
func (n *Normalizer) genusOnlyKey(token string) *Key {
	if len(token) >= constants.MinGenusTokenLength {
		return &Key{Genus: token}
	}
	return nil
}

// meaningfulTokens splits on whitespace, trims stray punctuation, and drops
// rank-abbreviation tokens.
func (n *Normalizer) meaningfulTokens(cleaned string) []string {
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && r != 'x' && r != '×'
		})
		if token == "" || n.rankTokens[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// isHybridMarker reports whether a token denotes hybrid notation.
func isHybridMarker(token string) bool {
	return token == "x" || token == "×"
}

// dropHybridMarkers removes hybrid marker tokens.
func dropHybridMarkers(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if !isHybridMarker(t) {
			out = append(out, t)
		}
	}
	return out
}
