// Package variant decides whether a record represents a cultivar, variegated
// form, or named size form of a base species rather than an independent
// entity. Cultivar and variegation markers are context-free and classified
// lexically before grouping; size qualifiers are ambiguous on their own and
// only classified relationally, after grouping, when a plain sibling with the
// same canonical key exists.
package variant

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/verdantlabs/verdant/pkg/normalize"
)

// Classification annotates a record identified as a variant.
type Classification struct {
	BaseKey      string // canonical key of the base species
	VariantLabel string // cultivar name, "variegata", or size qualifier
}

// Classifier applies variant detection rules. The qualifier set is immutable
// configuration injected at construction.
type Classifier struct {
	qualifiers map[string]bool
	quotedRe   *regexp.Regexp
	markerRe   *regexp.Regexp
	variegRe   *regexp.Regexp
	folder     cases.Caser
}

// DefaultSizeQualifiers are the standalone size/form tokens that mark a
// record as a variant of a plain sibling.
func DefaultSizeQualifiers() map[string]bool {
	return map[string]bool{
		"mini":   true,
		"dwarf":  true,
		"small":  true,
		"tiny":   true,
		"micro":  true,
		"petite": true,
	}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithSizeQualifiers replaces the size qualifier token set.
func WithSizeQualifiers(qualifiers map[string]bool) Option {
	return func(c *Classifier) {
		c.qualifiers = qualifiers
	}
}

// New creates a Classifier with default rules.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		qualifiers: DefaultSizeQualifiers(),
		quotedRe:   regexp.MustCompile(`['\x60\x{2018}\x{2019}]([^'\x60\x{2018}\x{2019}]+)['\x60\x{2018}\x{2019}]|"([^"]+)"`),
		markerRe:   regexp.MustCompile(`(?i)\b(?:var|cv)\.?\s+(\S+)`),
		variegRe:   regexp.MustCompile(`(?i)\bvariegat(?:a|ed|um|us)\b`),
		folder:     cases.Fold(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lexical classifies from name text alone: quoted cultivar tokens, explicit
// var./cv. markers, and variegation words. Returns nil when no context-free
// marker fires; size qualifiers are deliberately not considered here.
func (c *Classifier) Lexical(name, scientificName string, key *normalize.Key) *Classification {
	for _, text := range []string{name, scientificName} {
		if text == "" {
			continue
		}
		if label := c.cultivarLabel(text); label != "" {
			return &Classification{BaseKey: key.String(), VariantLabel: label}
		}
		if m := c.markerRe.FindStringSubmatch(text); m != nil {
			return &Classification{BaseKey: key.String(), VariantLabel: c.folder.String(m[1])}
		}
		if c.variegRe.MatchString(text) {
			return &Classification{BaseKey: key.String(), VariantLabel: "variegata"}
		}
	}
	return nil
}

// SizeQualifier reports the standalone size/form qualifier carried by a
// display name, if any, along with the name with the qualifier removed.
// Whether that makes the record a variant is relational: it depends on a
// plain sibling existing, which only the grouper can see.
func (c *Classifier) SizeQualifier(name string) (label, stripped string, ok bool) {
	fields := strings.Fields(c.folder.String(name))
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, `"'()`)
		if label == "" && c.qualifiers[token] {
			label = token
			continue
		}
		kept = append(kept, field)
	}
	if label == "" {
		return "", name, false
	}
	return label, strings.Join(kept, " "), true
}

// cultivarLabel extracts a quoted cultivar token.
func (c *Classifier) cultivarLabel(text string) string {
	m := c.quotedRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return c.folder.String(group)
		}
	}
	return ""
}
