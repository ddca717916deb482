package normalize

import "regexp"

// Rule is one ordered rewrite applied during cleaning. Modeling the cascade
// as data keeps the rule set testable in isolation and extensible without
// branching logic.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Apply rewrites all matches of the rule's pattern.
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replace)
}

// defaultMaxTokens is the token count above which cleaned input is treated
// as descriptive-sentence noise rather than a decorated binomial.
const defaultMaxTokens = 6

// DefaultRules returns the standard rewrite cascade, applied in order to
// already case-folded input.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "quoted-cultivar",
			Pattern: regexp.MustCompile(`['\x60\x{2018}\x{2019}][^'\x60\x{2018}\x{2019}]*['\x60\x{2018}\x{2019}]|"[^"]*"`),
			Replace: " ",
		},
		{
			Name:    "parenthetical",
			Pattern: regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`),
			Replace: " ",
		},
		{
			Name:    "variety-marker",
			Pattern: regexp.MustCompile(`\b(?:var|cv|ssp|subsp|subvar)\.?\s+.*$`),
			Replace: " ",
		},
		{
			Name:    "variegation",
			Pattern: regexp.MustCompile(`\bvariegat(?:a|ed|um|us)\b`),
			Replace: " ",
		},
		{
			Name:    "stray-quotes",
			Pattern: regexp.MustCompile(`['"\x60\x{2018}\x{2019}]`),
			Replace: "",
		},
	}
}

// defaultRankTokens are rank-abbreviation tokens dropped during
// tokenization when a variety marker survived the rewrite cascade.
func defaultRankTokens() map[string]bool {
	return map[string]bool{
		"var":      true,
		"ssp":      true,
		"subsp":    true,
		"f":        true,
		"form":     true,
		"cv":       true,
		"cultivar": true,
	}
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRules replaces the default rewrite cascade.
func WithRules(rules []Rule) Option {
	return func(n *Normalizer) {
		n.rules = rules
	}
}

// WithExtraRules appends rules to the default cascade.
func WithExtraRules(rules ...Rule) Option {
	return func(n *Normalizer) {
		n.rules = append(n.rules, rules...)
	}
}

// WithRankTokens replaces the rank-abbreviation token set.
func WithRankTokens(tokens map[string]bool) Option {
	return func(n *Normalizer) {
		n.rankTokens = tokens
	}
}

// WithMaxTokens sets the descriptive-noise token ceiling.
func WithMaxTokens(max int) Option {
	return func(n *Normalizer) {
		n.maxTokens = max
	}
}
