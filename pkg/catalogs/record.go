package catalogs

import (
	"encoding/json"

	"github.com/verdantlabs/verdant/pkg/errors"
)

// Record represents one plant catalog entry, stored as a discrete JSON
// document. Records originate from uncoordinated sources (manual entry,
// scraped vendor pages, taxonomy APIs), so every field is treated as
// untrusted input.
type Record struct {
	// Core identity
	ID             *int64      `json:"id,omitempty"`   // Stable external identifier, never re-derived
	Name           string      `json:"name,omitempty"` // Display name (common or scientific)
	ScientificName LooseString `json:"scientificName,omitzero"`

	// Classification
	Taxonomy Taxonomy `json:"taxonomy,omitempty"` // Optional rank -> name mapping, may be partial

	// Descriptive content
	Description string `json:"description,omitempty"`

	// Media
	Images   []string `json:"images,omitempty"`   // Ordered list of local or remote references
	ImageURL string   `json:"imageUrl,omitempty"` // Primary image reference

	// Compositional string lists (union on merge)
	CareTips     StringList `json:"careTips,omitempty"`
	Category     StringList `json:"category,omitempty"`
	VivariumType StringList `json:"vivariumType,omitempty"`
	CommonNames  StringList `json:"commonNames,omitempty"`

	// Variant annotation, written onto surviving variant records only
	VariantInfo *VariantInfo `json:"variantInfo,omitempty"`

	// Extra holds unrecognized fields verbatim so a rewrite never drops
	// data the engine does not understand. On merge the winner's extras
	// always take precedence.
	Extra map[string]json.RawMessage `json:"-"`
}

// VariantInfo annotates a record identified as a cultivar, variegated form,
// or named size form of a base species.
type VariantInfo struct {
	BaseKey      string `json:"baseKey"`
	VariantLabel string `json:"variantLabel"`
}

// Taxonomy maps taxonomic rank names (kingdom ... species) to values.
type Taxonomy map[string]string

// PopulatedRanks returns the number of ranks carrying a non-empty value.
func (t Taxonomy) PopulatedRanks() int {
	n := 0
	for _, v := range t {
		if v != "" {
			n++
		}
	}
	return n
}

// LooseString is a string field tolerant of malformed JSON input. Scraped
// documents sometimes carry a serialized sub-object or a number where a
// string belongs; those unmarshal as invalid instead of failing the whole
// document, and re-marshal byte-for-byte so a rewrite leaves them untouched.
type LooseString struct {
	Value string
	Valid bool
	raw   json.RawMessage
}

// String returns the value when valid, otherwise the empty string.
func (s LooseString) String() string {
	if s.Valid {
		return s.Value
	}
	return ""
}

// IsZero reports whether the field was absent entirely.
func (s LooseString) IsZero() bool {
	return !s.Valid && len(s.raw) == 0
}

// Malformed reports whether the field was present but not a string.
func (s LooseString) Malformed() bool {
	return !s.Valid && len(s.raw) > 0
}

// NewLooseString returns a valid LooseString holding value.
func NewLooseString(value string) LooseString {
	return LooseString{Value: value, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		// Explicit null means absent, same as the key missing.
		*s = LooseString{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.Value = str
		s.Valid = true
		s.raw = nil
		return nil
	}
	// Not a string: retain the raw bytes, mark invalid.
	s.Value = ""
	s.Valid = false
	s.raw = append(s.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s LooseString) MarshalJSON() ([]byte, error) {
	if !s.Valid && len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(s.Value)
}

// StringList is a []string tolerant of a bare string in place of an array,
// a shape common in hand-entered documents.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	return errors.NewParseError("json", "", "value is neither a string nor a string array", nil)
}

// Contains reports whether the list already holds value (string equality).
func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if v == value {
			return true
		}
	}
	return false
}

// recordFields are the JSON keys the engine recognizes on a record document.
// Anything else round-trips through Record.Extra.
var recordFields = map[string]bool{
	"id":             true,
	"name":           true,
	"scientificName": true,
	"taxonomy":       true,
	"description":    true,
	"images":         true,
	"imageUrl":       true,
	"careTips":       true,
	"category":       true,
	"vivariumType":   true,
	"commonNames":    true,
	"variantInfo":    true,
}

// UnmarshalJSON implements json.Unmarshaler, capturing unrecognized fields
// into Extra so they survive a rewrite.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	type alias Record // avoid recursing into this method
	var known alias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	*r = Record(known)

	for key, raw := range fields {
		if recordFields[key] {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler, re-emitting unrecognized fields.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	data, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for key, raw := range r.Extra {
		if _, exists := fields[key]; !exists {
			fields[key] = raw
		}
	}
	return json.Marshal(fields)
}

// ImageCount returns the number of distinct image references the record
// carries, counting the primary image when it is not already listed.
func (r *Record) ImageCount() int {
	n := len(r.Images)
	if r.ImageURL != "" {
		listed := false
		for _, img := range r.Images {
			if img == r.ImageURL {
				listed = true
				break
			}
		}
		if !listed {
			n++
		}
	}
	return n
}

// Copy returns a deep copy of the record.
func (r Record) Copy() Record {
	out := r
	if r.ID != nil {
		id := *r.ID
		out.ID = &id
	}
	if r.Taxonomy != nil {
		out.Taxonomy = make(Taxonomy, len(r.Taxonomy))
		for k, v := range r.Taxonomy {
			out.Taxonomy[k] = v
		}
	}
	out.Images = append([]string(nil), r.Images...)
	out.CareTips = append(StringList(nil), r.CareTips...)
	out.Category = append(StringList(nil), r.Category...)
	out.VivariumType = append(StringList(nil), r.VivariumType...)
	out.CommonNames = append(StringList(nil), r.CommonNames...)
	if r.VariantInfo != nil {
		vi := *r.VariantInfo
		out.VariantInfo = &vi
	}
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}
