package catalogs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTripPreservesUnknownFields(t *testing.T) {
	doc := []byte(`{
		"id": 12,
		"name": "Fittonia",
		"scientificName": "Fittonia albivenis",
		"images": ["fittonia-1.jpg"],
		"careTips": ["keep soil moist"],
		"vendorSKU": "VND-0012",
		"lastScraped": "2025-11-02"
	}`)

	var rec Record
	require.NoError(t, json.Unmarshal(doc, &rec))

	require.NotNil(t, rec.ID)
	assert.Equal(t, int64(12), *rec.ID)
	assert.Equal(t, "Fittonia", rec.Name)
	assert.True(t, rec.ScientificName.Valid)
	assert.Equal(t, "Fittonia albivenis", rec.ScientificName.Value)
	assert.Contains(t, rec.Extra, "vendorSKU")
	assert.Contains(t, rec.Extra, "lastScraped")

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.Contains(t, round, "vendorSKU")
	assert.Contains(t, round, "lastScraped")
	assert.Contains(t, round, "scientificName")
}

func TestLooseStringMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want func(t *testing.T, s LooseString)
	}{
		{
			name: "string value",
			doc:  `{"scientificName": "Pilea peperomioides"}`,
			want: func(t *testing.T, s LooseString) {
				assert.True(t, s.Valid)
				assert.Equal(t, "Pilea peperomioides", s.Value)
				assert.False(t, s.Malformed())
			},
		},
		{
			name: "nested object",
			doc:  `{"scientificName": {"genus": "Pilea", "species": "peperomioides"}}`,
			want: func(t *testing.T, s LooseString) {
				assert.False(t, s.Valid)
				assert.True(t, s.Malformed())
				assert.Equal(t, "", s.String())
			},
		},
		{
			name: "number",
			doc:  `{"scientificName": 42}`,
			want: func(t *testing.T, s LooseString) {
				assert.False(t, s.Valid)
				assert.True(t, s.Malformed())
			},
		},
		{
			name: "explicit null",
			doc:  `{"scientificName": null}`,
			want: func(t *testing.T, s LooseString) {
				assert.False(t, s.Valid)
				assert.True(t, s.IsZero())
				assert.False(t, s.Malformed())
			},
		},
		{
			name: "absent",
			doc:  `{"name": "Pilea"}`,
			want: func(t *testing.T, s LooseString) {
				assert.False(t, s.Valid)
				assert.True(t, s.IsZero())
				assert.False(t, s.Malformed())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &rec))
			tt.want(t, rec.ScientificName)
		})
	}
}

func TestLooseStringMalformedValuePreservedOnRewrite(t *testing.T) {
	doc := []byte(`{"name": "Pilea", "scientificName": {"genus": "Pilea"}}`)

	var rec Record
	require.NoError(t, json.Unmarshal(doc, &rec))

	out, err := json.Marshal(rec)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.JSONEq(t, `{"genus": "Pilea"}`, string(round["scientificName"]))
}

func TestStringListAcceptsBareString(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"category": "terrarium"}`), &rec))
	assert.Equal(t, StringList{"terrarium"}, rec.Category)

	require.NoError(t, json.Unmarshal([]byte(`{"category": ["terrarium", "vivarium"]}`), &rec))
	assert.Equal(t, StringList{"terrarium", "vivarium"}, rec.Category)
}

func TestImageCount(t *testing.T) {
	rec := Record{
		Images:   []string{"a.jpg", "b.jpg"},
		ImageURL: "a.jpg",
	}
	assert.Equal(t, 2, rec.ImageCount(), "primary image already listed is not double counted")

	rec.ImageURL = "c.jpg"
	assert.Equal(t, 3, rec.ImageCount())

	rec = Record{}
	assert.Equal(t, 0, rec.ImageCount())
}

func TestTaxonomyPopulatedRanks(t *testing.T) {
	tax := Taxonomy{
		"kingdom": "Plantae",
		"phylum":  "Tracheophyta",
		"class":   "",
		"genus":   "Fittonia",
	}
	assert.Equal(t, 3, tax.PopulatedRanks())
}

func TestRecordCopyIsDeep(t *testing.T) {
	id := int64(7)
	rec := Record{
		ID:       &id,
		Name:     "Fittonia",
		Images:   []string{"a.jpg"},
		Taxonomy: Taxonomy{"genus": "Fittonia"},
	}

	dup := rec.Copy()
	dup.Images[0] = "changed.jpg"
	dup.Taxonomy["genus"] = "changed"
	*dup.ID = 99

	assert.Equal(t, "a.jpg", rec.Images[0])
	assert.Equal(t, "Fittonia", rec.Taxonomy["genus"])
	assert.Equal(t, int64(7), *rec.ID)
}
