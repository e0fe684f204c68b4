package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInCatalogIsValid(t *testing.T) {
	require.NoError(t, Validate(Requirements()))
}

func TestRequirementsReturnsCopies(t *testing.T) {
	first := Requirements()
	first[0].Name = "mutated"
	for i := range first {
		if len(first[i].Match.Keywords) > 0 {
			first[i].Match.Keywords[0] = "mutated"
		}
	}

	second := Requirements()
	assert.NotEqual(t, "mutated", second[0].Name)
	for _, r := range second {
		for _, k := range r.Match.Keywords {
			assert.NotEqual(t, "mutated", k, "requirement %s keyword leaked mutation", r.ID)
		}
	}
}

func TestCatalogCoversEveryCategory(t *testing.T) {
	cats := Categories()
	for c := range categoryLabels {
		assert.Contains(t, cats, c)
	}
	assert.Equal(t, CategoryFoodSafety, cats[0], "categories follow catalog order")
}

func TestByID(t *testing.T) {
	r, ok := ByID("fire-safety-policy")
	require.True(t, ok)
	assert.Equal(t, "Fire Safety Policy", r.Name)
	assert.Equal(t, EvidenceDocument, r.EvidenceType)

	_, ok = ByID("does-not-exist")
	assert.False(t, ok)
}

func TestCOSHHRequirementsUseCrossCuttingRule(t *testing.T) {
	for _, id := range []string{"coshh-register", "coshh-data-sheets"} {
		r, ok := ByID(id)
		require.True(t, ok)
		assert.True(t, r.Match.AnyCOSHHSheet, id)
	}
}

func TestValidate(t *testing.T) {
	valid := entry("x", "X", CategoryCleaning, true, EvidenceCompletion, "Daily", MatchSpec{TagEquals: "cleaning"})

	tests := []struct {
		name    string
		reqs    []Requirement
		wantErr string
	}{
		{"valid table", []Requirement{valid}, ""},
		{"duplicate id", []Requirement{valid, valid}, "duplicate id"},
		{"missing id", []Requirement{document("", "No ID", CategoryLegal, true, "")}, "id is required"},
		{"unknown category", []Requirement{document("a", "A", Category("parking"), true, "")}, "unknown category"},
		{"unknown evidence type", []Requirement{entry("a", "A", CategoryLegal, true, EvidenceType("photo"), "", MatchSpec{})}, "invalid evidence type"},
		{"record without rule", []Requirement{entry("a", "A", CategoryLegal, true, EvidenceRecord, "", MatchSpec{})}, "needs a record rule"},
		{"unknown record rule", []Requirement{entry("a", "A", CategoryLegal, true, EvidenceRecord, "", MatchSpec{Record: "boilers"})}, "unknown record rule"},
		{"training without keywords", []Requirement{entry("a", "A", CategoryTraining, true, EvidenceTraining, "", MatchSpec{TagEquals: "x"})}, "needs keywords"},
		{"template without selector", []Requirement{entry("a", "A", CategoryCleaning, true, EvidenceTemplate, "", MatchSpec{})}, "needs keywords or a tag"},
		{"blank keyword", []Requirement{entry("a", "A", CategoryCleaning, true, EvidenceTemplate, "", MatchSpec{Keywords: []string{" "}})}, "blank keyword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.reqs)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseEvidenceType(t *testing.T) {
	got, err := ParseEvidenceType("  Document ")
	require.NoError(t, err)
	assert.Equal(t, EvidenceDocument, got)

	_, err = ParseEvidenceType("photo")
	assert.Error(t, err)
}
