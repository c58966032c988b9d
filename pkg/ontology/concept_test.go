package ontology_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ontology/pkg/ontology"
)

func TestConceptTextForEmbedding(t *testing.T) {
	t.Parallel()

	c := ontology.Concept{
		ID:          "RID1302",
		Description: "lung",
		Region:      "Thorax",
		Synonyms:    []string{"pulmo", "lungs"},
		Definition:  "Organ of respiration",
		ContainedBy: &ontology.Reference{ID: "RID1243", Display: "thoracic cavity"},
		PartOf:      &ontology.Reference{ID: "RID1301"},
		Codes: []ontology.Code{
			{System: "SNOMED", Code: "39607008", Display: "Lung structure"},
			{System: "FMA", Code: "7195"},
		},
	}

	want := strings.Join([]string{
		"lung",
		"Region: Thorax",
		"Synonyms: pulmo; lungs",
		"Definition: Organ of respiration",
		"Contained by: thoracic cavity",
		"Part of: RID1301",
		"SNOMED: Lung structure (39607008)",
	}, "\n")

	assert.Equal(t, want, c.TextForEmbedding())
	assert.Equal(t, "lung", c.Name())
}

func TestConceptTextForEmbeddingMinimal(t *testing.T) {
	t.Parallel()

	c := ontology.Concept{ID: "RID56", Description: "heart"}
	assert.Equal(t, "heart", c.TextForEmbedding())
}

func TestConceptTextForEmbeddingNormalizesUnicode(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent composes to a single rune.
	c := ontology.Concept{ID: "RID1", Description: "ple\u0301vre"}
	assert.Equal(t, "pl\u00e9vre", c.TextForEmbedding())
}

func TestTextForEmbeddingFlattensNewlines(t *testing.T) {
	t.Parallel()

	concepts := []ontology.Concept{brain, heart, lung, {ID: "RID2", Description: "a\n\nb"}}
	for _, c := range concepts {
		t.Run(c.ID, func(t *testing.T) {
			t.Parallel()

			first := ontology.TextForEmbedding(c)
			second := ontology.TextForEmbedding(c)

			assert.Equal(t, first, second)
			assert.NotContains(t, first, "\n")
			assert.Equal(t, strings.ReplaceAll(c.TextForEmbedding(), "\n", " "), first)
		})
	}
}
