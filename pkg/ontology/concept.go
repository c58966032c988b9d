package ontology

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Concept is one anatomic location entry of the ontology, decoded from a stored document.
// Values are only produced by the repository and are never written back by it.
type Concept struct {
	ID          string     `bson:"_id" json:"id"`
	Description string     `bson:"description" json:"description"`
	Region      string     `bson:"region,omitempty" json:"region,omitempty"`
	Definition  string     `bson:"definition,omitempty" json:"definition,omitempty"`
	Synonyms    []string   `bson:"synonyms,omitempty" json:"synonyms,omitempty"`
	Laterality  string     `bson:"laterality,omitempty" json:"laterality,omitempty"`
	SexSpecific string     `bson:"sexSpecific,omitempty" json:"sex_specific,omitempty"`
	Codes       []Code     `bson:"codes,omitempty" json:"codes,omitempty"`
	ContainedBy *Reference `bson:"containedByRef,omitempty" json:"contained_by,omitempty"`
	PartOf      *Reference `bson:"partOfRef,omitempty" json:"part_of,omitempty"`
}

// Code is an external terminology code attached to a concept, e.g. SNOMED CT.
type Code struct {
	System  string `bson:"system" json:"system"`
	Code    string `bson:"code" json:"code"`
	Display string `bson:"display,omitempty" json:"display,omitempty"`
}

// Reference points at another concept by identifier.
type Reference struct {
	ID      string `bson:"id" json:"id"`
	Display string `bson:"display,omitempty" json:"display,omitempty"`
}

// Name returns the display name of the concept.
func (c Concept) Name() string {
	return c.Description
}

// TextForEmbedding returns the descriptive text of the concept, one field per line,
// in Unicode NFC. Empty fields are skipped. The result depends only on stored fields.
func (c Concept) TextForEmbedding() string {
	lines := make([]string, 0, 8)
	lines = append(lines, c.Description)

	if c.Region != "" {
		lines = append(lines, "Region: "+c.Region)
	}
	if len(c.Synonyms) > 0 {
		lines = append(lines, "Synonyms: "+strings.Join(c.Synonyms, "; "))
	}
	if c.Definition != "" {
		lines = append(lines, "Definition: "+c.Definition)
	}
	if ref := c.ContainedBy.label(); ref != "" {
		lines = append(lines, "Contained by: "+ref)
	}
	if ref := c.PartOf.label(); ref != "" {
		lines = append(lines, "Part of: "+ref)
	}
	if c.Laterality != "" {
		lines = append(lines, "Laterality: "+c.Laterality)
	}
	if c.SexSpecific != "" {
		lines = append(lines, "Sex specific: "+c.SexSpecific)
	}
	for _, code := range c.Codes {
		if code.Display == "" {
			continue
		}
		lines = append(lines, code.System+": "+code.Display+" ("+code.Code+")")
	}

	return norm.NFC.String(strings.Join(lines, "\n"))
}

func (r *Reference) label() string {
	if r == nil {
		return ""
	}
	if r.Display != "" {
		return r.Display
	}
	return r.ID
}
