package common

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Datatype classifies the stored value of a statement. Values are kept as
// text in the store; the datatype drives comparison casting and tells
// identifier-typed statements apart from literals.
type Datatype string

const (
	DatatypeString   Datatype = "STRING"
	DatatypeNumber   Datatype = "NUMBER"
	DatatypeDate     Datatype = "DATE"
	DatatypeDateTime Datatype = "DATETIME"
	DatatypeBoolean  Datatype = "BOOLEAN"
	// DatatypeID marks identifier statements. A subject may carry several
	// of them (aliases); any of them addresses the subject.
	DatatypeID Datatype = "ID"
	// DatatypeResource marks relation statements whose value is another
	// subject's identifier.
	DatatypeResource Datatype = "RESOURCE"
)

// Statement is one (subject, property, value, datatype, language) tuple in
// the metadata store. Subjects are reassembled from their statements; there
// is no record structure other than this.
type Statement struct {
	Subject  string   `json:"subject"`
	Property string   `json:"property"`
	Value    string   `json:"value"`
	Datatype Datatype `json:"datatype"`
	Lang     string   `json:"lang,omitempty"`
}

// NewSubjectID generates a new public subject identifier.
func NewSubjectID() (string, error) {
	return gonanoid.New()
}
