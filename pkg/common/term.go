package common

// Operator selects how a search term compares statement values.
type Operator string

const (
	OpEqual          Operator = "="
	OpLessOrEqual    Operator = "<="
	OpGreaterOrEqual Operator = ">="
	OpFullText       Operator = "fulltext-match"
)

// SearchTerm is one constraint of a search request. Multiple properties in
// one term are a disjunction: the term matches when any property holds a
// matching statement. Terms of a request combine as a conjunction.
//
// Negate flips the join direction for relation-valued terms: instead of
// subjects holding Value under one of the properties, the term matches
// subjects that Value points at through one of the properties.
//
// A declared Datatype restricts the comparison to statements stored with
// that datatype. A statement stored with a different datatype never raises
// an error and never excludes the subject; the comparison degrades to a
// no-op for that statement.
type SearchTerm struct {
	Properties []string `json:"properties"`
	Value      string   `json:"value"`
	Operator   Operator `json:"operator"`
	Negate     bool     `json:"negate,omitempty"`
	Datatype   Datatype `json:"datatype,omitempty"`
}

// NewSearchTerm constructs an equality term for the given properties.
func NewSearchTerm(value string, properties ...string) (SearchTerm, error) {
	t := SearchTerm{
		Properties: properties,
		Value:      value,
		Operator:   OpEqual,
	}
	if err := t.Validate(); err != nil {
		return SearchTerm{}, err
	}
	return t, nil
}

// Validate checks the caller contract of a term. An empty property list is
// rejected here so it never reaches the store.
func (t SearchTerm) Validate() error {
	if len(t.Properties) == 0 {
		return ErrNoProperties
	}
	return nil
}

// ValidateTerms validates every term of a request.
func ValidateTerms(terms []SearchTerm) error {
	for _, t := range terms {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
