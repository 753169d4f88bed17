package common

import (
	"strconv"
	"time"
)

// DateLayout is the stored form of DATE values; DATETIME values are
// stored as RFC 3339.
const DateLayout = "2006-01-02"

// InferDatatype guesses the comparison datatype of an untyped term value.
// Relational comparisons on untyped terms use it to pick the cast that a
// typed statement of the same shape would get.
func InferDatatype(value string) Datatype {
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return DatatypeNumber
	}
	if _, err := time.Parse(DateLayout, value); err == nil {
		return DatatypeDate
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return DatatypeDateTime
	}
	return DatatypeString
}
