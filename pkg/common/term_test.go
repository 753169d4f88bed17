package common

import (
	"errors"
	"testing"
)

func TestNewSearchTerm(t *testing.T) {
	term, err := NewSearchTerm("archive-7", "system.record.id")
	if err != nil {
		t.Fatalf("NewSearchTerm failed: %v", err)
	}
	if term.Operator != OpEqual {
		t.Fatalf("operator = %q, want %q", term.Operator, OpEqual)
	}
	if term.Value != "archive-7" {
		t.Fatalf("value = %q", term.Value)
	}
}

func TestSearchTerm_ValidateEmptyProperties(t *testing.T) {
	if _, err := NewSearchTerm("x"); !errors.Is(err, ErrNoProperties) {
		t.Fatalf("err = %v, want ErrNoProperties", err)
	}

	terms := []SearchTerm{
		{Properties: []string{"a"}, Value: "1", Operator: OpEqual},
		{Value: "2", Operator: OpEqual},
	}
	if err := ValidateTerms(terms); !errors.Is(err, ErrNoProperties) {
		t.Fatalf("ValidateTerms err = %v, want ErrNoProperties", err)
	}
}

func TestInferDatatype(t *testing.T) {
	cases := map[string]Datatype{
		"42":                   DatatypeNumber,
		"-3.5":                 DatatypeNumber,
		"2024-05-01":           DatatypeDate,
		"2024-05-01T10:00:00Z": DatatypeDateTime,
		"hello":                DatatypeString,
	}
	for in, want := range cases {
		if got := InferDatatype(in); got != want {
			t.Fatalf("InferDatatype(%q) = %q, want %q", in, got, want)
		}
	}
}
