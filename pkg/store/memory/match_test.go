package memory

import (
	"reflect"
	"testing"

	"github.com/stelehq/stele/pkg/common"
)

func TestCompareStatement_DeclaredDatatype(t *testing.T) {
	typed := common.Statement{Subject: "s", Property: "p", Value: "20", Datatype: common.DatatypeNumber}
	untyped := common.Statement{Subject: "s", Property: "p", Value: "20", Datatype: common.DatatypeString}

	term := common.SearchTerm{
		Properties: []string{"p"},
		Value:      "30",
		Operator:   common.OpLessOrEqual,
		Datatype:   common.DatatypeNumber,
	}

	if !compareStatement(typed, term) {
		t.Fatal("20 <= 30 should match")
	}
	// Mismatched datatype degrades to a no-op, never an exclusion.
	if !compareStatement(untyped, term) {
		t.Fatal("mismatched datatype should pass")
	}

	term.Value = "10"
	if compareStatement(typed, term) {
		t.Fatal("20 <= 10 should not match")
	}
}

func TestCompareStatement_InferredDates(t *testing.T) {
	date := common.Statement{Value: "2024-05-01", Datatype: common.DatatypeDate}

	term := common.SearchTerm{
		Properties: []string{"p"},
		Value:      "2024-06-01",
		Operator:   common.OpLessOrEqual,
	}
	if !compareStatement(date, term) {
		t.Fatal("2024-05-01 <= 2024-06-01 should match")
	}

	term.Operator = common.OpGreaterOrEqual
	if compareStatement(date, term) {
		t.Fatal("2024-05-01 >= 2024-06-01 should not match")
	}
}

func TestCompareStatement_NumericNotLexicographic(t *testing.T) {
	nine := common.Statement{Value: "9", Datatype: common.DatatypeNumber}

	term := common.SearchTerm{
		Properties: []string{"p"},
		Value:      "10",
		Operator:   common.OpLessOrEqual,
	}
	// Lexicographically "9" > "10"; numerically 9 <= 10.
	if !compareStatement(nine, term) {
		t.Fatal("9 <= 10 should match numerically")
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("The QUICK-brown fox, 2nd run!")
	want := []string{"the", "quick", "brown", "fox", "2nd", "run"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
}

func TestContainsAllWords(t *testing.T) {
	words := tokenize("the quick brown fox")
	if !containsAllWords(words, []string{"fox", "quick"}) {
		t.Fatal("expected match")
	}
	if containsAllWords(words, []string{"fox", "dog"}) {
		t.Fatal("unexpected match")
	}
	if containsAllWords(words, nil) {
		t.Fatal("empty query should not match")
	}
}
