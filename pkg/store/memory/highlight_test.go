package memory

import (
	"testing"

	"github.com/stelehq/stele/pkg/common"
)

func highlightSpec() common.HighlightSpec {
	spec := common.DefaultHighlightSpec(1, "storm", []string{"description"})
	spec.StartSel = "<b>"
	spec.StopSel = "</b>"
	spec.MinWords = 1
	return spec
}

func TestRenderFragment_SingleWindow(t *testing.T) {
	spec := highlightSpec()
	spec.MinWords = 4

	got := renderFragment("heavy storm hit the coast at night", []string{"storm"}, spec)
	if got != "<b>storm</b> hit the coast" {
		t.Fatalf("fragment = %q", got)
	}
}

func TestRenderFragment_MinWordsWidensWindow(t *testing.T) {
	spec := highlightSpec()
	spec.MinWords = 3

	got := renderFragment("a storm", []string{"storm"}, spec)
	if got != "a <b>storm</b>" {
		t.Fatalf("fragment = %q", got)
	}
}

func TestRenderFragment_MultipleFragments(t *testing.T) {
	spec := highlightSpec()
	spec.MaxWords = 2
	spec.MaxFragments = 2
	spec.FragmentDelimiter = " ... "

	got := renderFragment("storm at sea and storm on land and storm again", []string{"storm"}, spec)
	if got != "<b>storm</b> at ... <b>storm</b> on" {
		t.Fatalf("fragment = %q", got)
	}
}

func TestHighlight_PicksHighestScoringValue(t *testing.T) {
	s := NewMetadataMemStore(nil)
	s.Add(common.Statement{Subject: "d", Property: "description", Value: "storm warning", Datatype: common.DatatypeString})
	s.Add(common.Statement{Subject: "d", Property: "notes", Value: "storm after storm", Datatype: common.DatatypeString})

	spec := common.DefaultHighlightSpec(1, "storm", []string{"description", "notes"})
	hit := s.highlight("d", spec)
	if !hit.Valid {
		t.Fatal("expected a highlight hit")
	}
	if hit.Property != "notes" {
		t.Fatalf("property = %q, want notes", hit.Property)
	}
}

func TestHighlight_NoMatchIsInvalid(t *testing.T) {
	s := NewMetadataMemStore(nil)
	s.Add(common.Statement{Subject: "d", Property: "description", Value: "calm seas", Datatype: common.DatatypeString})

	hit := s.highlight("d", common.DefaultHighlightSpec(1, "storm", []string{"description"}))
	if hit.Valid {
		t.Fatalf("expected no hit, got %+v", hit)
	}
}
