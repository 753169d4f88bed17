package common

import (
	"errors"
	"testing"
)

func TestParseMode_Aliases(t *testing.T) {
	cases := map[string]Mode{
		"":            {Self: true},
		"self":        {Self: true},
		"ancestors":   {Self: true, Ancestors: UnboundedDepth},
		"descendants": {Self: true, Descendants: UnboundedDepth},
		"relatives":   {Relatives: UnboundedDepth},
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseMode_Descriptor(t *testing.T) {
	got, err := ParseMode("1_2_0_-1")
	if err != nil {
		t.Fatalf("ParseMode failed: %v", err)
	}
	want := Mode{Self: true, Ancestors: 2, Relatives: UnboundedDepth}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.String() != "1_2_0_-1" {
		t.Fatalf("round trip gave %q", got.String())
	}
}

func TestParseMode_Invalid(t *testing.T) {
	for _, in := range []string{"everything", "1_0_0", "1_0_0_0_0", "2_0_0_0", "1_-2_0_0", "1_a_0_0"} {
		if _, err := ParseMode(in); !errors.Is(err, ErrBadMode) {
			t.Fatalf("ParseMode(%q) err = %v, want ErrBadMode", in, err)
		}
	}
}

func TestMode_DescendantDepth(t *testing.T) {
	if d := (Mode{Descendants: 3}).DescendantDepth(); d != 3 {
		t.Fatalf("got %d, want 3", d)
	}
	if d := (Mode{Descendants: 3, Relatives: UnboundedDepth}).DescendantDepth(); d != UnboundedDepth {
		t.Fatalf("got %d, want unbounded", d)
	}
}
