package util

import "testing"

func TestGetEnvString(t *testing.T) {
	t.Setenv("STELE_TEST_STRING", "value")
	if got := GetEnvString("STELE_TEST_STRING", "fallback"); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := GetEnvString("STELE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestGetEnvNumeric(t *testing.T) {
	t.Setenv("STELE_TEST_NUM", "12.5")
	if got := GetEnvNumeric("STELE_TEST_NUM", 3); got != 12.5 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("STELE_TEST_NUM", "not a number")
	if got := GetEnvNumeric("STELE_TEST_NUM", 3); got != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("STELE_TEST_BOOL", "true")
	if !GetEnvBool("STELE_TEST_BOOL", false) {
		t.Fatal("expected true")
	}
	t.Setenv("STELE_TEST_BOOL", "yes")
	if GetEnvBool("STELE_TEST_BOOL", false) {
		t.Fatal("expected fallback false")
	}
}
