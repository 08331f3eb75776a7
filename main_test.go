package main

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("DELIFOOD_TEST_KEY", "set")

	if got := getEnv("DELIFOOD_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("expected env value, got %q", got)
	}
	if got := getEnv("DELIFOOD_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
