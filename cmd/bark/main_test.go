package main

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatCLIErrorCredentialHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "missing email", err: errors.New("missing email; run `bark config --email <you@example.com>`")},
		{name: "missing api key", err: errors.New("missing api key; run `bark config --api-key <your-api-key>`")},
		{name: "missing mission id", err: errors.New("missing mission id; run `bark config --mission-id <mission-id>`")},
	}

	for _, tt := range tests {
		got := formatCLIError(tt.err)
		for _, want := range []string{"bark config --email", "bark config --api-key", "bark config --mission-id"} {
			if !strings.Contains(got, want) {
				t.Fatalf("%s: hint %q missing %q", tt.name, got, want)
			}
		}
	}
}

func TestFormatCLIErrorPassesThroughOtherErrors(t *testing.T) {
	got := formatCLIError(errors.New("request failed (502)"))
	if got != "request failed (502)" {
		t.Fatalf("formatCLIError = %q", got)
	}
}

func TestValueOrUnset(t *testing.T) {
	if got := valueOrUnset("  "); got != "(not set)" {
		t.Fatalf("valueOrUnset blank = %q", got)
	}
	if got := valueOrUnset("ops@example.com"); got != "ops@example.com" {
		t.Fatalf("valueOrUnset = %q", got)
	}
}
