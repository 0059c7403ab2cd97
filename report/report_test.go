// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-tally/runoff"
)

func TestRender(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie"}
	e, err := runoff.NewElection(runoff.DefaultConfig(), names)
	if err != nil {
		t.Fatalf("NewElection failed: %v", err)
	}
	for _, ranks := range [][]string{
		{"Alice", "Bob", "Charlie"},
		{"Alice", "Bob", "Charlie"},
		{"Bob", "Charlie", "Alice"},
		{"Bob", "Charlie", "Alice"},
		{"Charlie", "Bob", "Alice"},
	} {
		if err := e.Cast(ranks); err != nil {
			t.Fatalf("Cast failed: %v", err)
		}
	}
	out := e.Run()

	var buf bytes.Buffer
	if err := Render(&buf, names, out); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	rendered := buf.String()

	for _, want := range []string{"Candidate", "1st", "2nd", "Alice", "Bob", "Charlie", "decided after 2 rounds: Bob"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, rendered)
		}
	}
}

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"Bob", 5, "Bob  "},
		{"Charlie", 3, "Charlie"},
		{"李雷", 6, "李雷  "},
	}

	for _, tt := range tests {
		if got := padToWidth(tt.input, tt.width); got != tt.expected {
			t.Errorf("padToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestPluralRounds(t *testing.T) {
	if got := pluralRounds(1); got != "1 round" {
		t.Errorf("pluralRounds(1) = %q", got)
	}
	if got := pluralRounds(3); got != "3 rounds" {
		t.Errorf("pluralRounds(3) = %q", got)
	}
}
