package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Semver
	}{
		{"1.2.3", Semver{Major: 1, Minor: 2, Patch: 3}},
		{"0.1.0", Semver{Minor: 1}},
		{"2.0.0-beta.4", Semver{Major: 2, Beta: true, Prerelease: 4}},
		{"2.0.0-alpha.1", Semver{Major: 2, Alpha: true, Prerelease: 1}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.expected)
		}
		if got.String() != tt.input {
			t.Errorf("Parse(%q).String() = %q", tt.input, got.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "1", "1.2", "1.2.3.4", "a.b.c", "1.2.-3", "1.0.0-rc.1", "1.0.0-beta", "1.0.0-beta.x"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		expected   bool
	}{
		{"1.2.3", "1.2.3", true},
		{"1.2.3", "1.2.4", false},
		{"1.2.3", "^1.1.5", true},
		{"1.2.3", "^1.3.0", false},
		{"2.0.0", "^1.0.0", false},
		{"1.2.3", "~1.2.0", true},
		{"1.3.0", "~1.2.0", false},
		{"1.2.0", "~1.2.1", false},
		{"1.0.0", ">0.9.9", true},
		{"1.0.0", ">1.0.0", false},
		{"1.0.0", ">=1.0.0", true},
		{"1.0.0", "<1.0.1", true},
		{"1.0.0", "<=0.9.0", false},
		{"1.0.0-beta.1", "<1.0.0", true},
		{"1.0.0-alpha.2", "<1.0.0-beta.1", true},
	}

	for _, tt := range tests {
		s, err := Parse(tt.version)
		if err != nil {
			t.Fatal(err)
		}
		got, err := s.Satisfies(tt.constraint)
		if err != nil {
			t.Errorf("%s.Satisfies(%q): %v", tt.version, tt.constraint, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s.Satisfies(%q) = %v, want %v", tt.version, tt.constraint, got, tt.expected)
		}
	}

	s, _ := Parse("1.0.0")
	if _, err := s.Satisfies("^x"); err == nil {
		t.Error("expected an error for a malformed constraint")
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Demo\n\ny\n"), &out)

	if got := p.PromptString("Project name", "NewProject"); got != "Demo" {
		t.Errorf("PromptString = %q, want Demo", got)
	}
	if got := p.PromptString("Version", "0.1.0"); got != "0.1.0" {
		t.Errorf("empty answer = %q, want the default", got)
	}
	if !p.PromptYN("Continue?", false) {
		t.Error("PromptYN should accept y")
	}
	// input is exhausted from here on
	if !p.PromptYN("Again?", true) {
		t.Error("closed input should take the default")
	}

	if !strings.Contains(out.String(), "Project name (NewProject): ") || !strings.Contains(out.String(), "Continue? (y/N): ") {
		t.Errorf("unexpected prompts: %q", out.String())
	}
}
