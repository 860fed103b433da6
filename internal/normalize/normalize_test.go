package normalize

import "testing"

func TestWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Test   Setup", "Test Setup"},
		{"a\t\tb", "a b"},
		{"  x  ", " x "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Whitespace(tt.in); got != tt.want {
			t.Fatalf("Whitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"test cases", "Test Cases"},
		{"  SUITE    setup ", "Suite Setup"},
		{"documentation", "Documentation"},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.want {
			t.Fatalf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSettingName(t *testing.T) {
	if got := SettingName("Task  timeout"); got != "TASK TIMEOUT" {
		t.Fatalf("got %q", got)
	}
	if got := SettingName("straße"); got != "STRASSE" {
		t.Fatalf("full case mapping expected, got %q", got)
	}
}
