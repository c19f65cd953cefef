package engine

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims edges", "  hello world  ", "hello world"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"already clean", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanTextStrict(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"drops symbols", "Senior Engineer | ACME™", "Senior Engineer ACME"},
		{"keeps email chars", "jane.doe@example.com", "jane.doe@example.com"},
		{"keeps unicode letters", "Čeština résumé", "Čeština résumé"},
		{"keeps hyphen", "state-of-the-art", "state-of-the-art"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTextStrict(tt.in); got != tt.want {
				t.Errorf("CleanTextStrict(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("short input changed: %q", got)
	}
	long := Truncate("hello world, this is a long sentence", 10)
	if len(long) > 10 {
		t.Errorf("Truncate exceeded limit: %d chars", len(long))
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Errorf("non-positive limit should be a no-op, got %q", got)
	}
}
