package textnorm

import (
	"testing"
)

func TestNFKDDecompose(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"é", "é"},
		{"ä", "ä"},
		{"ﬁ", "fi"},
		{"№", "No"},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		result := NFKDDecompose(tt.input)
		if result != tt.expected {
			t.Errorf("NFKDDecompose(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestRemoveCombiningMarks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"é", "e"},
		{"ä", "a"},
		{"über", "uber"},
		{"normal", "normal"},
	}

	for _, tt := range tests {
		result := RemoveCombiningMarks(tt.input)
		if result != tt.expected {
			t.Errorf("RemoveCombiningMarks(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"jean-michel", "jean michel"},
		{"(detailed)", " detailed "},
		{"don't", "don t"},
		{"a...b", "a b"},
		{"plain text 42", "plain text 42"},
		{"!!!", " "},
	}

	for _, tt := range tests {
		result := StripPunctuation(tt.input)
		if result != tt.expected {
			t.Errorf("StripPunctuation(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  a   b  ", "a b"},
		{"a\tb\nc", "a b c"},
		{"single", "single"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := CollapseWhitespace(tt.input)
		if result != tt.expected {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestFoldCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HELLO", "hello"},
		{"MiXeD", "mixed"},
		{"Straße", "strasse"},
		{"already lower", "already lower"},
	}

	for _, tt := range tests {
		result := FoldCase(tt.input)
		if result != tt.expected {
			t.Errorf("FoldCase(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := New()

	tests := []struct {
		input    string
		expected string
	}{
		{"Café", "cafe"},
		{"CAFE", "cafe"},
		{"Jean-Michel Basquiat", "jean michel basquiat"},
		{"  multiple   spaces  ", "multiple spaces"},
		{"ﬁne art", "fine art"},
		{"Ai Weiwei", "ai weiwei"},
		{"style of X, and Y!", "style of x and y"},
		// ß survives NFKD and is not an ASCII letter, so it becomes a space.
		{"groß", "gro"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		result := n.Normalize(tt.input)
		if result != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNoCache()

	inputs := []string{
		"Café au Lait",
		"Jean-Michel Basquiat",
		"  spaced   out  ",
		"ﬂoral pattern",
		"plain",
		"",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestNormalizeCaseAndDiacriticInsensitive(t *testing.T) {
	n := New()

	pairs := []struct {
		a string
		b string
	}{
		{"Café", "CAFE"},
		{"Über", "uber"},
		{"NAÏVE", "naive"},
		{"Señor", "senor"},
	}

	for _, p := range pairs {
		na := n.Normalize(p.a)
		nb := n.Normalize(p.b)
		if na != nb {
			t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q, want equal", p.a, na, p.b, nb)
		}
	}
}

func TestNewWithSteps(t *testing.T) {
	// Custom pipeline: case folding only, no decomposition.
	n := NewWithSteps(FoldCase)

	result := n.Normalize("Café")
	expected := "café"
	if result != expected {
		t.Errorf("Custom Normalize(%q) = %q, want %q", "Café", result, expected)
	}
}

func TestNormalizer_Cache(t *testing.T) {
	n := New()

	if !n.CacheEnabled() {
		t.Fatal("expected cache to be enabled")
	}
	if n.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0 before first use", n.CacheLen())
	}

	first := n.Normalize("Café Terrace")
	if n.CacheLen() != 1 {
		t.Errorf("CacheLen() = %d, want 1 after one input", n.CacheLen())
	}

	second := n.Normalize("Café Terrace")
	if first != second {
		t.Errorf("cached result %q differs from first result %q", second, first)
	}
	if n.CacheLen() != 1 {
		t.Errorf("CacheLen() = %d, want 1 after repeated input", n.CacheLen())
	}

	n.ClearCache()
	if n.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0 after ClearCache", n.CacheLen())
	}
}

func TestNormalizer_NoCache(t *testing.T) {
	n := NewNoCache()

	if n.CacheEnabled() {
		t.Fatal("expected cache to be disabled")
	}

	result := n.Normalize("Café")
	if result != "cafe" {
		t.Errorf("Normalize(%q) = %q, want %q", "Café", result, "cafe")
	}
	if n.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0 with cache disabled", n.CacheLen())
	}

	// ClearCache on a cacheless normalizer must not panic.
	n.ClearCache()
}
