package utils

import "testing"

func TestGetApexDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Hosts under a registrable domain collapse to eTLD+1.
		{"example.com", "example.com"},
		{"ns1.example.com", "example.com"},
		{"a.b.c.d.example.com", "example.com"},

		// Multi-label public suffixes.
		{"example.co.uk", "example.co.uk"},
		{"mail.example.co.uk", "example.co.uk"},
		{"foo.domains.google", "domains.google"},

		// Suffixes from the private section of the list.
		{"user.github.io", "user.github.io"},
		{"blog.user.github.io", "user.github.io"},

		// Input is canonicalized before the suffix lookup.
		{"EXAMPLE.COM", "example.com"},
		{"WWW.Example.Com.", "example.com"},
		{"example.com...", "example.com"},

		// IP literals are not meaningful names but still split deterministically.
		{"10.0.0.1", "0.1"},

		// Names with no registrable apex fall back to the canonical input.
		{"localhost", "localhost"},
		{"com", "com"},
		{"", ""},
		{".", ""},
		{"bad..name", "bad..name"},
	}

	for _, tt := range tests {
		if got := GetApexDomain(tt.in); got != tt.want {
			t.Errorf("GetApexDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetApexDomain_SpellingsAgree(t *testing.T) {
	// Cache keys group records by apex, so every spelling of a host must map
	// to the same one.
	spellings := []string{
		"www.example.org",
		"WWW.EXAMPLE.ORG",
		"www.example.org.",
		"  www.example.org  ",
	}
	for _, s := range spellings {
		if got := GetApexDomain(s); got != "example.org" {
			t.Errorf("GetApexDomain(%q) = %q, want %q", s, got, "example.org")
		}
	}
}
