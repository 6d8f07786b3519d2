package utils

import (
	"strings"
	"testing"
)

func TestCanonicalDNSName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Case folding.
		{"example.com", "example.com"},
		{"EXAMPLE.COM", "example.com"},
		{"ExAmPlE.CoM", "example.com"},
		{"API.Service.EXAMPLE.com", "api.service.example.com"},

		// Trailing dots carry no information once off the wire.
		{"example.com.", "example.com"},
		{"www.example.com.", "www.example.com"},
		{"example.com...", "example.com"},

		// Surrounding whitespace.
		{"  example.com", "example.com"},
		{"example.com  ", "example.com"},
		{"\t example.com \t", "example.com"},
		{"  WwW.ExAmPlE.CoM.  ", "www.example.com"},

		// Root and degenerate input.
		{".", ""},
		{" . ", ""},
		{"", ""},
		{"   ", ""},
		{" \n \t ", ""},

		// Valid name characters pass through untouched.
		{"localhost", "localhost"},
		{"test123.example.com", "test123.example.com"},
		{"sub-domain.example-site.com", "sub-domain.example-site.com"},
		{"_sip._tcp.example.com", "_sip._tcp.example.com"},
		{"xn--nxasmq6b.xn--j6w193g", "xn--nxasmq6b.xn--j6w193g"},
	}

	for _, tt := range tests {
		if got := CanonicalDNSName(tt.in); got != tt.want {
			t.Errorf("CanonicalDNSName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Canonical names feed cache keys and question comparison, so the output must
// be a fixed point: already-canonical input comes back unchanged.
func TestCanonicalDNSName_Idempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"EXAMPLE.COM.",
		"  www.example.com  ",
		".",
		"",
	}
	for _, input := range inputs {
		once := CanonicalDNSName(input)
		twice := CanonicalDNSName(once)
		if once != twice {
			t.Errorf("CanonicalDNSName(%q) = %q, but reapplying produced %q", input, once, twice)
		}
	}
}

func TestCanonicalDNSName_OutputShape(t *testing.T) {
	inputs := []string{
		"EXAMPLE.COM",
		"WwW.ExAmPlE.CoM...",
		"\t LOCALHOST. \n",
		"API.SERVICE.EXAMPLE.COM",
	}
	for _, input := range inputs {
		got := CanonicalDNSName(input)
		if got != strings.ToLower(got) {
			t.Errorf("CanonicalDNSName(%q) = %q, contains upper case", input, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("CanonicalDNSName(%q) = %q, contains surrounding whitespace", input, got)
		}
		if strings.HasSuffix(got, ".") {
			t.Errorf("CanonicalDNSName(%q) = %q, ends with a dot", input, got)
		}
	}
}
