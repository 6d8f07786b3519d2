package domain

import (
	"testing"
)

func TestRCode_IsValid(t *testing.T) {
	// Codes 0 through 10 carry assigned names.
	for code := RCode(0); code <= 10; code++ {
		if !code.IsValid() {
			t.Errorf("IsValid(%d) = false, want true", code)
		}
	}
	for _, code := range []RCode{11, 15, 16, 255} {
		if code.IsValid() {
			t.Errorf("IsValid(%d) = true, want false", code)
		}
	}
}

func TestRCode_String(t *testing.T) {
	cases := []struct {
		code RCode
		want string
	}{
		{RCodeNoError, "NOERROR"}, {RCodeFormErr, "FORMERR"}, {RCodeServFail, "SERVFAIL"},
		{RCodeNXDomain, "NXDOMAIN"}, {RCodeNotImp, "NOTIMP"}, {RCodeRefused, "REFUSED"},
		{6, "YXDOMAIN"}, {7, "YXRRSET"}, {8, "NXRRSET"}, {9, "NOTAUTH"}, {10, "NOTZONE"},
		{11, "UNKNOWN(11)"}, {255, "UNKNOWN(255)"},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestParseRCode(t *testing.T) {
	cases := []struct {
		input string
		want  RCode
	}{
		{"NOERROR", RCodeNoError}, {"SERVFAIL", RCodeServFail}, {"NXDOMAIN", RCodeNXDomain},
		{"REFUSED", RCodeRefused}, {"NOTZONE", 10},
		{"noerror", 0}, {"", 0}, {"bogus", 0},
	}
	for _, tc := range cases {
		if got := ParseRCode(tc.input); got != tc.want {
			t.Errorf("ParseRCode(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestRCode_RoundTripThroughName(t *testing.T) {
	for code := range rcodeNames {
		if got := ParseRCode(code.String()); got != code {
			t.Errorf("ParseRCode(%q) = %v, want %v", code.String(), got, code)
		}
	}
}
