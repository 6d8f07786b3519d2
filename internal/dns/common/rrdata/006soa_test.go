package rrdata

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestEncodeSOAData_Layout(t *testing.T) {
	got, err := encodeSOAData("ns1.example.org hostmaster.example.org 2025082401 7200 900 1209600 300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mname, then rname, then the five 32-bit fields.
	mname, _ := encodeDomainName("ns1.example.org")
	rname, _ := encodeDomainName("hostmaster.example.org")
	if !equalBytes(got[:len(mname)], mname) {
		t.Errorf("mname bytes = %v, want %v", got[:len(mname)], mname)
	}
	if !equalBytes(got[len(mname):len(mname)+len(rname)], rname) {
		t.Errorf("rname bytes = %v, want %v", got[len(mname):len(mname)+len(rname)], rname)
	}

	nums := got[len(mname)+len(rname):]
	if len(nums) != 20 {
		t.Fatalf("integer section is %d bytes, want 20", len(nums))
	}
	want := []uint32{2025082401, 7200, 900, 1209600, 300}
	for i, v := range want {
		if dec := binary.BigEndian.Uint32(nums[i*4:]); dec != v {
			t.Errorf("integer field %d = %d, want %d", i, dec, v)
		}
	}
}

func TestEncodeSOAData_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "too few fields",
			input:   "ns1.example.org hostmaster.example.org 1 7200 900 1209600",
			wantErr: "expected 7 fields",
		},
		{
			name:    "too many fields",
			input:   "ns1.example.org hostmaster.example.org 1 7200 900 1209600 300 extra",
			wantErr: "expected 7 fields",
		},
		{
			name:    "serial not a number",
			input:   "ns1.example.org hostmaster.example.org x 7200 900 1209600 300",
			wantErr: "invalid SOA field 2",
		},
		{
			name:    "refresh overflows uint32",
			input:   "ns1.example.org hostmaster.example.org 1 4294967296 900 1209600 300",
			wantErr: "invalid SOA field 3",
		},
		{
			name:    "mname label too long",
			input:   strings.Repeat("a", 64) + ".org hostmaster.example.org 1 7200 900 1209600 300",
			wantErr: "invalid SOA mname",
		},
		{
			name:    "rname label too long",
			input:   "ns1.example.org " + strings.Repeat("a", 64) + ".org 1 7200 900 1209600 300",
			wantErr: "invalid SOA rname",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeSOAData(tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("encodeSOAData(%q) error = %v, want substring %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeSOAData_RoundTrip(t *testing.T) {
	data := "ns1.example.org hostmaster.example.org 2025082401 7200 900 1209600 300"
	encoded, err := encodeSOAData(data)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	got, err := decodeSOAData(encoded)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got != data {
		t.Errorf("decodeSOAData() = %q, want %q", got, data)
	}
}

func TestDecodeSOAData_MissingIntegerFields(t *testing.T) {
	mname, _ := encodeDomainName("ns1.example.org")
	rname, _ := encodeDomainName("hostmaster.example.org")
	encoded := append(append([]byte{}, mname...), rname...)
	encoded = append(encoded, 0, 0, 0, 1) // only 4 of the 20 integer bytes

	_, err := decodeSOAData(encoded)
	if !errors.Is(err, ErrInvalidRecordData) {
		t.Errorf("decodeSOAData() error = %v, want ErrInvalidRecordData", err)
	}
}

func TestDecodeSOAData_TruncatedNames(t *testing.T) {
	if _, err := decodeSOAData([]byte{9, 'a', 'b'}); err == nil {
		t.Error("expected error for truncated mname, got nil")
	}
	mname, _ := encodeDomainName("ns1.example.org")
	if _, err := decodeSOAData(append(mname, 9, 'a', 'b')); err == nil {
		t.Error("expected error for truncated rname, got nil")
	}
}
