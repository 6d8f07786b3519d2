package rrdata

import (
	"errors"
	"testing"
)

func TestEncodeAData_ValidIPv4(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
	}{
		{"192.168.0.1", []byte{192, 168, 0, 1}},
		{"8.8.8.8", []byte{8, 8, 8, 8}},
		{"127.0.0.1", []byte{127, 0, 0, 1}},
	}

	for _, tt := range tests {
		got, err := encodeAData(tt.input)
		if err != nil {
			t.Errorf("encodeAData(%q) returned error: %v", tt.input, err)
		}
		if !equalBytes(got, tt.expected) {
			t.Errorf("encodeAData(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestEncodeAData_InvalidIPv4(t *testing.T) {
	invalidInputs := []string{
		"not.an.ip",
		"256.256.256.256",
		"::1",
		"",
	}

	for _, input := range invalidInputs {
		got, err := encodeAData(input)
		if err == nil {
			t.Errorf("encodeAData(%q) expected error, got nil", input)
		}
		if got != nil {
			t.Errorf("encodeAData(%q) expected nil, got %v", input, got)
		}
	}
}

func TestDecodeAData_Valid(t *testing.T) {
	tests := []struct {
		input    []byte
		expected string
	}{
		{[]byte{192, 168, 0, 1}, "192.168.0.1"},
		{[]byte{8, 8, 8, 8}, "8.8.8.8"},
		{[]byte{93, 184, 216, 34}, "93.184.216.34"},
	}

	for _, tt := range tests {
		got, err := decodeAData(tt.input)
		if err != nil {
			t.Errorf("decodeAData(%v) returned error: %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("decodeAData(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDecodeAData_InvalidLength(t *testing.T) {
	invalidInputs := [][]byte{
		{},
		{192, 168},
		{192, 168, 0},
		{192, 168, 0, 1, 5},
		make([]byte, 16),
	}

	for _, input := range invalidInputs {
		_, err := decodeAData(input)
		if err == nil {
			t.Errorf("decodeAData(%v) expected error for invalid length, got nil", input)
		}
		if !errors.Is(err, ErrInvalidRecordData) {
			t.Errorf("decodeAData(%v) error = %v, want ErrInvalidRecordData", input, err)
		}
	}
}
