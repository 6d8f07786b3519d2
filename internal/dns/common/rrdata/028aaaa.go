package rrdata

import (
	"fmt"
	"net"
)

// encodeAAAAData encodes an AAAA record string into its binary representation.
func encodeAAAAData(data string) ([]byte, error) {
	// data = "2001:db8::ff00:42:8329"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv6(ip) {
		return nil, fmt.Errorf("invalid AAAA record IP: %s", data)
	}
	return ip.To16(), nil
}

// decodeAAAAData decodes an AAAA record's RDATA, which must be exactly 16
// bytes holding a genuine IPv6 address (IPv4-mapped payloads are rejected).
func decodeAAAAData(b []byte) (string, error) {
	if len(b) != net.IPv6len {
		return "", fmt.Errorf("%w: AAAA record must be 16 bytes, got %d", ErrInvalidRecordData, len(b))
	}
	ip := net.IP(b)
	if !isIPv6(ip) {
		return "", fmt.Errorf("%w: AAAA record does not contain an IPv6 address", ErrInvalidRecordData)
	}
	return ip.String(), nil
}
