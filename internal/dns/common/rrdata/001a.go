package rrdata

import (
	"fmt"
	"net"
)

// encodeAData encodes an A record string into its binary representation.
func encodeAData(data string) ([]byte, error) {
	// data = "192.168.0.1"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv4(ip) {
		return nil, fmt.Errorf("invalid A record IP: %s", data)
	}
	return ip.To4(), nil
}

// decodeAData decodes an A record's RDATA, which must be exactly 4 bytes.
func decodeAData(b []byte) (string, error) {
	if len(b) != net.IPv4len {
		return "", fmt.Errorf("%w: A record must be 4 bytes, got %d", ErrInvalidRecordData, len(b))
	}
	return net.IP(b).String(), nil
}
