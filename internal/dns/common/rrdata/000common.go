package rrdata

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
)

// ErrInvalidRecordData reports RDATA whose length or structure does not match
// its record type.
var ErrInvalidRecordData = errors.New("invalid record data")

// encodeDomainName encodes a domain name into wire format (length-prefixed labels ending in 0).
// used in multiple record types
func encodeDomainName(name string) ([]byte, error) {
	// name = foo.example.com.
	name = utils.CanonicalDNSName(name)
	labels := strings.Split(name, ".")
	var encoded []byte
	for _, label := range labels {
		if len(label) == 0 {
			continue
		}
		if len(label) > 63 {
			return nil, fmt.Errorf("label too long: %s", label)
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	encoded = append(encoded, 0) // null terminator
	if len(encoded) > 255 {
		return nil, fmt.Errorf("domain name too long: %d bytes", len(encoded))
	}
	return encoded, nil
}

// decodeDomainName reads one uncompressed domain name from the head of b and
// returns it together with the number of bytes consumed. Compression pointers
// are rejected here: rdata reaches this package already rewritten into
// uncompressed form.
func decodeDomainName(b []byte) (string, int, error) {
	var labels []string
	i := 0
	for {
		if i >= len(b) {
			return "", 0, fmt.Errorf("%w: domain name missing terminator", ErrInvalidRecordData)
		}
		labelLen := int(b[i])
		if labelLen == 0 {
			i++
			break
		}
		if labelLen > 63 {
			return "", 0, fmt.Errorf("%w: invalid label length %d", ErrInvalidRecordData, labelLen)
		}
		i++
		if i+labelLen > len(b) {
			return "", 0, fmt.Errorf("%w: label exceeds available data", ErrInvalidRecordData)
		}
		labels = append(labels, string(b[i:i+labelLen]))
		i += labelLen
	}
	return strings.Join(labels, "."), i, nil
}

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
// It returns true if the IP is not nil and can be converted to IPv4 format.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is a valid IPv6 address.
// It returns true if the IP is not nil, has a valid 16-byte representation,
// and does not have a valid 4-byte IPv4 representation.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}

// unknownRDataText renders rdata in the RFC 3597 unknown-type form:
// "\# <length> <hex>".
func unknownRDataText(b []byte) string {
	if len(b) == 0 {
		return `\# 0`
	}
	return fmt.Sprintf(`\# %d %s`, len(b), hex.EncodeToString(b))
}

// parseUnknownRDataText parses the RFC 3597 form produced by unknownRDataText.
func parseUnknownRDataText(s string) ([]byte, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 || fields[0] != `\#` {
		return nil, fmt.Errorf("invalid unknown-type rdata: %s", s)
	}
	length, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("invalid unknown-type rdata length: %v", err)
	}
	data, err := hex.DecodeString(strings.Join(fields[2:], ""))
	if err != nil {
		return nil, fmt.Errorf("invalid unknown-type rdata hex: %v", err)
	}
	if len(data) != length {
		return nil, fmt.Errorf("unknown-type rdata length mismatch: declared %d, got %d", length, len(data))
	}
	return data, nil
}
