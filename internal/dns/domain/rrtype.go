package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// Record types the client can place in a question.
const (
	RRTypeA     RRType = 1   // IPv4 address
	RRTypeNS    RRType = 2   // name server
	RRTypeCNAME RRType = 5   // canonical name
	RRTypeSOA   RRType = 6   // start of authority
	RRTypePTR   RRType = 12  // pointer
	RRTypeMX    RRType = 15  // mail exchange
	RRTypeTXT   RRType = 16  // text
	RRTypeAAAA  RRType = 28  // IPv6 address
	RRTypeSRV   RRType = 33  // service locator
	RRTypeOPT   RRType = 41  // EDNS pseudo record
	RRTypeCAA   RRType = 257 // certification authority authorization
)

var rrTypeNames = map[RRType]string{
	RRTypeA:     "A",
	RRTypeNS:    "NS",
	RRTypeCNAME: "CNAME",
	RRTypeSOA:   "SOA",
	RRTypePTR:   "PTR",
	RRTypeMX:    "MX",
	RRTypeTXT:   "TXT",
	RRTypeAAAA:  "AAAA",
	RRTypeSRV:   "SRV",
	RRTypeOPT:   "OPT",
	RRTypeCAA:   "CAA",
}

var rrTypeValues = func() map[string]RRType {
	m := make(map[string]RRType, len(rrTypeNames))
	for t, name := range rrTypeNames {
		m[name] = t
	}
	return m
}()

// IsValid reports whether the type is one this client can place in a
// question. Record types outside this set are still decoded from responses
// as opaque passthrough data.
func (t RRType) IsValid() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// String returns the type mnemonic, or "TYPE<value>" per RFC 3597 §5 for
// types without one.
func (t RRType) String() string {
	if name, ok := rrTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE%d", uint16(t))
}

// RRTypeFromString converts a type mnemonic to its RRType value.
// Unrecognized input yields the invalid zero type.
func RRTypeFromString(s string) RRType {
	return rrTypeValues[s]
}
