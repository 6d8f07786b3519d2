package domain

import "fmt"

// RRClass represents a DNS class. Queries made by this client are almost
// always IN, but responses may carry any class on the wire.
type RRClass uint16

// Record classes from RFC 1035 §3.2.4 plus the update and query-only values.
const (
	RRClassIN   RRClass = 1   // Internet
	RRClassCH   RRClass = 3   // Chaos, still used for server identity queries
	RRClassHS   RRClass = 4   // Hesiod
	RRClassNONE RRClass = 254 // RFC 2136 update prerequisite
	RRClassANY  RRClass = 255 // QCLASS-only wildcard
)

var rrClassNames = map[RRClass]string{
	RRClassIN:   "IN",
	RRClassCH:   "CH",
	RRClassHS:   "HS",
	RRClassNONE: "NONE",
	RRClassANY:  "ANY",
}

var rrClassValues = func() map[string]RRClass {
	m := make(map[string]RRClass, len(rrClassNames))
	for c, name := range rrClassNames {
		m[name] = c
	}
	return m
}()

// IsValid reports whether the class has an assigned mnemonic.
func (c RRClass) IsValid() bool {
	_, ok := rrClassNames[c]
	return ok
}

// String returns the class mnemonic, or "CLASS<value>" per RFC 3597 §5 for
// classes without one.
func (c RRClass) String() string {
	if name, ok := rrClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CLASS%d", uint16(c))
}

// ParseRRClass converts a class mnemonic to its RRClass value. Unrecognized
// input yields the invalid zero class.
func ParseRRClass(s string) RRClass {
	return rrClassValues[s]
}
