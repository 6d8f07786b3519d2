package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// Response codes the client branches on, per RFC 1035 §4.1.1.
const (
	RCodeNoError  RCode = 0 // no error condition
	RCodeFormErr  RCode = 1 // server could not interpret the query
	RCodeServFail RCode = 2 // server failed to complete the query
	RCodeNXDomain RCode = 3 // the queried name does not exist
	RCodeNotImp   RCode = 4 // query kind not supported
	RCodeRefused  RCode = 5 // server refused the operation
)

// rcodeNames covers the RFC 1035 codes plus the RFC 2136 codes that servers
// occasionally return on the query path.
var rcodeNames = map[RCode]string{
	RCodeNoError:  "NOERROR",
	RCodeFormErr:  "FORMERR",
	RCodeServFail: "SERVFAIL",
	RCodeNXDomain: "NXDOMAIN",
	RCodeNotImp:   "NOTIMP",
	RCodeRefused:  "REFUSED",
	6:             "YXDOMAIN",
	7:             "YXRRSET",
	8:             "NXRRSET",
	9:             "NOTAUTH",
	10:            "NOTZONE",
}

var rcodeValues = func() map[string]RCode {
	m := make(map[string]RCode, len(rcodeNames))
	for c, name := range rcodeNames {
		m[name] = c
	}
	return m
}()

// IsValid reports whether the code has an assigned name.
func (r RCode) IsValid() bool {
	_, ok := rcodeNames[r]
	return ok
}

// String returns the response code mnemonic, or "UNKNOWN(<value>)" for codes
// outside the assigned range.
func (r RCode) String() string {
	if name, ok := rcodeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", r)
}

// ParseRCode converts a response code mnemonic to its RCode value.
// Unrecognized input yields NOERROR.
func ParseRCode(s string) RCode {
	return rcodeValues[s]
}
