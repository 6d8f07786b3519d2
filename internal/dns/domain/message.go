package domain

import (
	"fmt"
	"strings"
)

// Message represents a complete DNS message per RFC 1035 §4.1: the header
// fields that matter to a stub client, the question section, and the three
// record sections. Queries and responses share this shape; a query simply
// has no records and an unset QR bit.
type Message struct {
	ID                 uint16
	Response           bool // QR
	Opcode             uint8
	Authoritative      bool // AA
	Truncated          bool // TC
	RecursionDesired   bool // RD
	RecursionAvailable bool // RA
	RCode              RCode
	Questions          []Question
	Answers            []ResourceRecord
	Authority          []ResourceRecord
	Additional         []ResourceRecord
}

// Validate checks the records in every section. Header flags and counts are
// not validated here: counts are a wire-format concern enforced by the codec,
// and any 4-bit RCode is representable.
func (m Message) Validate() error {
	for i, rr := range m.Answers {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid answer record at index %d: %w", i, err)
		}
	}
	for i, rr := range m.Authority {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid authority record at index %d: %w", i, err)
		}
	}
	for i, rr := range m.Additional {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid additional record at index %d: %w", i, err)
		}
	}
	return nil
}

// IsError returns true if the message carries a non-NOERROR response code.
func (m Message) IsError() bool {
	return m.RCode != RCodeNoError
}

// HasAnswers returns true if the message contains answer records.
func (m Message) HasAnswers() bool {
	return len(m.Answers) > 0
}

// String renders the full message section by section, flags included, in the
// style of a dig printout.
func (m Message) String() string {
	var b strings.Builder
	b.WriteString("##### MESSAGE #####\n")
	b.WriteString("### HEADER ###\n")
	fmt.Fprintf(&b, "ID: %d\n", m.ID)
	fmt.Fprintf(&b, "QR: %d\n", flagBit(m.Response))
	fmt.Fprintf(&b, "OPCODE: %d\n", m.Opcode)
	fmt.Fprintf(&b, "AA: %d\n", flagBit(m.Authoritative))
	fmt.Fprintf(&b, "TC: %d\n", flagBit(m.Truncated))
	fmt.Fprintf(&b, "RD: %d\n", flagBit(m.RecursionDesired))
	fmt.Fprintf(&b, "RA: %d\n", flagBit(m.RecursionAvailable))
	fmt.Fprintf(&b, "RCODE: %s\n", m.RCode)
	fmt.Fprintf(&b, "QDCOUNT: %d\n", len(m.Questions))
	fmt.Fprintf(&b, "ANCOUNT: %d\n", len(m.Answers))
	fmt.Fprintf(&b, "NSCOUNT: %d\n", len(m.Authority))
	fmt.Fprintf(&b, "ARCOUNT: %d\n", len(m.Additional))
	for _, q := range m.Questions {
		b.WriteString("### QUESTION ###\n")
		b.WriteString(q.String())
	}
	writeRecordSection(&b, "ANSWER", m.Answers)
	writeRecordSection(&b, "AUTHORITY", m.Authority)
	writeRecordSection(&b, "ADDITIONAL", m.Additional)
	return b.String()
}

func writeRecordSection(b *strings.Builder, section string, records []ResourceRecord) {
	for _, rr := range records {
		fmt.Fprintf(b, "### %s ###\n", section)
		b.WriteString(rr.String())
	}
}

func flagBit(set bool) int {
	if set {
		return 1
	}
	return 0
}
