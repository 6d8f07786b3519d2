// Package wire provides encoding and decoding of DNS messages.
// It handles the DNS wire format as specified in RFC 1035, including
// name compression on decode and the EDNS0 OPT pseudo-record (RFC 6891).
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/rrdata"
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

const (
	// headerLen is the fixed DNS header size in bytes.
	headerLen = 12

	// maxLabelLen is the maximum length of a single label.
	maxLabelLen = 63

	// maxNameLen is the maximum encoded length of a full name,
	// length bytes and terminator included.
	maxNameLen = 255

	// maxPointerJumps caps compression-pointer follows per name, so a
	// crafted pointer chain terminates instead of looping.
	maxPointerJumps = 128
)

// messageCodec implements the DNSCodec interface for RFC 1035 messages.
// The same bytes travel over UDP and TCP; length-prefix framing for TCP
// belongs to the transport, not the codec.
type messageCodec struct {
	logger log.Logger
}

// NewMessageCodec creates and returns a new instance of messageCodec using
// the provided logger. The logger is used for logging within the codec.
func NewMessageCodec(logger log.Logger) *messageCodec {
	return &messageCodec{
		logger: logger,
	}
}

// EncodeQuery serializes a Question into a binary format suitable for sending
// to an upstream server. The query carries the given transaction ID and sets
// RD so the upstream resolves recursively. When udpSize is non-zero an EDNS0
// OPT pseudo-record advertising that payload size is appended to the
// additional section.
func (c *messageCodec) EncodeQuery(id uint16, query domain.Question, udpSize uint16) ([]byte, error) {
	msg := domain.Message{
		ID:               id,
		RecursionDesired: true,
		Questions:        []domain.Question{query},
	}

	if udpSize > 0 {
		// OPT repurposes the header fields: the root name, the class as the
		// advertised UDP payload size, and the TTL as extended RCODE and flags
		// (all zero here). No options are carried.
		opt, err := domain.NewCachedResourceRecord("", domain.RRTypeOPT, domain.RRClass(udpSize), 0, nil, "", time.Time{})
		if err != nil {
			return nil, err
		}
		msg.Additional = append(msg.Additional, opt)
	}

	return c.EncodeMessage(msg, time.Time{})
}

// EncodeMessage serializes a full message: header, then questions, answers,
// authority, and additional records in wire order. Names are written as plain
// label sequences; no compression is applied on encode.
func (c *messageCodec) EncodeMessage(msg domain.Message, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	// Header
	_ = binary.Write(&buf, binary.BigEndian, msg.ID)
	_ = binary.Write(&buf, binary.BigEndian, headerFlags(msg))

	// Safely convert section lengths to uint16 with bounds check
	for _, section := range []struct {
		name  string
		count int
	}{
		{"question", len(msg.Questions)},
		{"answer", len(msg.Answers)},
		{"authority", len(msg.Authority)},
		{"additional", len(msg.Additional)},
	} {
		if section.count > 65535 {
			return nil, fmt.Errorf("too many %s records: %d (max 65535)", section.name, section.count)
		}
		_ = binary.Write(&buf, binary.BigEndian, uint16(section.count))
	}

	// Question section
	for _, q := range msg.Questions {
		name, err := encodeName(q.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		_ = binary.Write(&buf, binary.BigEndian, uint16(q.Type))
		_ = binary.Write(&buf, binary.BigEndian, uint16(q.Class))
	}

	// Record sections in wire order
	for _, section := range [][]domain.ResourceRecord{msg.Answers, msg.Authority, msg.Additional} {
		for _, rr := range section {
			if err := encodeRecord(&buf, rr, now); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Debug(map[string]any{
		"id":   msg.ID,
		"size": buf.Len(),
	}, "Encoded DNS message")

	return buf.Bytes(), nil
}

// encodeRecord appends one resource record to buf. The TTL written is the
// time remaining as of now, so re-encoding a cached record decays its TTL.
func encodeRecord(buf *bytes.Buffer, rr domain.ResourceRecord, now time.Time) error {
	name, err := encodeName(rr.Name)
	if err != nil {
		return err
	}
	buf.Write(name)
	_ = binary.Write(buf, binary.BigEndian, uint16(rr.Type))
	_ = binary.Write(buf, binary.BigEndian, uint16(rr.Class))
	_ = binary.Write(buf, binary.BigEndian, rr.TTL(now))

	// Safely convert data length to uint16 with bounds check
	dataLen := len(rr.Data)
	if dataLen > 65535 {
		return fmt.Errorf("resource record data too large: %d bytes (max 65535)", dataLen)
	}
	_ = binary.Write(buf, binary.BigEndian, uint16(dataLen))
	buf.Write(rr.Data)
	return nil
}

// headerFlags packs the message's flag fields into the second header word.
func headerFlags(msg domain.Message) uint16 {
	var flags uint16
	if msg.Response {
		flags |= 1 << 15
	}
	flags |= uint16(msg.Opcode&0x0F) << 11
	if msg.Authoritative {
		flags |= 1 << 10
	}
	if msg.Truncated {
		flags |= 1 << 9
	}
	if msg.RecursionDesired {
		flags |= 1 << 8
	}
	if msg.RecursionAvailable {
		flags |= 1 << 7
	}
	flags |= uint16(msg.RCode) & 0x000F
	return flags
}

// encodeName encodes a domain name as a length-prefixed label sequence
// terminated by a zero-length label. The empty string encodes the root.
func encodeName(name string) ([]byte, error) {
	var buf bytes.Buffer
	name = strings.TrimSuffix(name, ".") // Remove trailing dot
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if len(label) > maxLabelLen {
				return nil, fmt.Errorf("%w: %s", ErrLabelTooLong, label)
			}
			if len(label) > 0 { // Skip empty labels
				buf.WriteByte(byte(len(label)))
				buf.WriteString(label)
			}
		}
	}
	buf.WriteByte(0) // End of name
	if buf.Len() > maxNameLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrNameTooLong, buf.Len())
	}
	return buf.Bytes(), nil
}

// DecodeMessage parses a raw DNS message into a Message, following name
// compression and decoding each record's RDATA into its presentation form.
// Records are stamped with an expiry of now plus their TTL.
func (c *messageCodec) DecodeMessage(data []byte, now time.Time) (domain.Message, error) {
	if len(data) < headerLen {
		return domain.Message{}, fmt.Errorf("%w: shorter than header", ErrTruncated)
	}

	flags := binary.BigEndian.Uint16(data[2:4])
	msg := domain.Message{
		ID:                 binary.BigEndian.Uint16(data[0:2]),
		Response:           flags&0x8000 != 0,
		Opcode:             uint8(flags >> 11 & 0x0F),
		Authoritative:      flags&0x0400 != 0,
		Truncated:          flags&0x0200 != 0,
		RecursionDesired:   flags&0x0100 != 0,
		RecursionAvailable: flags&0x0080 != 0,
		//gosec:disable G115 -- uint16 & 0x000F always results in a uint8 value, so this is safe.
		RCode: domain.RCode(uint8(flags & 0x000F)),
	}

	qdCount := binary.BigEndian.Uint16(data[4:6])
	anCount := binary.BigEndian.Uint16(data[6:8])
	nsCount := binary.BigEndian.Uint16(data[8:10])
	arCount := binary.BigEndian.Uint16(data[10:12])

	offset := headerLen

	// Parse questions
	for i := 0; i < int(qdCount); i++ {
		q, newOffset, err := decodeQuestion(data, offset)
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to parse question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
		offset = newOffset
	}

	// Parse answers
	for i := 0; i < int(anCount); i++ {
		rr, newOffset, err := c.decodeRecord(data, offset, now)
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to parse answer record %d: %w", i, err)
		}
		msg.Answers = append(msg.Answers, rr)
		offset = newOffset
	}

	// Parse authority records
	for i := 0; i < int(nsCount); i++ {
		rr, newOffset, err := c.decodeRecord(data, offset, now)
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to parse authority record %d: %w", i, err)
		}
		msg.Authority = append(msg.Authority, rr)
		offset = newOffset
	}

	// Parse additional records
	for i := 0; i < int(arCount); i++ {
		rr, newOffset, err := c.decodeRecord(data, offset, now)
		if err != nil {
			return domain.Message{}, fmt.Errorf("failed to parse additional record %d: %w", i, err)
		}
		msg.Additional = append(msg.Additional, rr)
		offset = newOffset
	}

	return msg, nil
}

// decodeQuestion parses one question entry at offset.
func decodeQuestion(data []byte, offset int) (domain.Question, int, error) {
	name, next, err := decodeName(data, offset)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if next+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: question ends mid-structure", ErrTruncated)
	}
	q := domain.Question{
		Name:  utils.CanonicalDNSName(name),
		Type:  domain.RRType(binary.BigEndian.Uint16(data[next : next+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4])),
	}
	return q, next + 4, nil
}

// decodeRecord extracts a single resource record at offset.
func (c *messageCodec) decodeRecord(data []byte, offset int, now time.Time) (domain.ResourceRecord, int, error) {
	name, next, err := decodeName(data, offset)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("failed to decode record name: %w", err)
	}

	if next+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record ends mid-structure", ErrTruncated)
	}
	rrtype := domain.RRType(binary.BigEndian.Uint16(data[next : next+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4]))
	ttl := binary.BigEndian.Uint32(data[next+4 : next+8])
	rdLen := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	next += 10

	if next+rdLen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata length %d exceeds remaining %d bytes", ErrRecordTooShort, rdLen, len(data)-next)
	}

	rdata, err := decompressRData(rrtype, data, next, rdLen)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}

	text, err := rrdata.Decode(rrtype, rdata)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}

	rr, err := domain.NewCachedResourceRecord(name, rrtype, class, ttl, rdata, text, now)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("invalid resource record: %w", err)
	}

	return rr, next + rdLen, nil
}

// decompressRData returns a self-contained copy of one record's RDATA.
// Types whose RDATA embeds domain names may use compression pointers into
// the surrounding message; those names are rewritten uncompressed so the
// context-free rrdata decoders can parse the result.
func decompressRData(rrType domain.RRType, data []byte, offset, rdLen int) ([]byte, error) {
	end := offset + rdLen
	if rdLen == 0 {
		return []byte{}, nil
	}

	// rewriteName decodes the name at pos and re-encodes it uncompressed,
	// rejecting names whose top-level labels cross the record boundary.
	rewriteName := func(pos int) ([]byte, int, error) {
		name, next, err := decodeName(data, pos)
		if err != nil {
			return nil, 0, err
		}
		if next > end {
			return nil, 0, fmt.Errorf("%w: name in rdata crosses record boundary", ErrRecordTooShort)
		}
		encoded, err := encodeName(name)
		if err != nil {
			return nil, 0, err
		}
		return encoded, next, nil
	}

	switch rrType {
	case domain.RRTypeNS, domain.RRTypeCNAME, domain.RRTypePTR:
		encoded, _, err := rewriteName(offset)
		if err != nil {
			return nil, err
		}
		return encoded, nil

	case domain.RRTypeMX:
		if rdLen < 3 {
			break // let the typed decoder reject it
		}
		encoded, _, err := rewriteName(offset + 2)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, 2+len(encoded))
		out = append(out, data[offset:offset+2]...)
		return append(out, encoded...), nil

	case domain.RRTypeSRV:
		if rdLen < 7 {
			break
		}
		encoded, _, err := rewriteName(offset + 6)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, 6+len(encoded))
		out = append(out, data[offset:offset+6]...)
		return append(out, encoded...), nil

	case domain.RRTypeSOA:
		mname, afterM, err := rewriteName(offset)
		if err != nil {
			return nil, err
		}
		rname, afterR, err := rewriteName(afterM)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, len(mname)+len(rname)+end-afterR)
		out = append(out, mname...)
		out = append(out, rname...)
		return append(out, data[afterR:end]...), nil
	}

	out := make([]byte, rdLen)
	copy(out, data[offset:end])
	return out, nil
}

// decodeName decodes a domain name from a DNS message at the specified
// offset, handling label compression as defined in RFC 1035. It returns the
// dotted name and the offset of the first byte past the name at its original
// location. Pointer chains are walked iteratively: every pointer must target
// an earlier offset than its own, and the total number of jumps is capped at
// maxPointerJumps, so crafted buffers fail instead of looping.
func decodeName(data []byte, offset int) (string, int, error) {
	var labels []string
	nameLen := 0 // encoded length so far, length bytes included
	jumps := 0
	next := -1 // offset past the name where it originally appears
	pos := offset

	for {
		if pos >= len(data) {
			return "", 0, fmt.Errorf("%w: name runs past end of message", ErrTruncated)
		}
		length := int(data[pos])

		switch {
		case length == 0:
			if next < 0 {
				next = pos + 1
			}
			return strings.Join(labels, "."), next, nil

		case length&0xC0 == 0xC0:
			if pos+1 >= len(data) {
				return "", 0, fmt.Errorf("%w: pointer runs past end of message", ErrTruncated)
			}
			jumps++
			if jumps > maxPointerJumps {
				return "", 0, fmt.Errorf("%w: more than %d jumps", ErrMalformedPointer, maxPointerJumps)
			}
			target := int(binary.BigEndian.Uint16(data[pos:pos+2]) & 0x3FFF)
			if target >= pos {
				return "", 0, fmt.Errorf("%w: pointer at offset %d targets %d", ErrMalformedPointer, pos, target)
			}
			if next < 0 {
				next = pos + 2
			}
			pos = target

		case length&0xC0 != 0:
			// 0x40 and 0x80 label types are reserved and unassigned.
			return "", 0, fmt.Errorf("%w: reserved label type 0x%02x", ErrInvalidLabelLength, length&0xC0)

		default:
			if pos+1+length > len(data) {
				return "", 0, fmt.Errorf("%w: label runs past end of message", ErrTruncated)
			}
			nameLen += length + 1
			if nameLen+1 > maxNameLen {
				return "", 0, fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidLabelLength, maxNameLen)
			}
			labels = append(labels, string(data[pos+1:pos+1+length]))
			pos += 1 + length
		}
	}
}

var _ DNSCodec = &messageCodec{}
