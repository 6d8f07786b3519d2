package wire

import (
	"errors"
	"time"

	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

// Decode errors. Every malformed-message condition maps onto one of these
// sentinels so callers can classify failures with errors.Is.
var (
	// ErrTruncated indicates the buffer ended in the middle of a structure.
	ErrTruncated = errors.New("message truncated")

	// ErrMalformedPointer indicates a compression pointer that points forward,
	// at itself, or chains past the jump budget.
	ErrMalformedPointer = errors.New("malformed compression pointer")

	// ErrInvalidLabelLength indicates a label with reserved type bits set, or
	// a name whose labels exceed the 255-byte total.
	ErrInvalidLabelLength = errors.New("invalid label length")

	// ErrRecordTooShort indicates a record whose declared RDLENGTH runs past
	// the end of the buffer.
	ErrRecordTooShort = errors.New("record too short")
)

// Encode errors.
var (
	// ErrLabelTooLong indicates a label longer than 63 bytes.
	ErrLabelTooLong = errors.New("label too long")

	// ErrNameTooLong indicates a name whose encoded form exceeds 255 bytes.
	ErrNameTooLong = errors.New("domain name too long")
)

type DNSCodec interface {
	// Query Functions
	// These methods build the query sent to upstream servers and parse whatever
	// comes back. EncodeQuery appends an EDNS0 OPT pseudo-record advertising
	// udpSize when it is non-zero.
	EncodeQuery(id uint16, query domain.Question, udpSize uint16) ([]byte, error)
	DecodeMessage(data []byte, now time.Time) (domain.Message, error)

	// EncodeMessage serializes a full message, sections in wire order, without
	// name compression. Test stub servers build their responses through it.
	EncodeMessage(msg domain.Message, now time.Time) ([]byte, error)
}
