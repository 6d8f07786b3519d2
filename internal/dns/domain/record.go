package domain

import (
	"fmt"
	"time"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
)

// ResourceRecord represents a single DNS resource record decoded from a
// response. Records carry both the wire-format payload (Data) and its
// decoded presentation form (Text), plus an absolute expiry derived from
// the TTL at the moment the record arrived. TTLs only have meaning relative
// to arrival time, so the constructor takes the current time explicitly.
type ResourceRecord struct {
	Name      string
	Type      RRType
	Class     RRClass
	ttl       uint32
	expiresAt time.Time
	Data      []byte // wire-encoded RDATA
	Text      string // presentation form of the RDATA
}

// NewCachedResourceRecord constructs a ResourceRecord received at now, whose
// expiry is now + ttl. TTL values with the high bit set are treated as zero
// per RFC 2181 §8.
func NewCachedResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data []byte, text string, now time.Time) (ResourceRecord, error) {
	if ttl&0x80000000 != 0 {
		ttl = 0
	}
	rr := ResourceRecord{
		Name:      utils.CanonicalDNSName(name),
		Type:      rrtype,
		Class:     class,
		ttl:       ttl,
		expiresAt: now.Add(time.Duration(ttl) * time.Second),
		Data:      data,
		Text:      text,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are plausible for a
// record received off the wire. Only the type is constrained: unknown type
// codes are preserved rather than rejected, OPT pseudo-records repurpose the
// class field as a UDP payload size, and records owned by the root zone
// carry an empty canonical name, so neither class nor name can be validated
// here without refusing legitimate responses.
func (rr ResourceRecord) Validate() error {
	if rr.Type == 0 {
		return fmt.Errorf("record type must not be zero")
	}
	return nil
}

// OriginalTTL returns the TTL the record carried on the wire.
func (rr ResourceRecord) OriginalTTL() uint32 {
	return rr.ttl
}

// TTL returns the whole seconds remaining until the record expires, as of now.
func (rr ResourceRecord) TTL(now time.Time) uint32 {
	remaining := rr.expiresAt.Sub(now).Seconds()
	if remaining <= 0 {
		return 0
	}
	return uint32(remaining)
}

// IsExpired returns true once now has reached the record's expiry instant.
func (rr ResourceRecord) IsExpired(now time.Time) bool {
	return !now.Before(rr.expiresAt)
}

// ExpiresAt returns the instant the record stops being servable.
func (rr ResourceRecord) ExpiresAt() time.Time {
	return rr.expiresAt
}

// CacheKey returns a cache key string derived from the record's name, type, and class.
func (rr ResourceRecord) CacheKey() string {
	return generateCacheKey(rr.Name, rr.Type, rr.Class)
}

// String renders the record in the section format used by Message.String.
// RDATA prints the decoded presentation text when available, falling back to
// hex for payloads no decoder claimed.
func (rr ResourceRecord) String() string {
	rdata := rr.Text
	if rdata == "" {
		rdata = fmt.Sprintf("%x", rr.Data)
	}
	return fmt.Sprintf("NAME: %s\nTYPE: %s\nCLASS: %s\nTTL: %d\nRDLENGTH: %d\nRDATA: %s\n",
		rr.Name, rr.Type, rr.Class, rr.ttl, len(rr.Data), rdata)
}
