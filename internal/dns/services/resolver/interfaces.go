package resolver

import (
	"context"
	"time"

	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

// Codec translates between domain messages and RFC 1035 wire format.
// The engine encodes queries and decodes whatever the transport hands back;
// it never inspects raw bytes itself.
type Codec interface {
	EncodeQuery(id uint16, query domain.Question, udpSize uint16) ([]byte, error)
	DecodeMessage(data []byte, now time.Time) (domain.Message, error)
}

// Exchanger performs one query/response round trip against a single server.
// The accept predicate lets the engine reject payloads that do not answer
// the in-flight query; what a rejection means is transport-specific (UDP
// keeps reading until the deadline, TCP fails the exchange).
type Exchanger interface {
	Exchange(ctx context.Context, server string, query []byte, accept func(data []byte) bool) ([]byte, error)
}

// Cache stores complete answer sets keyed by question. Implementations must
// be safe for concurrent use by parallel resolves, and replacement must be
// atomic so readers never observe a partially written entry.
type Cache interface {
	Get(key string) ([]domain.ResourceRecord, bool)
	Set(key string, records []domain.ResourceRecord)
	Delete(key string)
	Len() int
	Keys() []string
}
