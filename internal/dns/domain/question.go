package domain

import (
	"fmt"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
)

// Question represents one entry of a DNS question section: the domain name
// being resolved together with the requested record type and class. The
// transaction ID is not part of the question; it lives in the message header
// and is generated fresh for every resolve.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question with a canonicalized name and validates its fields.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	q := Question{
		Name:  utils.CanonicalDNSName(name),
		Type:  rrtype,
		Class: class,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally and semantically valid.
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("query name must not be empty")
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("unsupported RRType: %d", q.Type)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported RRClass: %d", q.Class)
	}
	return nil
}

// Equals reports whether two questions ask for the same name, type, and class.
// Names compare in canonical form because servers may echo the question with
// different capitalization than the query carried.
func (q Question) Equals(other Question) bool {
	return utils.CanonicalDNSName(q.Name) == utils.CanonicalDNSName(other.Name) &&
		q.Type == other.Type &&
		q.Class == other.Class
}

// CacheKey returns a cache key string derived from the query's name, type, and class.
func (q Question) CacheKey() string {
	return generateCacheKey(q.Name, q.Type, q.Class)
}

// String renders the question in the section format used by Message.String.
func (q Question) String() string {
	return fmt.Sprintf("QNAME: %s\nQTYPE: %s\nQCLASS: %s\n", q.Name, q.Type, q.Class)
}
