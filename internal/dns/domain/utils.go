package domain

import (
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/utils"
)

// generateCacheKey returns a consistent cache key derived from a DNS name, type, and class.
// The apex-aware format keys entries by the registered domain they belong to.
// Format: "apexDomain|name|type|class" (e.g., "example.com|www.example.com|A|IN")
// Uses pipe (|) separator to avoid conflicts with colons in IPv6 addresses and URIs.
func generateCacheKey(name string, t RRType, c RRClass) string {
	// ensure the name is canonicalized
	name = utils.CanonicalDNSName(name)
	// get the apex domain
	apexDomain := utils.GetApexDomain(name)
	// construct the cache key
	return apexDomain + "|" + name + "|" + t.String() + "|" + c.String()
}
