package utils

import "golang.org/x/net/publicsuffix"

// GetApexDomain returns the registered domain (eTLD+1) for a DNS name, using
// the public suffix list. Names that have no registrable apex, such as bare
// TLDs or the root, fall back to the canonical input unchanged.
func GetApexDomain(name string) string {
	name = CanonicalDNSName(name) // publicsuffix expects no trailing dot
	apexDomain, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		apexDomain = name
	}
	return apexDomain
}
