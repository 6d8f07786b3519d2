package utils

import "strings"

// CanonicalDNSName normalizes a DNS name for comparison and cache keying:
// lowercased, trimmed of surrounding whitespace, and stripped of any trailing
// dots. DNS names are case-insensitive on the wire, and the absolute-name dot
// carries no information once a name has left the zone file.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}
