package rrdata

import (
	"strings"

	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

// Encode encodes a record value based on its type, to its binary representation.
// Types this client does not model accept either the RFC 3597
// "\# <length> <hex>" form or raw bytes.
func Encode(rrType domain.RRType, data string) ([]byte, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return encodeAData(data)
	case domain.RRTypeNS: // 2
		return encodeNSData(data)
	case domain.RRTypeCNAME: // 5
		return encodeCNAMEData(data)
	case domain.RRTypeSOA: // 6
		return encodeSOAData(data)
	case domain.RRTypePTR: // 12
		return encodePTRData(data)
	case domain.RRTypeMX: // 15
		return encodeMXData(data)
	case domain.RRTypeTXT: // 16
		return encodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return encodeAAAAData(data)
	case domain.RRTypeSRV: // 33
		return encodeSRVData(data)
	case domain.RRTypeOPT: // 41
		return encodeOPTData(data)
	case domain.RRTypeCAA: // 257
		return encodeCAAData(data)
	default:
		if strings.HasPrefix(data, `\#`) {
			return parseUnknownRDataText(data)
		}
		return []byte(data), nil
	}
}
