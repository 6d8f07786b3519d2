package rrdata

import (
	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
)

// Decode decodes a record value based on its type, from its binary representation.
// Types this client does not model pass through in the RFC 3597
// "\# <length> <hex>" form instead of failing, so responses carrying them
// survive intact.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(data)
	case domain.RRTypeNS: // 2
		return decodeNSData(data)
	case domain.RRTypeCNAME: // 5
		return decodeCNAMEData(data)
	case domain.RRTypeSOA: // 6
		return decodeSOAData(data)
	case domain.RRTypePTR: // 12
		return decodePTRData(data)
	case domain.RRTypeMX: // 15
		return decodeMXData(data)
	case domain.RRTypeTXT: // 16
		return decodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return decodeAAAAData(data)
	case domain.RRTypeSRV: // 33
		return decodeSRVData(data)
	case domain.RRTypeOPT: // 41
		return decodeOPTData(data)
	case domain.RRTypeCAA: // 257
		return decodeCAAData(data)
	default:
		return unknownRDataText(data), nil
	}
}
