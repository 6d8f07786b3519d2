package rrdata

// encodeOPTData encodes OPT pseudo-record RDATA. EDNS options are opaque to
// this client: the accepted forms are an empty string or the RFC 3597 hex
// rendering produced by decodeOPTData.
func encodeOPTData(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	return parseUnknownRDataText(data)
}

// decodeOPTData decodes OPT pseudo-record RDATA. An empty payload is the
// common case; any EDNS options present are passed through as opaque hex.
func decodeOPTData(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	return unknownRDataText(b), nil
}
