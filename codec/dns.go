package codec

import "github.com/m-lab/go-multiaddr/maerr"

// DNSName implements protocol.Codec for dns/dns4/dns6/dnsaddr/sni: an
// opaque, non-empty UTF-8 name. The wire package supplies the varint length
// prefix; this codec only validates and transcodes the value bytes.
type DNSName struct{ Proto string }

func (d DNSName) TextToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, &maerr.CodecError{Proto: d.Proto, Kind: "EmptyName"}
	}
	return []byte(s), nil
}

func (d DNSName) BytesToText(b []byte) (string, error) {
	if len(b) == 0 {
		return "", &maerr.CodecError{Proto: d.Proto, Kind: "EmptyName"}
	}
	return string(b), nil
}

func (d DNSName) ValidateBytes(b []byte) error {
	if len(b) == 0 {
		return &maerr.CodecError{Proto: d.Proto, Kind: "EmptyName"}
	}
	return nil
}
