package codec

import (
	"encoding/binary"
	"strconv"

	"github.com/m-lab/go-multiaddr/maerr"
)

// Port implements protocol.Codec for tcp/udp/dccp/sctp: a decimal port in
// [0, 65535], 2 bytes big-endian, grounded on inetdiag's Port type
// (IDiagSPort/IDiagDPort, also 2-byte big-endian, see InetDiagSockID.SPort).
type Port struct{ Proto string }

func (p Port) TextToBytes(s string) ([]byte, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v > 65535 {
		return nil, &maerr.CodecError{Proto: p.Proto, Kind: "PortOutOfRange", Detail: s}
	}
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(v))
	return buf, nil
}

func (p Port) BytesToText(b []byte) (string, error) {
	if len(b) != 2 {
		return "", &maerr.LengthMismatchError{Proto: p.Proto, Expected: 2, Got: len(b)}
	}
	return strconv.FormatUint(uint64(binary.BigEndian.Uint16(b)), 10), nil
}

func (p Port) ValidateBytes(b []byte) error {
	if len(b) != 2 {
		return &maerr.LengthMismatchError{Proto: p.Proto, Expected: 2, Got: len(b)}
	}
	return nil
}

// CIDR implements protocol.Codec for ipcidr: a decimal prefix length in
// [0, 255], 1 byte. Semantic validity against a preceding ip4/ip6 is the
// caller's concern (spec.md §4.C).
type CIDR struct{}

func (CIDR) TextToBytes(s string) ([]byte, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil || v > 255 {
		return nil, &maerr.CodecError{Proto: "ipcidr", Kind: "PortOutOfRange", Detail: s}
	}
	return []byte{byte(v)}, nil
}

func (CIDR) BytesToText(b []byte) (string, error) {
	if len(b) != 1 {
		return "", &maerr.LengthMismatchError{Proto: "ipcidr", Expected: 1, Got: len(b)}
	}
	return strconv.Itoa(int(b[0])), nil
}

func (CIDR) ValidateBytes(b []byte) error {
	if len(b) != 1 {
		return &maerr.LengthMismatchError{Proto: "ipcidr", Expected: 1, Got: len(b)}
	}
	return nil
}
