package codec

import (
	"encoding/base32"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/m-lab/go-multiaddr/maerr"
)

var onionBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Onion implements protocol.Codec for onion: base32(10 bytes) ":" port,
// binary = 10-byte address || 2-byte big-endian port (spec.md §4.C).
type Onion struct{}

func (Onion) TextToBytes(s string) ([]byte, error) {
	addr, port, err := splitOnionAddr(s, "onion")
	if err != nil {
		return nil, err
	}
	raw, err := decodeOnionAddr(addr, "onion", 10)
	if err != nil {
		return nil, err
	}
	return appendPort(raw, port, "onion")
}

func (Onion) BytesToText(b []byte) (string, error) {
	if len(b) != 12 {
		return "", &maerr.LengthMismatchError{Proto: "onion", Expected: 12, Got: len(b)}
	}
	return onionText(b[:10], b[10:12]), nil
}

func (Onion) ValidateBytes(b []byte) error {
	if len(b) != 12 {
		return &maerr.LengthMismatchError{Proto: "onion", Expected: 12, Got: len(b)}
	}
	return nil
}

// Onion3 implements protocol.Codec for onion3: base32(35 bytes) ":" port,
// binary = 35 || 2.
type Onion3 struct{}

func (Onion3) TextToBytes(s string) ([]byte, error) {
	addr, port, err := splitOnionAddr(s, "onion3")
	if err != nil {
		return nil, err
	}
	raw, err := decodeOnionAddr(addr, "onion3", 35)
	if err != nil {
		return nil, err
	}
	return appendPort(raw, port, "onion3")
}

func (Onion3) BytesToText(b []byte) (string, error) {
	if len(b) != 37 {
		return "", &maerr.LengthMismatchError{Proto: "onion3", Expected: 37, Got: len(b)}
	}
	return onionText(b[:35], b[35:37]), nil
}

func (Onion3) ValidateBytes(b []byte) error {
	if len(b) != 37 {
		return &maerr.LengthMismatchError{Proto: "onion3", Expected: 37, Got: len(b)}
	}
	return nil
}

func splitOnionAddr(s, proto string) (addr, port string, err error) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return "", "", &maerr.CodecError{Proto: proto, Kind: "BadBase32", Detail: "missing port"}
	}
	return s[:i], s[i+1:], nil
}

func decodeOnionAddr(addr, proto string, wantLen int) ([]byte, error) {
	raw, err := onionBase32.DecodeString(strings.ToUpper(addr))
	if err != nil {
		return nil, &maerr.CodecError{Proto: proto, Kind: "BadBase32", Detail: err.Error()}
	}
	if len(raw) != wantLen {
		return nil, &maerr.LengthMismatchError{Proto: proto, Expected: wantLen, Got: len(raw)}
	}
	return raw, nil
}

func appendPort(raw []byte, portText, proto string) ([]byte, error) {
	v, err := strconv.ParseUint(portText, 10, 32)
	if err != nil || v == 0 || v > 65535 {
		return nil, &maerr.CodecError{Proto: proto, Kind: "PortOutOfRange", Detail: portText}
	}
	out := make([]byte, len(raw)+2)
	copy(out, raw)
	binary.BigEndian.PutUint16(out[len(raw):], uint16(v))
	return out, nil
}

func onionText(addr, port []byte) string {
	return strings.ToLower(onionBase32.EncodeToString(addr)) + ":" + strconv.Itoa(int(binary.BigEndian.Uint16(port)))
}
