// Package codec implements the per-protocol value codecs of spec.md §4.C:
// pure, bidirectional transcoders between a protocol's textual and binary
// value forms.
//
// Grounded on the teacher's inetdiag/structs.go, which converts raw
// fixed-width byte arrays (Port, ipType, netIF, cookieType) to and from
// human-readable text (String() methods, gocsv MarshalCSV); each codec here
// is that same "fixed byte layout <-> text" conversion, generalized to also
// run in reverse (text -> bytes) since multiaddr must parse text, not just
// print it.
package codec

import (
	"net"
	"strconv"

	"github.com/m-lab/go-multiaddr/maerr"
)

// IP4 implements protocol.Codec for the ip4 protocol: dotted-quad text,
// 4 network-order bytes.
type IP4 struct{}

func (IP4) TextToBytes(s string) ([]byte, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil || !isDottedQuad(s) {
		return nil, &maerr.CodecError{Proto: "ip4", Kind: "InvalidIp", Detail: s}
	}
	return ip.To4(), nil
}

func (IP4) BytesToText(b []byte) (string, error) {
	if len(b) != 4 {
		return "", &maerr.LengthMismatchError{Proto: "ip4", Expected: 4, Got: len(b)}
	}
	return net.IP(b).String(), nil
}

func (IP4) ValidateBytes(b []byte) error {
	if len(b) != 4 {
		return &maerr.LengthMismatchError{Proto: "ip4", Expected: 4, Got: len(b)}
	}
	return nil
}

// isDottedQuad rejects shorthand ("1.2.3"), octal-looking octets, and other
// forms net.ParseIP is more liberal about than the canonical ip4 text form
// requires.
func isDottedQuad(s string) bool {
	parts := splitN(s, '.', 5)
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return false
		}
		if len(p) > 1 && p[0] == '0' {
			return false
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return false
			}
		}
		v, err := strconv.Atoi(p)
		if err != nil || v > 255 {
			return false
		}
	}
	return true
}

func splitN(s string, sep byte, max int) []string {
	var out []string
	start := 0
	for i := 0; i < len(s) && len(out) < max-1; i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// IP6 implements protocol.Codec for the ip6 protocol: RFC 4291 text form,
// 16 bytes. Zone suffixes are rejected here -- they travel only via the
// separate ip6zone component (spec.md §4.C).
type IP6 struct{}

func (IP6) TextToBytes(s string) ([]byte, error) {
	if hasZone(s) {
		return nil, &maerr.CodecError{Proto: "ip6", Kind: "InvalidIp", Detail: "zone suffix not allowed inline"}
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() != nil {
		return nil, &maerr.CodecError{Proto: "ip6", Kind: "InvalidIp", Detail: s}
	}
	return ip.To16(), nil
}

func (IP6) BytesToText(b []byte) (string, error) {
	if len(b) != 16 {
		return "", &maerr.LengthMismatchError{Proto: "ip6", Expected: 16, Got: len(b)}
	}
	return net.IP(b).String(), nil
}

func (IP6) ValidateBytes(b []byte) error {
	if len(b) != 16 {
		return &maerr.LengthMismatchError{Proto: "ip6", Expected: 16, Got: len(b)}
	}
	return nil
}

func hasZone(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			return true
		}
	}
	return false
}

// IP6Zone implements protocol.Codec for ip6zone: an opaque UTF-8 zone name.
type IP6Zone struct{}

func (IP6Zone) TextToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, &maerr.CodecError{Proto: "ip6zone", Kind: "EmptyName"}
	}
	return []byte(s), nil
}

func (IP6Zone) BytesToText(b []byte) (string, error) {
	if len(b) == 0 {
		return "", &maerr.CodecError{Proto: "ip6zone", Kind: "EmptyName"}
	}
	return string(b), nil
}

func (IP6Zone) ValidateBytes(b []byte) error {
	if len(b) == 0 {
		return &maerr.CodecError{Proto: "ip6zone", Kind: "EmptyName"}
	}
	return nil
}
