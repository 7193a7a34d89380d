package codec

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"

	"github.com/m-lab/go-multiaddr/maerr"
)

// multibaseDecode decodes a multibase-prefixed string using the small
// subset of bases certhash values are realistically encoded with: base16
// ('f'), base32 lower no-pad ('b'), base58btc ('z'), and base64url no-pad
// ('u'). The leading prefix byte selects the base per the multibase spec.
func multibaseDecode(s string) ([]byte, error) {
	if len(s) < 2 {
		return nil, &maerr.CodecError{Proto: "certhash", Kind: "BadBase32", Detail: "value too short for a multibase prefix"}
	}
	prefix, rest := s[0], s[1:]
	switch prefix {
	case 'f':
		b, err := hex.DecodeString(rest)
		if err != nil {
			return nil, &maerr.CodecError{Proto: "certhash", Kind: "BadBase32", Detail: err.Error()}
		}
		return b, nil
	case 'b':
		b, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(upper(rest))
		if err != nil {
			return nil, &maerr.CodecError{Proto: "certhash", Kind: "BadBase32", Detail: err.Error()}
		}
		return b, nil
	case 'z':
		return base58BTCDecode(rest)
	case 'u':
		b, err := base64.RawURLEncoding.DecodeString(rest)
		if err != nil {
			return nil, &maerr.CodecError{Proto: "certhash", Kind: "BadBase64", Detail: err.Error()}
		}
		return b, nil
	default:
		return nil, &maerr.CodecError{Proto: "certhash", Kind: "BadBase32", Detail: "unsupported multibase prefix"}
	}
}

// multibaseEncode re-encodes with the base32-lower multibase prefix, the
// conventional choice for CID-adjacent values in the multiformats family.
func multibaseEncode(b []byte) string {
	return "b" + lower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b))
}

func upper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func lower(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c - 'A' + 'a'
		}
	}
	return string(out)
}
