package codec

import (
	"encoding/base32"
	"encoding/base64"
	"strings"

	"github.com/m-lab/go-multiaddr/maerr"
)

var garlic32Enc = base32.StdEncoding.WithPadding(base32.NoPadding)

// Garlic32 implements protocol.Codec for garlic32: lowercase base32 (no
// padding). Decoded length must be >= 35 bytes, or exactly one of the
// short forms {32} (spec.md §4.C, §9 -- this module follows the canonical
// Go multiaddr reference's 35-byte threshold for the long form).
type Garlic32 struct{}

const (
	garlic32ShortLen = 32
	garlic32MinLen   = 35
)

func (Garlic32) TextToBytes(s string) ([]byte, error) {
	padded := s + strings.Repeat("=", (8-len(s)%8)%8)
	raw, err := base32.StdEncoding.DecodeString(strings.ToUpper(padded))
	if err != nil {
		return nil, &maerr.CodecError{Proto: "garlic32", Kind: "BadBase32", Detail: err.Error()}
	}
	if len(raw) < garlic32MinLen && len(raw) != garlic32ShortLen {
		return nil, &maerr.CodecError{Proto: "garlic32", Kind: "BadBase32", Detail: "decoded length too short"}
	}
	return raw, nil
}

func (Garlic32) BytesToText(b []byte) (string, error) {
	if len(b) < garlic32MinLen && len(b) != garlic32ShortLen {
		return "", &maerr.CodecError{Proto: "garlic32", Kind: "BadBase32", Detail: "value too short"}
	}
	return strings.ToLower(garlic32Enc.EncodeToString(b)), nil
}

func (Garlic32) ValidateBytes(b []byte) error {
	if len(b) < garlic32MinLen && len(b) != garlic32ShortLen {
		return &maerr.CodecError{Proto: "garlic32", Kind: "BadBase32", Detail: "value too short"}
	}
	return nil
}

// garlic64Encoding is I2P-flavored base64: standard alphabet with "+/"
// substituted by "-~", no padding.
var garlic64Encoding = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-~").WithPadding(base64.NoPadding)

const garlic64MinLen = 386

// Garlic64 implements protocol.Codec for garlic64: I2P base64, decoded
// length >= 386 bytes.
type Garlic64 struct{}

func (Garlic64) TextToBytes(s string) ([]byte, error) {
	raw, err := garlic64Encoding.DecodeString(s)
	if err != nil {
		return nil, &maerr.CodecError{Proto: "garlic64", Kind: "BadBase64", Detail: err.Error()}
	}
	if len(raw) < garlic64MinLen {
		return nil, &maerr.CodecError{Proto: "garlic64", Kind: "BadBase64", Detail: "value too short"}
	}
	return raw, nil
}

func (Garlic64) BytesToText(b []byte) (string, error) {
	if len(b) < garlic64MinLen {
		return "", &maerr.CodecError{Proto: "garlic64", Kind: "BadBase64", Detail: "value too short"}
	}
	return garlic64Encoding.EncodeToString(b), nil
}

func (Garlic64) ValidateBytes(b []byte) error {
	if len(b) < garlic64MinLen {
		return &maerr.CodecError{Proto: "garlic64", Kind: "BadBase64", Detail: "value too short"}
	}
	return nil
}
