package codec

import "github.com/m-lab/go-multiaddr/maerr"

// Unix implements protocol.Codec for the path-terminal unix protocol:
// canonical text re-prepends a leading '/' and preserves internal slashes;
// binary form stores the path without the leading '/' (spec.md §4.C).
type Unix struct{}

func (Unix) TextToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, &maerr.CodecError{Proto: "unix", Kind: "EmptyName"}
	}
	if s[0] == '/' {
		s = s[1:]
	}
	return []byte(s), nil
}

func (Unix) BytesToText(b []byte) (string, error) {
	return "/" + string(b), nil
}

func (Unix) ValidateBytes(b []byte) error {
	return nil
}
