package codec

import "github.com/m-lab/go-multiaddr/maerr"

// Zero implements protocol.Codec for the zero-size protocols (tls, quic,
// quic-v1, ws, wss, p2p-circuit, http, https, noise, webtransport, utp,
// udt, p2p-webrtc-*, p2p-stardust, p2p-websocket-star): empty value; any
// text value is an error (spec.md §4.C).
type Zero struct{ Proto string }

func (z Zero) TextToBytes(s string) ([]byte, error) {
	if s != "" {
		return nil, &maerr.CodecError{Proto: z.Proto, Kind: "LengthMismatch", Detail: "protocol takes no value"}
	}
	return nil, nil
}

func (z Zero) BytesToText(b []byte) (string, error) {
	if len(b) != 0 {
		return "", &maerr.LengthMismatchError{Proto: z.Proto, Expected: 0, Got: len(b)}
	}
	return "", nil
}

func (z Zero) ValidateBytes(b []byte) error {
	if len(b) != 0 {
		return &maerr.LengthMismatchError{Proto: z.Proto, Expected: 0, Got: len(b)}
	}
	return nil
}
