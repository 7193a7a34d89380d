package codec

import "github.com/m-lab/go-multiaddr/maerr"

// P2P implements protocol.Codec for p2p/ipfs: accepts either a
// base58btc-encoded multihash (legacy peer id) or a base32-encoded CIDv1
// whose multicodec is libp2p-key, normalizing to a raw multihash in binary
// form. Text output always emits base58btc (spec.md §9's resolution of the
// ipfs/p2p Open Question).
type P2P struct{}

func (P2P) TextToBytes(s string) ([]byte, error) {
	if mh, err := base58BTCDecode(s); err == nil && validateMultihash(mh) {
		return mh, nil
	}
	if raw, err := garlic32Enc.DecodeString(upper(s)); err == nil {
		if multicodec, mh, ok := parseCIDv1(raw); ok && multicodec == libp2pKeyMulticodec {
			return mh, nil
		}
	}
	return nil, &maerr.CodecError{Proto: "p2p", Kind: "InvalidMultihash", Detail: s}
}

func (P2P) BytesToText(b []byte) (string, error) {
	if !validateMultihash(b) {
		return "", &maerr.CodecError{Proto: "p2p", Kind: "InvalidMultihash"}
	}
	return base58BTCEncode(b), nil
}

func (P2P) ValidateBytes(b []byte) error {
	if !validateMultihash(b) {
		return &maerr.CodecError{Proto: "p2p", Kind: "InvalidMultihash"}
	}
	return nil
}

// CertHash implements protocol.Codec for certhash: a multibase-prefixed
// multihash; binary form is the raw multihash bytes.
type CertHash struct{}

func (CertHash) TextToBytes(s string) ([]byte, error) {
	raw, err := multibaseDecode(s)
	if err != nil {
		return nil, err
	}
	if !validateMultihash(raw) {
		return nil, &maerr.CodecError{Proto: "certhash", Kind: "InvalidMultihash"}
	}
	return raw, nil
}

func (CertHash) BytesToText(b []byte) (string, error) {
	if !validateMultihash(b) {
		return "", &maerr.CodecError{Proto: "certhash", Kind: "InvalidMultihash"}
	}
	return multibaseEncode(b), nil
}

func (CertHash) ValidateBytes(b []byte) error {
	if !validateMultihash(b) {
		return &maerr.CodecError{Proto: "certhash", Kind: "InvalidMultihash"}
	}
	return nil
}
