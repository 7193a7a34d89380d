package codec

import "github.com/m-lab/go-multiaddr/varint"

// validateMultihash checks that b is a well-formed multihash: a varint
// hash-function code, a varint digest length, and exactly that many digest
// bytes, with nothing trailing.
func validateMultihash(b []byte) bool {
	_, n, err := varint.Decode(b)
	if err != nil {
		return false
	}
	b = b[n:]
	length, n, err := varint.Decode(b)
	if err != nil {
		return false
	}
	b = b[n:]
	return uint64(len(b)) == length
}

// libp2pKeyMulticodec is the multicodec table entry for "libp2p-key",
// the CIDv1 codec used to wrap a peer-id's multihash (spec.md §4.C).
const libp2pKeyMulticodec = 0x72

// parseCIDv1 parses a raw (already base-decoded) CIDv1 byte string,
// returning the multicodec and the embedded multihash bytes.
func parseCIDv1(b []byte) (multicodec uint64, multihash []byte, ok bool) {
	version, n, err := varint.Decode(b)
	if err != nil || version != 1 {
		return 0, nil, false
	}
	b = b[n:]
	multicodec, n, err = varint.Decode(b)
	if err != nil {
		return 0, nil, false
	}
	b = b[n:]
	if !validateMultihash(b) {
		return 0, nil, false
	}
	return multicodec, b, true
}
