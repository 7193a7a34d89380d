// Package varint implements the unsigned LEB128 varint encoding used to
// prefix protocol codes and value lengths in the multiaddr binary form.
//
// Adapted from the teacher's bit-alignment helpers in netlink
// (rtaAlignOf-style buffer bookkeeping): here the "alignment" is base-128
// continuation rather than 32-bit rounding, but the shape -- walk a byte
// slice, track a cursor, fail on malformed input -- is the same.
package varint

import "github.com/m-lab/go-multiaddr/maerr"

// maxVarintBytes is the longest encoding this package will decode: 9 bytes
// hold 63 bits of payload (7 bits/byte), matching spec.md's 63-bit ceiling.
const maxVarintBytes = 9

// Encode returns the canonical (minimal) LEB128 encoding of v.
func Encode(v uint64) []byte {
	return Append(nil, v)
}

// Append encodes v and appends it to buf, returning the extended slice.
func Append(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// Decode reads a varint from the front of b, returning the decoded value and
// the number of bytes consumed. It rejects non-minimal encodings, overflow
// past 9 bytes / 63 bits, and truncated input.
func Decode(b []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < len(b); i++ {
		if i >= maxVarintBytes {
			return 0, 0, maerr.ErrVarintOverflow
		}
		c := b[i]
		if i == maxVarintBytes-1 && c&0x80 != 0 {
			return 0, 0, maerr.ErrVarintOverflow
		}
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			if i > 0 && c == 0 {
				// A continuation byte chain ending in a zero top byte is
				// only non-minimal if it could have stopped earlier; a
				// lone zero byte (i == 0) is the canonical encoding of 0.
				return 0, 0, maerr.ErrVarintOverflow
			}
			if v > (1<<63)-1 {
				return 0, 0, maerr.ErrVarintOverflow
			}
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, maerr.ErrVarintTruncated
}
