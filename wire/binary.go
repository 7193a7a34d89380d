// Package wire implements the binary parser/serializer of spec.md §4.D:
// tokenizing a byte buffer into a validated sequence of components, and
// rebuilding bytes from components.
//
// Grounded on the teacher's netlink/parse TLV walk (ParseRouteAttr): both
// repeatedly decode a small header, resolve a type code against a table,
// slice out the declared value region, and advance a cursor -- here the
// header is a varint protocol code (plus an optional varint length) instead
// of a fixed-width syscall.RtAttr, so there is no alignment padding to
// account for, only varint decoding.
package wire

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/metrics"
	"github.com/m-lab/go-multiaddr/protocol"
	"github.com/m-lab/go-multiaddr/varint"
)

// errKind returns a short, stable label for err suitable for the
// maddr_parse_errors_total{kind} metric -- the Go type name for a typed
// maerr error, or the sentinel's own text for one of the package-level
// vars.
func errKind(err error) string {
	switch err.(type) {
	case *maerr.UnknownProtocolError:
		return "UnknownProtocolError"
	case *maerr.ValueTooLongError:
		return "ValueTooLongError"
	case *maerr.CodecError:
		return "CodecError"
	case *maerr.LengthMismatchError:
		return "LengthMismatchError"
	default:
		return fmt.Sprintf("%v", err)
	}
}

// Component is a single (protocol, value) pair within a multiaddr (spec.md
// §3).
type Component struct {
	Proto protocol.Descriptor
	Value []byte
}

// Parse tokenizes b into an ordered sequence of components using reg to
// resolve protocol codes. It fails with UnknownProtocolError, Truncated,
// ValueTooLongError, TrailingGarbage, or a forwarded CodecError.
func Parse(reg *protocol.Registry, b []byte) (out []Component, err error) {
	defer func() {
		if err != nil {
			metrics.ParseErrorCount.With(prometheus.Labels{"kind": errKind(err)}).Inc()
		}
	}()
	cursor := 0
	for cursor < len(b) {
		start := cursor
		code, n, err := varint.Decode(b[cursor:])
		if err != nil {
			return nil, err
		}
		cursor += n

		desc, err := reg.ByCode(int(code))
		if err != nil {
			return nil, err
		}

		var value []byte
		switch {
		case desc.LengthPrefixed():
			length, n, err := varint.Decode(b[cursor:])
			if err != nil {
				return nil, err
			}
			cursor += n
			if uint64(len(b)-cursor) < length {
				return nil, &maerr.ValueTooLongError{Proto: desc.Name, Declared: int(length), Remain: len(b) - cursor}
			}
			value = b[cursor : cursor+int(length)]
			cursor += int(length)
		case desc.HasValue():
			size, _ := desc.FixedByteLen()
			if len(b)-cursor < size {
				return nil, maerr.ErrTruncated
			}
			value = b[cursor : cursor+size]
			cursor += size
		default:
			value = nil
		}

		if err := desc.Codec.ValidateBytes(value); err != nil {
			return nil, err
		}

		out = append(out, Component{Proto: desc, Value: value})

		if cursor == start {
			// Defensive: every well-formed descriptor consumes at least
			// the code's own varint, so this should be unreachable; it
			// guards against an infinite loop if that ever stops holding.
			return nil, maerr.ErrTrailingGarbage
		}
	}
	return out, nil
}

// Serialize rebuilds the canonical byte form of components, in order.
func Serialize(components []Component) []byte {
	var out []byte
	for _, c := range components {
		out = varint.Append(out, uint64(c.Proto.Code))
		if c.Proto.LengthPrefixed() {
			out = varint.Append(out, uint64(len(c.Value)))
		}
		out = append(out, c.Value...)
	}
	return out
}
