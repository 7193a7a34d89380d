// Package text implements the text parser/serializer of spec.md §4.E:
// tokenizing a "/proto/value/proto/value/..." string into components, and
// rebuilding canonical text from components.
//
// Grounded on the same table-driven-tokenizer shape as package wire, but
// walking "/"-delimited tokens instead of varint headers. The unix
// path-terminal special case is handled the way the teacher's netlink code
// handles its own "rest of the buffer is opaque" cases (e.g. RouteAttr
// values past a known header): once the terminal protocol's name token is
// seen, everything remaining becomes its value verbatim.
package text

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/metrics"
	"github.com/m-lab/go-multiaddr/protocol"
	"github.com/m-lab/go-multiaddr/wire"
)

// ComponentFromText builds a single component from a protocol descriptor
// and its textual value (empty for a zero-size protocol). It enforces the
// MissingValue/UnexpectedValue rules of spec.md §4.E for a given value,
// shared by Parse and by any caller building a component directly (e.g. a
// public NewComponent constructor). Parse itself also reports
// MissingValue when a name token has no value token after it.
func ComponentFromText(desc protocol.Descriptor, value string) (wire.Component, error) {
	if !desc.HasValue() {
		if value != "" {
			return wire.Component{}, maerr.ErrUnexpectedValue
		}
		return wire.Component{Proto: desc}, nil
	}
	if value == "" {
		return wire.Component{}, maerr.ErrMissingValue
	}
	bin, err := desc.Codec.TextToBytes(value)
	if err != nil {
		metrics.CodecErrorCount.With(prometheus.Labels{"protocol": desc.Name}).Inc()
		return wire.Component{}, err
	}
	return wire.Component{Proto: desc, Value: bin}, nil
}

// Parse tokenizes s into an ordered sequence of components using reg to
// resolve protocol names.
func Parse(reg *protocol.Registry, s string) ([]wire.Component, error) {
	if s == "" || s == "/" {
		return nil, nil
	}
	if s[0] != '/' {
		return nil, maerr.ErrMissingValue
	}
	tokens := strings.Split(s[1:], "/")

	var out []wire.Component
	i := 0
	for i < len(tokens) {
		name := tokens[i]
		if name == "" {
			return nil, maerr.ErrMissingValue
		}
		desc, err := reg.ByName(strings.ToLower(name))
		if err != nil {
			return nil, err
		}
		i++

		if desc.Path {
			value := strings.Join(tokens[i:], "/")
			c, err := ComponentFromText(desc, value)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
			break
		}

		if !desc.HasValue() {
			c, _ := ComponentFromText(desc, "")
			out = append(out, c)
			continue
		}

		if i >= len(tokens) || tokens[i] == "" {
			return nil, maerr.ErrMissingValue
		}
		value := tokens[i]
		i++
		c, err := ComponentFromText(desc, value)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Serialize rebuilds the canonical text form of components, in order.
// Names are always lowercase; no trailing slash is added.
func Serialize(components []wire.Component) string {
	var b strings.Builder
	for _, c := range components {
		proto := c.Proto
		if proto.Deprecated && proto.AliasOf != nil {
			// Accept a deprecated alias on input (e.g. "ipfs"), but always
			// emit its canonical name on output (spec.md §9).
			proto = *proto.AliasOf
		}
		b.WriteByte('/')
		b.WriteString(strings.ToLower(proto.Name))
		if !proto.HasValue() {
			continue
		}
		text, err := proto.Codec.BytesToText(c.Value)
		if err != nil {
			// Serialize runs over already-validated components; a codec
			// failure here means the component was built incorrectly
			// upstream, not a user-facing parse error.
			continue
		}
		if proto.Path {
			// text already carries its own leading '/'.
			b.WriteString(text)
			continue
		}
		b.WriteByte('/')
		b.WriteString(text)
	}
	return b.String()
}
