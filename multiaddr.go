// Package multiaddr implements the self-describing, composable network
// address value type of spec.md §4.F: a multiaddr is an immutable ordered
// sequence of (protocol, value) components, constructed from text, from
// bytes, or from components, and always addressable by its canonical byte
// form.
//
// Grounded on the teacher's choice to store a connection's identity as a
// raw byte buffer (RawIDM []byte) and derive a parsed view from it lazily
// rather than keeping an eagerly-decoded struct as the source of truth --
// "reduces Marshalling ... typical compressed size" applies here too: the
// canonical bytes are the only state; Components() is decoded from them on
// every call, and String() is derived and memoized on first use.
package multiaddr

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/protocol"
	"github.com/m-lab/go-multiaddr/text"
	"github.com/m-lab/go-multiaddr/wire"
)

// Multiaddr is an immutable, self-describing network address (spec.md §3).
// The zero value is the empty multiaddr (valid: a zero-component address).
type Multiaddr struct {
	reg   *protocol.Registry
	raw   []byte
	text  string // memoized, computed lazily
	ready bool   // whether text has been computed
}

// NewFromText parses s against the default registry.
func NewFromText(s string) (Multiaddr, error) {
	return NewFromTextWithRegistry(protocol.Default(), s)
}

// NewFromTextWithRegistry parses s against reg, allowing a caller to extend
// the protocol set via a layered registry (spec.md §5).
func NewFromTextWithRegistry(reg *protocol.Registry, s string) (Multiaddr, error) {
	comps, err := text.Parse(reg, s)
	if err != nil {
		return Multiaddr{}, err
	}
	return fromComponents(reg, comps), nil
}

// NewFromBytes validates and wraps b against the default registry.
func NewFromBytes(b []byte) (Multiaddr, error) {
	return NewFromBytesWithRegistry(protocol.Default(), b)
}

// NewFromBytesWithRegistry validates and wraps b against reg.
func NewFromBytesWithRegistry(reg *protocol.Registry, b []byte) (Multiaddr, error) {
	comps, err := wire.Parse(reg, b)
	if err != nil {
		return Multiaddr{}, err
	}
	return fromComponents(reg, comps), nil
}

// NewFromComponents builds a multiaddr directly from an ordered component
// sequence, re-serializing it to its canonical byte form.
func NewFromComponents(reg *protocol.Registry, comps []wire.Component) Multiaddr {
	return fromComponents(reg, comps)
}

func fromComponents(reg *protocol.Registry, comps []wire.Component) Multiaddr {
	return Multiaddr{reg: reg, raw: wire.Serialize(comps)}
}

func (m Multiaddr) registry() *protocol.Registry {
	if m.reg != nil {
		return m.reg
	}
	return protocol.Default()
}

// Bytes returns the canonical binary form.
func (m Multiaddr) Bytes() []byte {
	out := make([]byte, len(m.raw))
	copy(out, m.raw)
	return out
}

// String returns the canonical text form, memoizing it on first call.
// The text is stored back into the receiver (hence the pointer receiver),
// so later calls on the same variable return the cached value; copies
// made before the first call compute and cache their own text. Since the
// canonical bytes never change, every copy computes the same text.
func (m *Multiaddr) String() string {
	if m.ready {
		return m.text
	}
	comps, err := wire.Parse(m.registry(), m.raw)
	if err != nil {
		// raw was validated at construction time; a failure here would mean
		// memory corruption or a registry swapped out from under us.
		return ""
	}
	m.text = text.Serialize(comps)
	m.ready = true
	return m.text
}

// Equal reports whether m and other have the same canonical byte form.
func (m Multiaddr) Equal(other Multiaddr) bool {
	return bytes.Equal(m.raw, other.raw)
}

// HashKey returns a value suitable for use as a map key, since Multiaddr
// itself is not comparable with == (its canonical bytes are held in a
// []byte slice).
func (m Multiaddr) HashKey() string {
	return string(m.raw)
}

// Components returns the ordered component sequence. The slice is a fresh
// decode each call: the sequence is "lazy" in the sense that Multiaddr
// never pays the decode cost until something asks for it, but Go has no
// built-in restartable-iterator idiom as cheap as just returning a slice,
// so each call restarts from raw bytes.
func (m Multiaddr) Components() ([]wire.Component, error) {
	return wire.Parse(m.registry(), m.raw)
}

// Len returns the number of components.
func (m Multiaddr) Len() (int, error) {
	comps, err := m.Components()
	if err != nil {
		return 0, err
	}
	return len(comps), nil
}

// At returns the component at index i. Negative i counts from the end
// (-1 is the last component).
func (m Multiaddr) At(i int) (wire.Component, error) {
	comps, err := m.Components()
	if err != nil {
		return wire.Component{}, err
	}
	if i < 0 {
		i += len(comps)
	}
	if i < 0 || i >= len(comps) {
		return wire.Component{}, maerr.ErrIndexOutOfRange
	}
	return comps[i], nil
}

// Slice returns a new multiaddr composed of the contiguous components
// [start, end). Negative indices count from the end. An empty selection
// yields the empty multiaddr, which is valid.
func (m Multiaddr) Slice(start, end int) (Multiaddr, error) {
	comps, err := m.Components()
	if err != nil {
		return Multiaddr{}, err
	}
	n := len(comps)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 || end > n || start > end {
		return Multiaddr{}, maerr.ErrIndexOutOfRange
	}
	return fromComponents(m.registry(), comps[start:end]), nil
}

// Encapsulate returns self || other: the concatenation of their component
// sequences (equivalently, of their canonical byte forms).
func (m Multiaddr) Encapsulate(other Multiaddr) Multiaddr {
	out := make([]byte, 0, len(m.raw)+len(other.raw))
	out = append(out, m.raw...)
	out = append(out, other.raw...)
	return Multiaddr{reg: m.registry(), raw: out}
}

// Decapsulate removes suffix from the end of self's component sequence, if
// it occurs there as a contiguous suffix. If it does not occur, Decapsulate
// returns a copy of self -- this is explicitly not an error (spec.md §4.F).
func (m Multiaddr) Decapsulate(suffix Multiaddr) (Multiaddr, error) {
	self, err := m.Components()
	if err != nil {
		return Multiaddr{}, err
	}
	tail, err := suffix.Components()
	if err != nil {
		return Multiaddr{}, err
	}
	if len(tail) == 0 || len(tail) > len(self) {
		return fromComponents(m.registry(), self), nil
	}
	cut := len(self) - len(tail)
	if !componentsEqual(self[cut:], tail) {
		return fromComponents(m.registry(), self), nil
	}
	return fromComponents(m.registry(), self[:cut]), nil
}

// DecapsulateCode finds the rightmost component whose protocol code equals
// code and returns the prefix up to but not including it. If no component
// has that code, DecapsulateCode returns a copy of self.
func (m Multiaddr) DecapsulateCode(code int) (Multiaddr, error) {
	comps, err := m.Components()
	if err != nil {
		return Multiaddr{}, err
	}
	for i := len(comps) - 1; i >= 0; i-- {
		if comps[i].Proto.Code == code {
			return fromComponents(m.registry(), comps[:i]), nil
		}
	}
	return fromComponents(m.registry(), comps), nil
}

// canonicalName returns d's canonical lowercase name: a deprecated alias
// (e.g. "ipfs") resolves to the descriptor it aliases (e.g. "p2p"), so
// lookups by either name find the same components regardless of which
// name the component was parsed under (spec.md §9 "always emit p2p,
// accept both on input").
func canonicalName(d protocol.Descriptor) string {
	if d.Deprecated && d.AliasOf != nil {
		return strings.ToLower(d.AliasOf.Name)
	}
	return strings.ToLower(d.Name)
}

// lookupByName resolves name in reg, falling back to a bare descriptor
// carrying just the lowercased name if reg doesn't recognize it (so
// canonicalName still yields a usable, if unmatched, comparison key).
func lookupByName(reg *protocol.Registry, name string) protocol.Descriptor {
	if d, err := reg.ByName(strings.ToLower(name)); err == nil {
		return d
	}
	return protocol.Descriptor{Name: strings.ToLower(name)}
}

// ValueForProtocol returns the textual value of the first component whose
// protocol matches codeOrName (an int code or a string name), or
// maerr.ErrNotFound.
func ValueForProtocol(m Multiaddr, codeOrName interface{}) (string, error) {
	comps, err := m.Components()
	if err != nil {
		return "", err
	}
	var desc protocol.Descriptor
	var haveDesc bool
	switch v := codeOrName.(type) {
	case int:
		for _, c := range comps {
			if c.Proto.Code == v {
				desc, haveDesc = c.Proto, true
				break
			}
		}
	case string:
		name := canonicalName(lookupByName(m.registry(), v))
		for _, c := range comps {
			if canonicalName(c.Proto) == name {
				desc, haveDesc = c.Proto, true
				break
			}
		}
	default:
		return "", maerr.ErrNotFound
	}
	if !haveDesc {
		return "", maerr.ErrNotFound
	}
	if !desc.HasValue() {
		return "", nil
	}
	for _, c := range comps {
		if c.Proto.Code == desc.Code {
			return desc.Codec.BytesToText(c.Value)
		}
	}
	return "", maerr.ErrNotFound
}

// Protocols returns the ordered list of protocol descriptors.
func (m Multiaddr) Protocols() ([]protocol.Descriptor, error) {
	comps, err := m.Components()
	if err != nil {
		return nil, err
	}
	out := make([]protocol.Descriptor, len(comps))
	for i, c := range comps {
		out[i] = c.Proto
	}
	return out, nil
}

// Split decomposes m into one single-component multiaddr per component, in
// order. A convenience layered on top of Components (supplemental to spec.md,
// present in adjacent implementations as a cheap decomposition helper).
func Split(m Multiaddr) ([]Multiaddr, error) {
	comps, err := m.Components()
	if err != nil {
		return nil, err
	}
	out := make([]Multiaddr, len(comps))
	for i, c := range comps {
		out[i] = fromComponents(m.registry(), []wire.Component{c})
	}
	return out, nil
}

func componentsEqual(a, b []wire.Component) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Proto.Code != b[i].Proto.Code || !bytes.Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// NewComponent builds a single-component multiaddr from a protocol name and
// its textual value (empty for a zero-size protocol), reusing
// text.ComponentFromText so it enforces the same MissingValue/
// UnexpectedValue rules as parsing text end to end.
func NewComponent(reg *protocol.Registry, name, value string) (Multiaddr, error) {
	if reg == nil {
		reg = protocol.Default()
	}
	desc, err := reg.ByName(strings.ToLower(name))
	if err != nil {
		return Multiaddr{}, err
	}
	c, err := text.ComponentFromText(desc, value)
	if err != nil {
		return Multiaddr{}, err
	}
	return fromComponents(reg, []wire.Component{c}), nil
}

// NewComponentFromInt is a convenience for numeric-valued protocols such as
// tcp/udp ports, avoiding a strconv round trip at call sites.
func NewComponentFromInt(reg *protocol.Registry, name string, value int) (Multiaddr, error) {
	return NewComponent(reg, name, strconv.Itoa(value))
}
