// Package protocol implements the multiaddr protocol registry (spec.md
// §4.B): the canonical table of protocols, keyed by both numeric code and
// textual name, extensible via a layered private registry.
//
// The dual-map shape (byCode / byName) is grounded on the teacher's
// cache.Cache, which keeps two parallel maps (current/previous) indexed by
// the same key and swaps between them each cycle; here the two maps are
// indexed by two different keys of the same immutable value instead, but
// the "look up in one of two maps, fall through on miss" shape is the same.
package protocol

import (
	"fmt"
	"sync"

	"github.com/m-lab/go-multiaddr/maerr"
)

// Size-class sentinels for Descriptor.Size. A non-negative value is a fixed
// bit width (0 meaning "no value"). The named negative constants select the
// variable-length and path-terminal cases spec.md §3 describes.
const (
	Variable     = -1
	PathTerminal = -2
)

// Codec is the per-protocol bijection between textual and binary value
// forms (spec.md §4.C). Implementations live in package codec; Registry
// only stores the interface value, so protocol never imports codec.
type Codec interface {
	TextToBytes(s string) ([]byte, error)
	BytesToText(b []byte) (string, error)
	ValidateBytes(b []byte) error
}

// Descriptor is the immutable record spec.md §3 defines for a protocol.
type Descriptor struct {
	Code       int
	Name       string
	Size       int // bit width, or Variable / PathTerminal
	Codec      Codec
	Resolvable bool
	Path       bool

	// Deprecated marks a legacy alias (e.g. "ipfs") that is still
	// independently look-up-able but should never be emitted by new
	// encoders (spec.md §9's "always emit p2p, accept both on input").
	Deprecated bool
	AliasOf    *Descriptor
}

// HasValue reports whether components of this protocol carry a value at
// all (false only for the zero-size protocols of spec.md §4.C).
func (d Descriptor) HasValue() bool { return d.Size != 0 }

// LengthPrefixed reports whether the binary form of this protocol's value
// is preceded by a varint length (variable-size and path-terminal
// protocols both are, per spec.md §3/§9).
func (d Descriptor) LengthPrefixed() bool {
	return d.Size == Variable || d.Size == PathTerminal
}

// FixedByteLen returns the fixed byte length of this protocol's value, and
// whether Size was in fact a fixed bit width.
func (d Descriptor) FixedByteLen() (int, bool) {
	if d.Size < 0 {
		return 0, false
	}
	return d.Size / 8, true
}

// Registry is a keyed mapping of protocol descriptors by code and by name.
// A Registry built by New is independent; one built by NewLayered falls
// through to its base on lookup miss, but registers new entries only in
// its own overlay maps, so the base is never mutated.
type Registry struct {
	mu     sync.RWMutex
	byCode map[int]Descriptor
	byName map[string]Descriptor
	base   *Registry
}

// New returns an empty, standalone registry.
func New() *Registry {
	return &Registry{
		byCode: make(map[int]Descriptor),
		byName: make(map[string]Descriptor),
	}
}

// NewLayered returns a private registry that consults base on miss. Entries
// registered on the returned registry never appear in base.
func NewLayered(base *Registry) *Registry {
	r := New()
	r.base = base
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, built once from the canonical
// protocol set (spec.md §5: "initialized once before first use and
// thereafter treated as read-only").
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
		for _, d := range canonicalTable() {
			if err := defaultReg.Register(d); err != nil {
				panic(fmt.Sprintf("protocol: canonical table is inconsistent: %v", err))
			}
		}
		p2p, err := defaultReg.ByCode(421)
		if err != nil {
			panic("protocol: canonical table is missing p2p")
		}
		alias := p2p
		alias.Name = "ipfs"
		alias.Deprecated = true
		target := p2p
		alias.AliasOf = &target
		if err := defaultReg.RegisterAlias("ipfs", alias); err != nil {
			panic(fmt.Sprintf("protocol: failed to register ipfs alias: %v", err))
		}
	})
	return defaultReg
}

// Register adds d to the registry. It fails with maerr.ErrDuplicate if the
// code or name is already registered in this registry (not in a base it
// layers over -- shadowing a base entry is permitted, matching how a
// layered registry is meant to extend rather than fight the default).
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCode[d.Code]; ok {
		return maerr.ErrDuplicate
	}
	if _, ok := r.byName[d.Name]; ok {
		return maerr.ErrDuplicate
	}
	r.byCode[d.Code] = d
	r.byName[d.Name] = d
	return nil
}

// RegisterAlias adds d under name only, leaving the numeric code map
// untouched. This is how a deprecated alias (e.g. "ipfs") shares a code
// with its canonical descriptor (e.g. "p2p") without tripping the
// by-code duplicate check in Register.
func (r *Registry) RegisterAlias(name string, d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return maerr.ErrDuplicate
	}
	r.byName[name] = d
	return nil
}

// ByCode looks up a descriptor by its numeric protocol code.
func (r *Registry) ByCode(code int) (Descriptor, error) {
	r.mu.RLock()
	d, ok := r.byCode[code]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}
	if r.base != nil {
		return r.base.ByCode(code)
	}
	return Descriptor{}, &maerr.UnknownProtocolError{Code: uint64(code)}
}

// ByName looks up a descriptor by its textual protocol name.
func (r *Registry) ByName(name string) (Descriptor, error) {
	r.mu.RLock()
	d, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}
	if r.base != nil {
		return r.base.ByName(name)
	}
	return Descriptor{}, &maerr.UnknownProtocolError{Name: name, ByName: true}
}
