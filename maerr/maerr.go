// Package maerr defines the discriminated error taxonomy shared by every
// multiaddr core package: varint, protocol, codec, wire, text, resolve,
// thinwaist, and the root multiaddr package.
//
// Package-level sentinel values are used where spec.md names a data-free case
// (Truncated, Cancelled, Duplicate, NotFound, ...); typed error structs are
// used where a case carries data (UnknownProtocol(code|name),
// LengthMismatch(expected, got), ResolutionFailed(cause)). This mirrors the
// teacher's "var ( ErrX = errors.New(...) )" idiom, extended only where the
// spec requires carrying fields.
package maerr

import "fmt"

// Parse errors (spec.md §7 ParseError).
var (
	ErrTruncated      = &sentinel{"multiaddr: truncated input"}
	ErrTrailingGarbage = &sentinel{"multiaddr: trailing garbage after last component"}
	ErrMissingValue   = &sentinel{"multiaddr: protocol requires a value"}
	ErrUnexpectedValue = &sentinel{"multiaddr: protocol does not take a value"}
	ErrVarintOverflow = &sentinel{"multiaddr: varint overflow"}
	ErrVarintTruncated = &sentinel{"multiaddr: varint truncated"}
)

// Registry errors (spec.md §7 RegistryError).
var (
	ErrDuplicate = &sentinel{"multiaddr: duplicate protocol registration"}
	ErrNotFound  = &sentinel{"multiaddr: protocol not found"}
)

// Resolver errors (spec.md §7 ResolverError).
var (
	ErrResolutionTimeout = &sentinel{"multiaddr: resolution timed out"}
	ErrRecursionLimit    = &sentinel{"multiaddr: dnsaddr recursion limit exceeded"}
	ErrCancelled         = &sentinel{"multiaddr: resolution cancelled"}
)

// Usage errors (spec.md §7 Usage).
var (
	ErrIndexOutOfRange = &sentinel{"multiaddr: component index out of range"}
	ErrPeerIDMismatch  = &sentinel{"multiaddr: peer id does not match suffix"}
)

type sentinel struct{ msg string }

func (s *sentinel) Error() string { return s.msg }

// UnknownProtocolError is returned when a binary code or text name does not
// resolve in the registry.
type UnknownProtocolError struct {
	Code    uint64
	Name    string
	ByName  bool
}

func (e *UnknownProtocolError) Error() string {
	if e.ByName {
		return fmt.Sprintf("multiaddr: unknown protocol name %q", e.Name)
	}
	return fmt.Sprintf("multiaddr: unknown protocol code %d", e.Code)
}

// ValueTooLongError is returned by the binary parser when a declared length
// prefix would read past the end of the buffer.
type ValueTooLongError struct {
	Proto    string
	Declared int
	Remain   int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("multiaddr: %s value length %d exceeds remaining %d bytes", e.Proto, e.Declared, e.Remain)
}

// CodecError is the common shape for every 4.C value-codec failure.
// Kind identifies which specific validation failed, matching spec.md §7's
// CodecError discriminator list.
type CodecError struct {
	Proto string
	Kind  string // InvalidIp, PortOutOfRange, BadBase32, BadBase58, BadBase64, LengthMismatch, InvalidMultihash, InvalidCid, EmptyName
	Detail string
}

func (e *CodecError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("multiaddr: %s: %s: %s", e.Proto, e.Kind, e.Detail)
	}
	return fmt.Sprintf("multiaddr: %s: %s", e.Proto, e.Kind)
}

// LengthMismatchError is the CodecError case that carries expected/got sizes
// (e.g. ip4 must decode to exactly 4 bytes).
type LengthMismatchError struct {
	Proto    string
	Expected int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("multiaddr: %s: expected %d bytes, got %d", e.Proto, e.Expected, e.Got)
}

// ResolutionFailedError wraps the underlying capability failure that made a
// required expansion impossible.
type ResolutionFailedError struct {
	Component string
	Cause     error
}

func (e *ResolutionFailedError) Error() string {
	return fmt.Sprintf("multiaddr: resolution of %s failed: %v", e.Component, e.Cause)
}

func (e *ResolutionFailedError) Unwrap() error { return e.Cause }
