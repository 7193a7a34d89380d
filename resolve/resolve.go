// Package resolve implements the DNS-backed multiaddr resolver of spec.md
// §4.G: expanding dns/dns4/dns6/dnsaddr components into concrete addresses
// via a caller-supplied name-resolution capability.
//
// Grounded on two teacher concurrency shapes: the cancellable polling loop
// of namespaces.WatchForNetworkNamespaces (a goroutine that watches
// ctx.Done() and flips a flag checked by the main loop) becomes, here, a
// goroutine racing a single in-flight NameResolver call against ctx.Done()
// via select, since there's no loop to flip a flag for -- a resolve call
// either finishes or is abandoned, once. The concurrent-dispatch-and-join
// shape of collector's socket-monitor.go (issue several requests, collect
// on a channel, join) becomes the fan-out over dns's simultaneous A+AAAA
// queries. A dnsaddr TXT answer's entries are parsed one after another, and
// each expansion is resolved recursively in turn.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/m-lab/go/logx"
	"github.com/prometheus/client_golang/prometheus"

	maddr "github.com/m-lab/go-multiaddr"
	"github.com/m-lab/go-multiaddr/maerr"
	"github.com/m-lab/go-multiaddr/metrics"
	"github.com/m-lab/go-multiaddr/protocol"
	"github.com/m-lab/go-multiaddr/text"
	"github.com/m-lab/go-multiaddr/wire"
)

// NameResolver is the capability Resolve needs: A, AAAA, and TXT lookups,
// each cancellable via ctx.
type NameResolver interface {
	QueryA(ctx context.Context, name string) ([]net.IP, error)
	QueryAAAA(ctx context.Context, name string) ([]net.IP, error)
	QueryTXT(ctx context.Context, name string) ([]string, error)
}

// DefaultMaxDepth bounds dnsaddr recursion (spec.md §4.G step 5).
const DefaultMaxDepth = 32

// Options configures a Resolve call. The zero value uses the default
// registry and DefaultMaxDepth.
type Options struct {
	Registry *protocol.Registry
	MaxDepth int
}

func (o Options) registry() *protocol.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return protocol.Default()
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

var recursionWarning = logx.NewLogEvery(nil, time.Second)

// Resolve expands m's first resolvable component (dns, dns4, dns6,
// dnsaddr) using res, recursively, up to opts.MaxDepth levels, and
// deduplicates the results by canonical byte form, preserving first-seen
// order. If m has no resolvable component, Resolve yields []Multiaddr{m}
// unchanged.
func Resolve(ctx context.Context, m maddr.Multiaddr, res NameResolver, opts Options) ([]maddr.Multiaddr, error) {
	timer := prometheus.NewTimer(metrics.ResolveDurationHistogram)
	defer timer.ObserveDuration()

	reg := opts.registry()
	seen := make(map[string]bool)
	var out []maddr.Multiaddr
	maxDepthReached := 0

	err := resolveInto(ctx, reg, res, m, opts.maxDepth(), 0, seen, &out, &maxDepthReached)
	metrics.ResolveRecursionDepthHistogram.Observe(float64(maxDepthReached))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resolveInto(ctx context.Context, reg *protocol.Registry, res NameResolver, m maddr.Multiaddr, maxDepth, depth int, seen map[string]bool, out *[]maddr.Multiaddr, maxDepthReached *int) error {
	if depth > *maxDepthReached {
		*maxDepthReached = depth
	}
	select {
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return maerr.ErrResolutionTimeout
		}
		return maerr.ErrCancelled
	default:
	}

	if depth >= maxDepth {
		return maerr.ErrRecursionLimit
	}
	if depth > maxDepth/2 {
		recursionWarning.Println("multiaddr resolve: recursion depth approaching limit")
	}

	comps, err := m.Components()
	if err != nil {
		return err
	}

	idx := -1
	for i, c := range comps {
		if c.Proto.Resolvable {
			idx = i
			break
		}
	}
	if idx == -1 {
		addToSeen(seen, out, m)
		return nil
	}

	prefix := comps[:idx]
	target := comps[idx]
	suffix := comps[idx+1:]

	expansions, err := expand(ctx, res, target, suffix, reg)
	if err != nil {
		return err
	}
	metrics.ResolveExpansionCount.With(prometheus.Labels{"protocol": target.Proto.Name}).Add(float64(len(expansions)))

	for _, exp := range expansions {
		combined := make([]wire.Component, 0, len(prefix)+len(exp)+len(suffix))
		combined = append(combined, prefix...)
		combined = append(combined, exp...)
		combined = append(combined, suffix...)
		next := maddr.NewFromComponents(reg, combined)
		if err := resolveInto(ctx, reg, res, next, maxDepth, depth+1, seen, out, maxDepthReached); err != nil {
			return err
		}
	}
	return nil
}

func addToSeen(seen map[string]bool, out *[]maddr.Multiaddr, m maddr.Multiaddr) {
	key := m.HashKey()
	if seen[key] {
		return
	}
	seen[key] = true
	*out = append(*out, m)
}

// expand performs the single capability call(s) needed to expand one
// resolvable component, returning a set of replacement component
// sequences (each one substituted for target in turn by the caller).
func expand(ctx context.Context, res NameResolver, target wire.Component, suffix []wire.Component, reg *protocol.Registry) ([][]wire.Component, error) {
	name, err := target.Proto.Codec.BytesToText(target.Value)
	if err != nil {
		return nil, err
	}

	switch target.Proto.Name {
	case "dns4":
		ips, err := raced(ctx, func(ctx context.Context) ([]net.IP, error) { return res.QueryA(ctx, name) })
		if err != nil {
			return nil, classifyFailure("dns4", err)
		}
		return ipsToComponents(reg, ips, "ip4")
	case "dns6":
		ips, err := raced(ctx, func(ctx context.Context) ([]net.IP, error) { return res.QueryAAAA(ctx, name) })
		if err != nil {
			return nil, classifyFailure("dns6", err)
		}
		return ipsToComponents(reg, ips, "ip6")
	case "dns":
		return expandDNS(ctx, res, reg, name)
	case "dnsaddr":
		return expandDNSAddr(ctx, res, reg, name, suffix)
	default:
		return nil, &maerr.UnknownProtocolError{Name: target.Proto.Name, ByName: true}
	}
}

// expandDNS issues A and AAAA queries concurrently and joins their results,
// the teacher's socket-monitor fan-out/join shape applied to two
// independent DNS lookups instead of two independent sockets.
func expandDNS(ctx context.Context, res NameResolver, reg *protocol.Registry, name string) ([][]wire.Component, error) {
	type result struct {
		ips []net.IP
		err error
	}
	aCh := make(chan result, 1)
	aaaaCh := make(chan result, 1)

	go func() {
		ips, err := raced(ctx, func(ctx context.Context) ([]net.IP, error) { return res.QueryA(ctx, name) })
		aCh <- result{ips, err}
	}()
	go func() {
		ips, err := raced(ctx, func(ctx context.Context) ([]net.IP, error) { return res.QueryAAAA(ctx, name) })
		aaaaCh <- result{ips, err}
	}()

	aRes, aaaaRes := <-aCh, <-aaaaCh

	if aRes.err != nil && aaaaRes.err != nil {
		return nil, classifyFailure("dns", aRes.err)
	}

	var out [][]wire.Component
	if aRes.err == nil {
		v4, err := ipsToComponents(reg, aRes.ips, "ip4")
		if err != nil {
			return nil, err
		}
		out = append(out, v4...)
	}
	if aaaaRes.err == nil {
		v6, err := ipsToComponents(reg, aaaaRes.ips, "ip6")
		if err != nil {
			return nil, err
		}
		out = append(out, v6...)
	}
	return out, nil
}

// expandDNSAddr issues the _dnsaddr.<name> TXT query and parses each
// "dnsaddr=<multiaddr>" record, keeping only records compatible with
// suffix: if suffix carries a p2p component, a record is kept only if it
// ends with a matching p2p component (the peer-id from the original input
// is authoritative and is preserved unmodified in the final address via
// suffix itself, not via the record's own copy).
func expandDNSAddr(ctx context.Context, res NameResolver, reg *protocol.Registry, name string, suffix []wire.Component) ([][]wire.Component, error) {
	records, err := raced(ctx, func(ctx context.Context) ([]string, error) { return res.QueryTXT(ctx, "_dnsaddr."+name) })
	if err != nil {
		return nil, classifyFailure("dnsaddr", err)
	}

	var wantPeerID string
	var havePeerID bool
	for i := range suffix {
		if wantPeerID, havePeerID = peerIDValue(suffix[:i+1]); havePeerID {
			break
		}
	}

	var out [][]wire.Component
	for _, rec := range records {
		value := strings.TrimPrefix(rec, "dnsaddr=")
		if value == rec {
			continue // not a dnsaddr= record; tolerate and skip (best-effort merge)
		}
		comps, err := text.Parse(reg, value)
		if err != nil {
			continue // per-record failures are tolerated
		}
		if havePeerID {
			recPeerID, ok := peerIDValue(comps)
			if !ok || recPeerID != wantPeerID {
				continue
			}
			// Drop the record's own trailing peer-id: the caller's suffix
			// supplies it, so it is not duplicated in the combined address.
			comps = comps[:len(comps)-1]
		}
		out = append(out, comps)
	}
	if len(out) == 0 && len(records) > 0 {
		cause := error(fmt.Errorf("no dnsaddr record compatible with suffix"))
		if havePeerID {
			cause = maerr.ErrPeerIDMismatch
		}
		return nil, &maerr.ResolutionFailedError{Component: "dnsaddr", Cause: cause}
	}
	return out, nil
}

func peerIDValue(comps []wire.Component) (string, bool) {
	if len(comps) == 0 {
		return "", false
	}
	last := comps[len(comps)-1]
	if last.Proto.Name != "p2p" && last.Proto.Name != "ipfs" {
		return "", false
	}
	id, err := last.Proto.Codec.BytesToText(last.Value)
	if err != nil {
		return "", false
	}
	return id, true
}

func ipsToComponents(reg *protocol.Registry, ips []net.IP, proto string) ([][]wire.Component, error) {
	desc, err := reg.ByName(proto)
	if err != nil {
		return nil, err
	}
	var out [][]wire.Component
	for _, ip := range ips {
		var b []byte
		if proto == "ip4" {
			v4 := ip.To4()
			if v4 == nil {
				continue
			}
			b = v4
		} else {
			v6 := ip.To16()
			if v6 == nil || ip.To4() != nil {
				continue
			}
			b = v6
		}
		out = append(out, []wire.Component{{Proto: desc, Value: b}})
	}
	return out, nil
}

// raced runs fn in a goroutine and returns its result, unless ctx is
// cancelled first -- the single-call analogue of
// namespaces.WatchForNetworkNamespaces's "goroutine flips a flag on
// ctx.Done()" shape, here selecting on a result channel instead of a flag
// checked by a loop.
func raced[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		if ctx.Err() == context.DeadlineExceeded {
			return zero, maerr.ErrResolutionTimeout
		}
		return zero, maerr.ErrCancelled
	case r := <-ch:
		return r.v, r.err
	}
}

// classifyFailure turns a capability failure into the taxonomy spec.md §7
// names: a scoped deadline or cancellation from raced passes through
// unchanged (it's already ErrResolutionTimeout/ErrCancelled), a capability
// error reporting its own timeout (net.Error's Timeout() method, the shape
// res.QueryA/QueryAAAA/QueryTXT fail with per §6) maps to
// ErrResolutionTimeout, and anything else wraps as ResolutionFailedError.
func classifyFailure(component string, err error) error {
	if err == maerr.ErrResolutionTimeout || err == maerr.ErrCancelled {
		return err
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return maerr.ErrResolutionTimeout
	}
	return &maerr.ResolutionFailedError{Component: component, Cause: err}
}
