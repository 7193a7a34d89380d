// Command maddr is a small CLI over the core multiaddr library: parse and
// canonicalize a multiaddr, resolve its dns/dns4/dns6/dnsaddr components via
// the host's real resolver, or expand a wildcard-bound address against the
// host's real network interfaces.
//
// Grounded on the teacher's main.go flag/init/rtx.Must/flagx.ArgsFromEnv
// wiring, generalized from a netlink-polling daemon to a one-shot CLI: the
// ambient stack (log flags, env-sourced flags, fatal-on-error helper,
// Prometheus export on a side port) is kept, only the business logic
// changes.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"net"

	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	maddr "github.com/m-lab/go-multiaddr"
	"github.com/m-lab/go-multiaddr/resolve"
	"github.com/m-lab/go-multiaddr/thinwaist"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

var (
	addr      = flag.String("addr", "", "A multiaddr in canonical text form, e.g. /ip4/1.2.3.4/tcp/4001")
	hexBytes  = flag.String("hex", "", "A multiaddr in canonical binary form, hex-encoded")
	doResolve = flag.Bool("resolve", false, "Resolve dns/dns4/dns6/dnsaddr components in -addr against the system resolver")
	doExpand  = flag.Bool("expand", false, "Expand a wildcard-bound -addr (/ip4/0.0.0.0/... or /ip6/::/...) against local interfaces")
	promPort  = flag.String("prom", "", "Prometheus metrics export address and port, e.g. ':9090'. Empty disables export")
)

func main() {
	flag.Parse()
	flagx.ArgsFromEnv(flag.CommandLine)

	if *promPort != "" {
		promSrv := prometheusx.MustStartPrometheus(*promPort)
		defer promSrv.Shutdown(context.Background())
	}

	m := parseInput()

	switch {
	case *doResolve:
		runResolve(m)
	case *doExpand:
		runExpand(m)
	default:
		fmt.Println(m.String())
		fmt.Println(hex.EncodeToString(m.Bytes()))
	}
}

func parseInput() maddr.Multiaddr {
	switch {
	case *addr != "":
		m, err := maddr.NewFromText(*addr)
		rtx.Must(err, "could not parse -addr %q", *addr)
		return m
	case *hexBytes != "":
		b, err := hex.DecodeString(*hexBytes)
		rtx.Must(err, "could not decode -hex %q", *hexBytes)
		m, err := maddr.NewFromBytes(b)
		rtx.Must(err, "could not parse -hex %q as a multiaddr", *hexBytes)
		return m
	default:
		log.Fatal("one of -addr or -hex is required")
		panic("unreachable")
	}
}

func runResolve(m maddr.Multiaddr) {
	results, err := resolve.Resolve(context.Background(), m, systemNameResolver{r: net.DefaultResolver}, resolve.Options{})
	rtx.Must(err, "resolve failed")
	for _, r := range results {
		fmt.Println(r.String())
	}
}

func runExpand(m maddr.Multiaddr) {
	results, err := thinwaist.Expand(m, systemIfaceProvider{})
	rtx.Must(err, "expand failed")
	for _, r := range results {
		fmt.Println(r.String())
	}
}

// systemNameResolver adapts *net.Resolver to resolve.NameResolver. It lives
// only here in cmd/maddr: the core packages never import net's live DNS
// client, only this interface.
type systemNameResolver struct {
	r *net.Resolver
}

func (s systemNameResolver) QueryA(ctx context.Context, name string) ([]net.IP, error) {
	return s.lookup(ctx, name, "ip4")
}

func (s systemNameResolver) QueryAAAA(ctx context.Context, name string) ([]net.IP, error) {
	return s.lookup(ctx, name, "ip6")
}

func (s systemNameResolver) lookup(ctx context.Context, name, network string) ([]net.IP, error) {
	ips, err := s.r.LookupIP(ctx, network, name)
	if err != nil {
		return nil, err
	}
	return ips, nil
}

func (s systemNameResolver) QueryTXT(ctx context.Context, name string) ([]string, error) {
	return s.r.LookupTXT(ctx, name)
}

// systemIfaceProvider adapts net.Interfaces to thinwaist.NetIfaceProvider.
type systemIfaceProvider struct{}

func (systemIfaceProvider) List() ([]thinwaist.IfaceAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var out []thinwaist.IfaceAddr
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ip := addrIP(a)
			if ip == nil {
				continue
			}
			out = append(out, thinwaist.IfaceAddr{
				Name:      iface.Name,
				IP:        ip,
				Loopback:  iface.Flags&net.FlagLoopback != 0,
				Up:        iface.Flags&net.FlagUp != 0,
				Multicast: iface.Flags&net.FlagMulticast != 0,
			})
		}
	}
	return out, nil
}

func addrIP(a net.Addr) net.IP {
	switch v := a.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	default:
		host, _, err := net.SplitHostPort(a.String())
		if err != nil {
			return nil
		}
		return net.ParseIP(host)
	}
}
