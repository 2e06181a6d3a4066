// Package netresolve picks the best externally reachable address for
// this machine: the mesh overlay hostname when present (and served over
// HTTPS), otherwise the first routable local IPv4 address.
package netresolve

import (
	"context"
	"net"
	"time"

	"github.com/openclaw/pairctl/internal/errors"
	"github.com/openclaw/pairctl/internal/logging"
	"github.com/openclaw/pairctl/internal/mesh"
)

// HTTPSPort is where the serve layer exposes proxied ports.
const HTTPSPort = 443

// Mode says how the mobile client should reach the host.
type Mode string

const (
	// ModeMesh means Host is a mesh-assigned DNS name reachable from
	// anywhere the tailnet reaches.
	ModeMesh Mode = "mesh"

	// ModeLocal means Host is a dotted IPv4 literal on the LAN.
	ModeLocal Mode = "local"
)

// Candidate is the resolved (host, port, mode) triple. Exactly one is
// produced per run; resolution is total-or-fail.
type Candidate struct {
	Host string
	Port int
	Mode Mode
}

// InterfaceSource enumerates local interface addresses. Swappable for
// tests; the default is net.InterfaceAddrs.
type InterfaceSource func() ([]net.Addr, error)

// Resolver runs the ordered mesh-then-local resolution.
type Resolver struct {
	Status        mesh.StatusQuery
	Serve         mesh.ServeQuery
	StatusTimeout time.Duration
	ServeTimeout  time.Duration
	Interfaces    InterfaceSource
}

// NewResolver builds a Resolver with the given overlay queries and
// default timeouts and interface source.
func NewResolver(status mesh.StatusQuery, serve mesh.ServeQuery) *Resolver {
	return &Resolver{
		Status:        status,
		Serve:         serve,
		StatusTimeout: mesh.DefaultStatusTimeout,
		ServeTimeout:  mesh.DefaultServeTimeout,
		Interfaces:    net.InterfaceAddrs,
	}
}

// Resolve picks the connection candidate for port. The mesh overlay
// strictly dominates local addresses: it survives network changes and
// works outside the LAN. A mesh hostname that is not yet proxied is a
// hard stop with setup instructions, not a fallback: direct connections
// to the overlay interface are assumed unroutable.
func (r *Resolver) Resolve(ctx context.Context, port int) (*Candidate, error) {
	sctx, cancel := context.WithTimeout(ctx, r.StatusTimeout)
	defer cancel()

	if hostname, ok := r.Status.SelfHostname(sctx); ok {
		logging.Debug("mesh hostname found", "hostname", hostname)

		vctx, cancel := context.WithTimeout(ctx, r.ServeTimeout)
		defer cancel()

		if r.Serve.ProxiedOnHTTPS(vctx, port) {
			return &Candidate{Host: hostname, Port: HTTPSPort, Mode: ModeMesh}, nil
		}

		return nil, errors.ServeNotConfigured(hostname, mesh.SetupCommand(port))
	}

	logging.Debug("no mesh overlay, falling back to local interfaces")

	if addr, ok := FirstLocalIPv4(r.Interfaces); ok {
		return &Candidate{Host: addr, Port: port, Mode: ModeLocal}, nil
	}

	return nil, errors.NoReachableAddress()
}

// FirstLocalIPv4 returns the first non-loopback, non-link-local IPv4
// address in OS enumeration order. Typical machines expose at most one,
// so no further ranking is applied. A nil source means the real OS
// enumerator.
func FirstLocalIPv4(source InterfaceSource) (string, bool) {
	if source == nil {
		source = net.InterfaceAddrs
	}

	addrs, err := source()
	if err != nil {
		logging.Debug("interface enumeration failed", "err", err)
		return "", false
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip.String(), true
	}

	return "", false
}
