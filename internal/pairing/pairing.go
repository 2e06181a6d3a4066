// Package pairing builds the connection descriptor the mobile client
// scans: host, port, token and mode flattened into one URI.
package pairing

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/openclaw/pairctl/internal/netresolve"
)

// Scheme is the custom URI scheme the mobile app registers.
const Scheme = "openclaw"

// Descriptor is the pairing payload. Built once per run and never
// mutated; all fields are well-formed by construction at this point in
// the pipeline.
type Descriptor struct {
	Host  string
	Port  int
	Token string
	Mode  netresolve.Mode
}

// FromCandidate merges the resolved candidate with the gateway token.
func FromCandidate(c *netresolve.Candidate, token string) *Descriptor {
	return &Descriptor{
		Host:  c.Host,
		Port:  c.Port,
		Token: token,
		Mode:  c.Mode,
	}
}

// Encode serializes the descriptor as
// openclaw://connect?host=<h>&port=<p>&token=<t>&mode=<m> with
// percent-encoded values. Parameter order is fixed so the QR payload is
// stable for identical inputs.
func (d *Descriptor) Encode() string {
	return fmt.Sprintf("%s://connect?host=%s&port=%d&token=%s&mode=%s",
		Scheme,
		url.QueryEscape(d.Host),
		d.Port,
		url.QueryEscape(d.Token),
		url.QueryEscape(string(d.Mode)),
	)
}

// Parse is the inverse of Encode. Used by tests and diagnostics; the
// mobile app has its own parser.
func Parse(uri string) (*Descriptor, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid pairing URI: %w", err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("unexpected scheme %q", u.Scheme)
	}
	if u.Host != "connect" {
		return nil, fmt.Errorf("unexpected action %q", u.Host)
	}

	q := u.Query()

	port, err := strconv.Atoi(q.Get("port"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid port %q", q.Get("port"))
	}

	mode := netresolve.Mode(q.Get("mode"))
	if mode != netresolve.ModeMesh && mode != netresolve.ModeLocal {
		return nil, fmt.Errorf("invalid mode %q", q.Get("mode"))
	}

	d := &Descriptor{
		Host:  q.Get("host"),
		Port:  port,
		Token: q.Get("token"),
		Mode:  mode,
	}
	if d.Host == "" {
		return nil, fmt.Errorf("missing host")
	}
	if d.Token == "" {
		return nil, fmt.Errorf("missing token")
	}
	return d, nil
}
