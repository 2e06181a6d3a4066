// Package mesh queries the machine's mesh-VPN overlay (Tailscale) for
// its stable hostname and for the serve layer that can expose a local
// port on HTTPS 443.
package mesh

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/openclaw/pairctl/internal/logging"
	"github.com/openclaw/pairctl/internal/system"
)

// Default bounds for the two overlay queries.
const (
	DefaultStatusTimeout = 5 * time.Second
	DefaultServeTimeout  = 3 * time.Second
)

// StatusQuery resolves this machine's overlay identity.
type StatusQuery interface {
	// SelfHostname returns the machine's mesh DNS name with any
	// trailing dot stripped. ok is false when the machine is not on
	// an overlay, when the tool is absent, and when the query timed
	// out; all are equivalent to "no overlay".
	SelfHostname(ctx context.Context) (hostname string, ok bool)
}

// ServeQuery inspects the overlay's reverse-proxy layer.
type ServeQuery interface {
	// ProxiedOnHTTPS reports whether the serve layer already exposes
	// port on the standard HTTPS port. Failures and timeouts report
	// false.
	ProxiedOnHTTPS(ctx context.Context, port int) bool
}

// NewStatusQuery returns a StatusQuery backed by the tailscale CLI.
func NewStatusQuery(exec system.CommandExecutor) StatusQuery {
	return &tailscaleStatus{exec: exec}
}

// NewServeQuery returns a ServeQuery backed by the tailscale CLI.
func NewServeQuery(exec system.CommandExecutor) ServeQuery {
	return &tailscaleServe{exec: exec}
}

// SetupCommand is the one-time command that exposes port through the
// serve layer. Printed verbatim in the remediation message.
func SetupCommand(port int) string {
	return shellquote.Join("tailscale", "serve", "--bg", strconv.Itoa(port))
}

// statusOutput is the slice of `tailscale status --json` we care about.
type statusOutput struct {
	Self struct {
		DNSName string `json:"DNSName"`
	} `json:"Self"`
}

type tailscaleStatus struct {
	exec system.CommandExecutor
}

func (t *tailscaleStatus) SelfHostname(ctx context.Context) (string, bool) {
	if _, err := t.exec.LookPath("tailscale"); err != nil {
		logging.Debug("tailscale not installed")
		return "", false
	}

	out, err := t.exec.Execute(ctx, "tailscale", "status", "--json")
	if err != nil {
		if ctx.Err() != nil {
			logging.Warn("mesh status query timed out, assuming no overlay")
		} else {
			logging.Debug("tailscale status failed", "err", err)
		}
		return "", false
	}

	var status statusOutput
	if err := json.Unmarshal(out, &status); err != nil {
		logging.Debug("tailscale status output not parseable", "err", err)
		return "", false
	}

	hostname := strings.TrimSuffix(strings.TrimSpace(status.Self.DNSName), ".")
	if hostname == "" {
		return "", false
	}
	return hostname, true
}

type tailscaleServe struct {
	exec system.CommandExecutor
}

func (t *tailscaleServe) ProxiedOnHTTPS(ctx context.Context, port int) bool {
	out, err := t.exec.Execute(ctx, "tailscale", "serve", "status")
	if err != nil {
		if ctx.Err() != nil {
			logging.Warn("serve status query timed out, treating port as not served")
		} else {
			logging.Debug("tailscale serve status failed", "err", err)
		}
		return false
	}
	return serveMentionsPort(string(out), port)
}

// serveMentionsPort decides whether a serve-status text exposes port on
// HTTPS 443. The status must reference HTTPS or :443, and the port must
// appear as a whole token so that 8080 never satisfies 80.
func serveMentionsPort(status string, port int) bool {
	lower := strings.ToLower(status)
	if !strings.Contains(lower, "https") && !strings.Contains(lower, ":443") {
		return false
	}

	re := regexp.MustCompile(fmt.Sprintf(`\b%d\b`, port))
	return re.MatchString(status)
}
