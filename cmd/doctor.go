package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/pairctl/internal/config"
	"github.com/openclaw/pairctl/internal/gateway"
	"github.com/openclaw/pairctl/internal/mesh"
	"github.com/openclaw/pairctl/internal/netresolve"
	"github.com/openclaw/pairctl/internal/system"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report every pairing signal without generating a code",
	Long: `doctor walks the same checks as a normal run (gateway config,
gateway liveness, tailnet membership, serve configuration, local
addresses) and reports each one instead of stopping at the first
failure. Useful when pairing fails and the remediation message alone
is not enough.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fs := system.DefaultFS()
	execer := system.DefaultExecutor()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	settings, _ := config.LoadSettings(fs)

	path, err := config.ResolvePath()
	if err != nil {
		path = "(unresolvable)"
	}
	fmt.Fprintf(out, "Config path: %s\n", path)

	port := config.DefaultPort
	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(out, "Config: %s (%v)\n", statusMark(false), err)
	} else {
		port = cfg.GatewayPort
		fmt.Fprintf(out, "Config: %s (token present, port %d)\n", statusMark(true), port)
	}

	probe := gateway.NewProbe(execer, settings.ProbeTimeout())
	running := probe.IsRunning(ctx, port)
	fmt.Fprintf(out, "Gateway on port %d: %s\n", port, statusMark(running))

	status := mesh.NewStatusQuery(execer)
	serve := mesh.NewServeQuery(execer)

	// Each signal is queried once; the candidate is derived from what
	// was already gathered rather than re-running resolution.
	sctx, cancel := context.WithTimeout(ctx, settings.StatusTimeout())
	defer cancel()
	hostname, onMesh := status.SelfHostname(sctx)

	proxied := false
	if onMesh {
		fmt.Fprintf(out, "Tailnet: %s (%s)\n", statusMark(true), hostname)
		vctx, cancel := context.WithTimeout(ctx, settings.ServeTimeout())
		defer cancel()
		proxied = serve.ProxiedOnHTTPS(vctx, port)
		fmt.Fprintf(out, "Serve on 443: %s\n", statusMark(proxied))
		if !proxied {
			fmt.Fprintf(out, "  setup: %s\n", mesh.SetupCommand(port))
		}
	} else {
		fmt.Fprintf(out, "Tailnet: %s (not joined)\n", statusMark(false))
	}

	switch {
	case onMesh && proxied:
		fmt.Fprintf(out, "Candidate: %s:%d (%s)\n", hostname, netresolve.HTTPSPort, netresolve.ModeMesh)
	case onMesh:
		fmt.Fprintf(out, "Candidate: none (serve layer not configured)\n")
	default:
		if addr, ok := netresolve.FirstLocalIPv4(nil); ok {
			fmt.Fprintf(out, "Candidate: %s:%d (%s)\n", addr, port, netresolve.ModeLocal)
		} else {
			fmt.Fprintf(out, "Candidate: none (no usable local address)\n")
		}
	}

	return nil
}

func statusMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
