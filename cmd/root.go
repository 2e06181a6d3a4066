package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/pairctl/internal/config"
	"github.com/openclaw/pairctl/internal/errors"
	"github.com/openclaw/pairctl/internal/gateway"
	"github.com/openclaw/pairctl/internal/logging"
	"github.com/openclaw/pairctl/internal/mesh"
	"github.com/openclaw/pairctl/internal/netresolve"
	"github.com/openclaw/pairctl/internal/pairing"
	"github.com/openclaw/pairctl/internal/qr"
	"github.com/openclaw/pairctl/internal/system"
)

var (
	verbose    bool
	jsonOutput bool
)

// interfaceSource overrides local interface enumeration in tests.
var interfaceSource netresolve.InterfaceSource

var rootCmd = &cobra.Command{
	Use:   "pairctl",
	Short: "Pair a mobile client with your OpenClaw gateway",
	Long: `pairctl finds the best reachable address for the locally running
OpenClaw gateway and renders the connection parameters as a QR code.

Resolution prefers your Tailscale hostname (served over HTTPS) so the
pairing survives network changes and works away from the LAN; without a
tailnet it falls back to the machine's LAN IPv4 address.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Flags documented by newer releases are ignored, not rejected.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE: runPair,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logging.UserError("%v", err)
		logging.UserRemedy(errors.GetRemedy(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// runPair is the whole pairing flow: config, liveness, resolution,
// encoding, rendering. Strictly linear; the first failure wins.
func runPair(cmd *cobra.Command, args []string) error {
	fs := system.DefaultFS()
	execer := system.DefaultExecutor()
	ctx := cmd.Context()

	settings, warn := config.LoadSettings(fs)
	if warn != nil {
		logging.UserWarning("settings file is invalid, using defaults: %v", warn)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	logging.UserSuccess("Found gateway config (port %d)", cfg.GatewayPort)

	probe := gateway.NewProbe(execer, settings.ProbeTimeout())
	if !probe.IsRunning(ctx, cfg.GatewayPort) {
		return errors.GatewayNotRunning(cfg.GatewayPort)
	}
	logging.UserSuccess("Gateway is running")

	logging.UserInfo("Resolving a reachable address...")
	resolver := netresolve.NewResolver(mesh.NewStatusQuery(execer), mesh.NewServeQuery(execer))
	resolver.StatusTimeout = settings.StatusTimeout()
	resolver.ServeTimeout = settings.ServeTimeout()
	if interfaceSource != nil {
		resolver.Interfaces = interfaceSource
	}

	candidate, err := resolver.Resolve(ctx, cfg.GatewayPort)
	if err != nil {
		return err
	}

	switch candidate.Mode {
	case netresolve.ModeMesh:
		logging.UserSuccess("Using tailnet address %s (reachable from anywhere)", candidate.Host)
	case netresolve.ModeLocal:
		logging.UserSuccess("Using LAN address %s (phone must be on the same network)", candidate.Host)
	}

	uri := pairing.FromCandidate(candidate, cfg.GatewayToken).Encode()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	renderer := qr.NewTerminalRenderer(settings.QRLevel)
	if err := renderer.Render(out, uri); err != nil {
		return errors.Wrap("could not render the pairing code", "", err)
	}
	fmt.Fprintf(out, "\n%s\n\n", uri)

	logging.UserSuccess("Scan the code with the OpenClaw app to pair")
	return nil
}
