package cmd

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"

	pairerrors "github.com/openclaw/pairctl/internal/errors"
	"github.com/openclaw/pairctl/internal/logging"
	"github.com/openclaw/pairctl/internal/system"
)

const (
	testConfigPath = "/state/openclaw.json"
	validConfig    = `{"gateway":{"auth":{"token":"tok-123"},"port":18789}}`
	lsofListenLine = "openclaw  4242 user  23u IPv4 0x0 0t0 TCP 127.0.0.1:18789 (LISTEN)"
	statusJSON     = `{"Self":{"DNSName":"mymac.tailnet.ts.net."}}`
	serveProxied   = "https://mymac.tailnet.ts.net:443/\n|-- proxy http://127.0.0.1:18789\n"
)

// testEnv wires mock FS/executor into the command and captures output.
type testEnv struct {
	fs   *system.MockFS
	exec *system.MockExecutor

	stdout bytes.Buffer
	user   bytes.Buffer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		fs:   system.NewMockFS(),
		exec: system.NewMockExecutor(),
	}

	system.SetDefaultFS(env.fs)
	system.SetDefaultExecutor(env.exec)
	t.Cleanup(system.ResetDefaults)

	origOut, origErr := logging.UserOut, logging.UserErr
	logging.UserOut, logging.UserErr = &env.user, &env.user
	t.Cleanup(func() { logging.UserOut, logging.UserErr = origOut, origErr })

	origSource := interfaceSource
	t.Cleanup(func() { interfaceSource = origSource })

	t.Setenv("OPENCLAW_CONFIG_PATH", testConfigPath)
	t.Setenv("XDG_CONFIG_HOME", "/xdg-empty")

	return env
}

func withLocalAddr(cidr string) {
	interfaceSource = func() ([]net.Addr, error) {
		ip, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		ipNet.IP = ip
		return []net.Addr{ipNet}, nil
	}
}

func (e *testEnv) execute(args ...string) error {
	verbose = false
	jsonOutput = false

	rootCmd.SetArgs(args)
	rootCmd.SetOut(&e.stdout)
	rootCmd.SetErr(&e.stdout)

	err := rootCmd.Execute()

	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)

	return err
}

func TestRun_NoConfig_FailsFast(t *testing.T) {
	env := setupTestEnv(t)

	err := env.execute()
	if err == nil {
		t.Fatal("run without config should fail")
	}
	if pairerrors.GetExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", pairerrors.GetExitCode(err))
	}
	if !strings.Contains(err.Error(), "no gateway config") {
		t.Errorf("error = %v, want config-not-found", err)
	}
	// Fail-fast: no probe, no resolution.
	if len(env.exec.Commands) != 0 {
		t.Errorf("executed %d commands before config check, want 0: %+v",
			len(env.exec.Commands), env.exec.Commands)
	}
}

func TestRun_GatewayDown_StopsBeforeResolution(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	// lsof ran and found nothing listening
	env.exec.AddResponse("lsof", nil, errors.New("exit status 1"))

	err := env.execute()
	if err == nil {
		t.Fatal("run with gateway down should fail")
	}
	if !strings.Contains(err.Error(), "no gateway is listening") {
		t.Errorf("error = %v, want gateway-not-running", err)
	}
	for _, c := range env.exec.Commands {
		if c.Name == "tailscale" {
			t.Error("resolution must not run after a failed gateway probe")
		}
	}
}

func TestRun_MeshProxied(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	env.exec.AddResponse("lsof", []byte(lsofListenLine), nil)
	env.exec.AddResponse("tailscale status", []byte(statusJSON), nil)
	env.exec.AddResponse("tailscale serve", []byte(serveProxied), nil)

	if err := env.execute(); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	out := env.stdout.String()
	want := "openclaw://connect?host=mymac.tailnet.ts.net&port=443&token=tok-123&mode=mesh"
	if !strings.Contains(out, want) {
		t.Errorf("stdout missing pairing URI %q:\n%s", want, out)
	}
}

func TestRun_MeshNotProxied_HardStop(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	env.exec.AddResponse("lsof", []byte(lsofListenLine), nil)
	env.exec.AddResponse("tailscale status", []byte(statusJSON), nil)
	env.exec.AddResponse("tailscale serve", []byte(""), nil)
	withLocalAddr("192.168.1.42/24") // must NOT be used as a fallback

	err := env.execute()
	if err == nil {
		t.Fatal("mesh without serve must hard-stop")
	}
	if !strings.Contains(pairerrors.GetRemedy(err), "tailscale serve --bg 18789") {
		t.Errorf("remedy = %q, want the exact setup command", pairerrors.GetRemedy(err))
	}
	if strings.Contains(env.stdout.String(), "openclaw://") {
		t.Error("no URI should be produced on the serve hard stop")
	}
}

func TestRun_LocalFallback(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	env.exec.AddResponse("lsof", []byte(lsofListenLine), nil)
	env.exec.MissingTools = []string{"tailscale"}
	withLocalAddr("192.168.1.42/24")

	if err := env.execute(); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	want := "openclaw://connect?host=192.168.1.42&port=18789&token=tok-123&mode=local"
	if !strings.Contains(env.stdout.String(), want) {
		t.Errorf("stdout missing %q:\n%s", want, env.stdout.String())
	}
}

func TestRun_UnknownFlagsIgnored(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	env.exec.AddResponse("lsof", []byte(lsofListenLine), nil)
	env.exec.MissingTools = []string{"tailscale"}
	withLocalAddr("192.168.1.42/24")

	if err := env.execute("--relay"); err != nil {
		t.Fatalf("unknown flag should be ignored, got %v", err)
	}
}

func TestRun_Help(t *testing.T) {
	env := setupTestEnv(t)

	if err := env.execute("--help"); err != nil {
		t.Fatalf("--help error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "pairctl") {
		t.Errorf("help output missing usage:\n%s", env.stdout.String())
	}
}

func TestDoctor_ReportsAllSignals(t *testing.T) {
	env := setupTestEnv(t)
	env.fs.AddFile(testConfigPath, []byte(validConfig))
	env.exec.AddResponse("lsof", []byte(lsofListenLine), nil)
	env.exec.AddResponse("tailscale status", []byte(statusJSON), nil)
	env.exec.AddResponse("tailscale serve", []byte(""), nil)

	if err := env.execute("doctor"); err != nil {
		t.Fatalf("doctor error = %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{
		"Config path: " + testConfigPath,
		"Gateway on port 18789: ✓",
		"mymac.tailnet.ts.net",
		"Serve on 443: ✗",
		"tailscale serve --bg 18789",
		"Candidate: none",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctor_MissingConfigStillReports(t *testing.T) {
	env := setupTestEnv(t)
	env.exec.AddResponse("lsof", nil, errors.New("exit status 1"))
	env.exec.MissingTools = []string{"tailscale"}

	if err := env.execute("doctor"); err != nil {
		t.Fatalf("doctor must not fail on missing signals, got %v", err)
	}

	out := env.stdout.String()
	if !strings.Contains(out, "Config: ✗") {
		t.Errorf("doctor should report the missing config:\n%s", out)
	}
	if !strings.Contains(out, "Tailnet: ✗") {
		t.Errorf("doctor should report the missing tailnet:\n%s", out)
	}
}
