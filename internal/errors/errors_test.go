package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetExitCode_PairError(t *testing.T) {
	err := GatewayNotRunning(18789)
	if got := GetExitCode(err); got != ExitGeneralError {
		t.Errorf("GetExitCode() = %d, want %d", got, ExitGeneralError)
	}
}

func TestGetExitCode_WrappedPairError(t *testing.T) {
	inner := ConfigNotFound("/home/u/.openclaw/openclaw.json")
	err := fmt.Errorf("loading config: %w", inner)
	if got := GetExitCode(err); got != ExitGeneralError {
		t.Errorf("GetExitCode() = %d, want %d", got, ExitGeneralError)
	}
}

func TestGetExitCode_PlainError(t *testing.T) {
	if got := GetExitCode(errors.New("boom")); got != ExitGeneralError {
		t.Errorf("GetExitCode() = %d, want %d", got, ExitGeneralError)
	}
}

func TestPairError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := ConfigParseError("/tmp/openclaw.json", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "unexpected end of JSON input") {
		t.Errorf("Error() should include cause, got: %s", err.Error())
	}
}

func TestGetRemedy(t *testing.T) {
	err := ServeNotConfigured("mymac.tailnet.ts.net", "tailscale serve --bg 18789")
	remedy := GetRemedy(err)
	if !strings.Contains(remedy, "tailscale serve --bg 18789") {
		t.Errorf("remedy should name the setup command, got: %s", remedy)
	}

	if got := GetRemedy(errors.New("boom")); got != "" {
		t.Errorf("plain error should have no remedy, got: %s", got)
	}
}

func TestConstructorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     *PairError
		want    string
		remedy  string
	}{
		{"config not found", ConfigNotFound("/x/openclaw.json"), "/x/openclaw.json", "openclaw setup"},
		{"token missing", TokenMissing("/x/openclaw.json"), "no auth token", "openclaw setup"},
		{"gateway not running", GatewayNotRunning(18789), "18789", "openclaw gateway start"},
		{"no reachable address", NoReachableAddress(), "no reachable address", "Tailscale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("Error() = %q, want substring %q", tt.err.Error(), tt.want)
			}
			if !strings.Contains(tt.err.Remedy, tt.remedy) {
				t.Errorf("Remedy = %q, want substring %q", tt.err.Remedy, tt.remedy)
			}
		})
	}
}
