package errors

import (
	"errors"
	"fmt"
)

// Exit codes for pairctl. The external contract is binary: a pairing
// code was rendered (0) or it was not (1).
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
)

// PairError is the base error type for pairctl. Remedy carries the
// exact command or action the user should take; the CLI prints it
// alongside the message.
type PairError struct {
	Code    int
	Message string
	Remedy  string
	Cause   error
}

func (e *PairError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PairError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error.
func (e *PairError) ExitCode() int {
	return e.Code
}

// New creates a new PairError.
func New(message, remedy string) *PairError {
	return &PairError{
		Code:    ExitGeneralError,
		Message: message,
		Remedy:  remedy,
	}
}

// Wrap wraps an existing error with a PairError.
func Wrap(message, remedy string, cause error) *PairError {
	return &PairError{
		Code:    ExitGeneralError,
		Message: message,
		Remedy:  remedy,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigNotFound returns an error for a missing gateway config file.
func ConfigNotFound(path string) *PairError {
	return New(
		fmt.Sprintf("no gateway config found at %s", path),
		"install and configure the OpenClaw gateway first: openclaw setup",
	)
}

// ConfigParseError returns an error for an unreadable gateway config.
func ConfigParseError(path string, cause error) *PairError {
	return Wrap(
		fmt.Sprintf("gateway config at %s is not valid JSON", path),
		"re-run the gateway setup to regenerate it: openclaw setup",
		cause,
	)
}

// TokenMissing returns an error for a config without an auth token.
func TokenMissing(path string) *PairError {
	return New(
		fmt.Sprintf("gateway config at %s has no auth token", path),
		"re-run the gateway setup to issue a token: openclaw setup",
	)
}

// GatewayNotRunning returns an error when no gateway answers on the port.
func GatewayNotRunning(port int) *PairError {
	return New(
		fmt.Sprintf("no gateway is listening on port %d", port),
		"start the gateway service and try again: openclaw gateway start",
	)
}

// NoReachableAddress returns an error when resolution found no candidate.
func NoReachableAddress() *PairError {
	return New(
		"no reachable address for this machine",
		"join a network, or install Tailscale so the phone can reach this machine from anywhere",
	)
}

// ServeNotConfigured returns the hard-stop error for a mesh hostname
// that is not yet exposed through the serve layer. setupCommand is the
// exact one-time command the user must run.
func ServeNotConfigured(hostname, setupCommand string) *PairError {
	return New(
		fmt.Sprintf("%s is on your tailnet but the gateway port is not served over HTTPS", hostname),
		fmt.Sprintf("run this once, then re-run pairctl: %s", setupCommand),
	)
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	var pairErr *PairError
	if errors.As(err, &pairErr) {
		return pairErr.ExitCode()
	}
	return ExitGeneralError
}

// GetRemedy extracts the remediation hint from an error, if any.
func GetRemedy(err error) string {
	var pairErr *PairError
	if errors.As(err, &pairErr) {
		return pairErr.Remedy
	}
	return ""
}
