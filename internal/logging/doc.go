// Package logging provides logging utilities for pairctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Styled progress and remediation messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("probing gateway", "port", port)
//	logging.Warn("mesh status query timed out")
//
// # User Output
//
// User-facing messages carry a colored status indicator:
//
//	logging.UserInfo("Resolving a reachable address...")
//	logging.UserSuccess("Gateway is running on port %d", port)
//	logging.UserWarning("settings file is invalid, using defaults")
//	logging.UserError("No gateway config found")
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
