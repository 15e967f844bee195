// Package logging provides logging utilities for patchctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("resolving spec", "label", label, "transport", kind)
//	logging.Warn("listing retry", "transport", kind)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Using profile %s", name)
//	logging.UserSuccess("Connected: %s", label)
//	logging.UserWarning("Warning: could not find %s", label)
//	logging.UserError("Failed: %s: %v", label, err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
