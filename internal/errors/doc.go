// Package errors provides typed errors with exit codes for patchctl.
//
// # Error Types
//
// PatchError is the base error type that wraps an error with an exit code:
//
//	type PatchError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess         = 0  // Success
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitProfileNotFound = 2  // Connection profile does not exist
//	ExitPartialFailure  = 3  // Some requested connections failed
//	ExitTransportFailed = 4  // Transport listing/query failed
//	ExitContainerFailed = 5  // Session container operation failed
//	ExitConfigError     = 6  // Configuration error
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.ProfileNotFound("edo72")
//	errors.PartialFailure(2, 3)
//	errors.TransportFailed("seq", err)
//	errors.ContainerFailed("start", err)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
