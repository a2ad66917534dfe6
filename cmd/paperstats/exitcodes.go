package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing token, mapping or config)
	ExitDataError   = 3 // Data error (malformed listing, bad year values)

	// COCI exit codes used by the metadata command
	ExitCOCINotFound  = 4 // DOI has no record in COCI
	ExitCOCIAuthError = 5 // Missing or rejected access token
	ExitCOCIAPIError  = 6 // API error (rate limit, network, bad response)
)
