package listings

import "errors"

// Write-path failures are surfaced to the submitting user; read-path
// failures never leave the service (empty result instead).
var (
	ErrUnauthorized = errors.New("Unauthorized")
	ErrValidation   = errors.New("Invalid listing draft")
	ErrRemoteWrite  = errors.New("Listing store rejected the write")
)
