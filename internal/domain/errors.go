package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by services and handlers. Callers match them with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAccessDenied  = errors.New("access denied")
	ErrBanned        = fmt.Errorf("%w: user is banned", ErrAccessDenied)
	ErrQuotaExceeded = fmt.Errorf("%w: daily limit reached", ErrAccessDenied)
	ErrOwnerOnly     = fmt.Errorf("%w: owner only", ErrAccessDenied)
	ErrEntryNotFound = errors.New("queue entry not found")
	ErrDelivery      = errors.New("delivery failed")
	// ErrStaleAction is returned for a control pressed outside the dialogue step it belongs to
	ErrStaleAction = errors.New("action is not available in the current state")
)
