package service

import (
	"errors"
	"fmt"
)

// Stable error taxonomy. Handlers branch on these with errors.Is/As and
// clients branch on the resulting reason strings, so the messages here are
// part of the API contract.
var (
	// Not found
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrClaimNotFound   = errors.New("access request not found")
	ErrInquiryNotFound = errors.New("inquiry not found")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")

	// Permission
	ErrForbidden = errors.New("access denied")

	// Ledger conflicts. A rejected claim is terminal but the pair may
	// try again with a fresh UTR; these three are permanent for the
	// current state and only the other party's action resolves them.
	ErrDuplicateUTR  = errors.New("utr number already used")
	ErrClaimPending  = errors.New("access request already pending approval")
	ErrClaimApproved = errors.New("profile access already granted")
	ErrClaimDecided  = errors.New("access request already decided")
)

// ValidationError reports a field-level input problem the caller can fix
// and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
