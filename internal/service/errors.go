package service

import "errors"

// Validation errors. Handlers map these to 400.
var (
	ErrUnknownToken     = errors.New("unknown token")
	ErrInvalidLookback  = errors.New("invalid lookback")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidOrderHash = errors.New("invalid order hash")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownToken) ||
		errors.Is(err, ErrInvalidLookback) ||
		errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrInvalidOrderHash)
}
