package service

import "errors"

// Typed failures returned by the service layer. Handlers map these onto HTTP
// statuses with errors.Is; raw database errors never leave this package as-is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("access denied")
	ErrExpired            = errors.New("expired")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidOtp         = errors.New("invalid otp")
	ErrOtpExpired         = errors.New("otp expired")
)
