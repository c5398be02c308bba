package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is a network-level failure talking to the vendor
	ErrTransport = errors.New("transport failure")

	// ErrAuthFail means the vendor rejected the session or credentials.
	// The session layer resets and retries exactly once.
	ErrAuthFail = errors.New("authentication failed")

	// ErrPinLocked means the account PIN is locked out. Wraps ErrAuthFail
	// for errors.Is, but is never auto-retried.
	ErrPinLocked = fmt.Errorf("%w: pin locked", ErrAuthFail)

	// ErrActionInProgress rejects a command while a prior one is pending
	ErrActionInProgress = errors.New("action already in progress")

	// ErrVehicleNotFound permits one vehicle list refresh before failing
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrOtpRequired means the vendor unexpectedly demanded an OTP on an
	// account configured without an OTP prompt
	ErrOtpRequired = errors.New("otp verification required")

	// ErrTimeout is an operation-level timeout
	ErrTimeout = errors.New("timeout")
)
