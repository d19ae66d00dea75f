package api

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when the backend gives no usable message.
const GenericFailureMessage = "Terjadi kesalahan. Coba lagi."

var (
	// ErrInvalidCredentials is returned when the backend rejects a login or
	// registration credential pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when an authenticated call is answered
	// with an auth rejection. The registered expiry handler has already run
	// by the time callers see this.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotFound is returned when the requested subject does not exist.
	ErrNotFound = errors.New("not found")
)

// Error carries the backend-provided failure message for a request. Status
// is zero for transport-level failures.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns text safe to surface to the operator: the backend's
// message when present, otherwise the generic fallback. Never a raw error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Email atau password salah."
	case errors.Is(err, ErrSessionExpired):
		return "Sesi berakhir. Silakan login kembali."
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan."
	}
	return GenericFailureMessage
}
