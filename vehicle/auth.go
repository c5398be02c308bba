package vehicle

import (
	"errors"

	"github.com/uvolink/uvolink/api"
)

// Session is the part of a brand client the retry helper needs: dropping
// the current credentials and establishing fresh ones.
type Session interface {
	Reset()
	Login() error
}

// RetryAuth runs fn and, on an authentication failure, resets the session
// and retries exactly once. A PIN lockout is never retried since every
// additional attempt extends the lockout.
func RetryAuth[T any](s Session, fn func() (T, error)) (T, error) {
	res, err := fn()

	if errors.Is(err, api.ErrAuthFail) && !errors.Is(err, api.ErrPinLocked) {
		s.Reset()

		if err = s.Login(); err == nil {
			res, err = fn()
		}
	}

	return res, err
}

// RetryAuthE is RetryAuth for error-only operations
func RetryAuthE(s Session, fn func() error) error {
	_, err := RetryAuth(s, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
