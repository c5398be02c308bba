package vehicle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
)

type sessionMock struct {
	resets   int
	logins   int
	loginErr error
}

func (s *sessionMock) Reset() {
	s.resets++
}

func (s *sessionMock) Login() error {
	s.logins++
	return s.loginErr
}

func TestRetryAuth(t *testing.T) {
	s := &sessionMock{}

	calls := 0
	res, err := RetryAuth(s, func() (int, error) {
		calls++
		if calls == 1 {
			return 0, fmt.Errorf("%w: session expired", api.ErrAuthFail)
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.resets)
	assert.Equal(t, 1, s.logins)
}

func TestRetryAuthOnlyOnce(t *testing.T) {
	s := &sessionMock{}

	calls := 0
	_, err := RetryAuth(s, func() (int, error) {
		calls++
		return 0, fmt.Errorf("%w: still expired", api.ErrAuthFail)
	})

	assert.ErrorIs(t, err, api.ErrAuthFail)
	assert.Equal(t, 2, calls, "auth failures retry exactly once")
	assert.Equal(t, 1, s.logins)
}

func TestRetryAuthPinLocked(t *testing.T) {
	s := &sessionMock{}

	calls := 0
	err := RetryAuthE(s, func() error {
		calls++
		return fmt.Errorf("%w: try again later", api.ErrPinLocked)
	})

	assert.ErrorIs(t, err, api.ErrPinLocked)
	assert.Equal(t, 1, calls, "a pin lockout must never be retried")
	assert.Zero(t, s.resets)
	assert.Zero(t, s.logins)
}

func TestRetryAuthOtherErrors(t *testing.T) {
	s := &sessionMock{}

	calls := 0
	_, err := RetryAuth(s, func() (int, error) {
		calls++
		return 0, api.ErrTransport
	})

	assert.ErrorIs(t, err, api.ErrTransport)
	assert.Equal(t, 1, calls)
	assert.Zero(t, s.resets)
}

func TestRetryAuthLoginFails(t *testing.T) {
	s := &sessionMock{loginErr: errors.New("login down")}

	calls := 0
	_, err := RetryAuth(s, func() (int, error) {
		calls++
		return 0, api.ErrAuthFail
	})

	assert.EqualError(t, err, "login down")
	assert.Equal(t, 1, calls, "failed re-login must not re-run the operation")
}
