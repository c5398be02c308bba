package bluelink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util/oauth"
)

func TestEvalError(t *testing.T) {
	assert.NoError(t, evalError(errorResponse{}))

	for _, code := range []int{401, 403, 1003, 1005} {
		err := evalError(errorResponse{ErrorCode: code, ErrorMessage: "denied"})
		assert.ErrorIs(t, err, api.ErrAuthFail, "code %d", code)
	}

	err := evalError(errorResponse{ErrorCode: 401, ErrorMessage: "Your PIN has been locked for 1 hour"})
	assert.ErrorIs(t, err, api.ErrPinLocked)
	assert.ErrorIs(t, err, api.ErrAuthFail, "pin lockout is an auth failure")

	err = evalError(errorResponse{ErrorCode: 400, ErrorSubMessage: "Please enter the verification code"})
	assert.ErrorIs(t, err, api.ErrOtpRequired)

	err = evalError(errorResponse{ErrorCode: 500, ErrorMessage: "server error"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrAuthFail)
}

func TestDecodeLogin(t *testing.T) {
	var token oauth.Token
	require.NoError(t, decodeLogin([]byte(`{"access_token":"AT","refresh_token":"RT","expires_in":1799}`), &token))
	assert.Equal(t, "AT", token.AccessToken)
	assert.False(t, token.Expiry.IsZero())

	token = oauth.Token{}
	err := decodeLogin([]byte(`{"errorCode":401,"errorMessage":"invalid credentials"}`), &token)
	assert.ErrorIs(t, err, api.ErrAuthFail)

	token = oauth.Token{}
	err = decodeLogin([]byte(`{"otpKey":"abc"}`), &token)
	assert.ErrorIs(t, err, api.ErrOtpRequired)

	token = oauth.Token{}
	err = decodeLogin([]byte(`{}`), &token)
	assert.ErrorIs(t, err, api.ErrAuthFail)
}

func TestNumberUnmarshal(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"12345.6"`), &n))
	assert.Equal(t, Number(12345.6), n)

	require.NoError(t, json.Unmarshal([]byte(`42`), &n))
	assert.Equal(t, Number(42), n)

	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, Number(0), n)

	assert.Error(t, json.Unmarshal([]byte(`"miles"`), &n))
}
