package bluelink

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util/oauth"
)

// evalError maps the telematics error envelope to the error taxonomy.
// A zero errorCode means success.
func evalError(res errorResponse) error {
	if res.ErrorCode == 0 {
		return nil
	}

	msg := res.ErrorMessage
	if msg == "" {
		msg = res.ErrorSubMessage
	}

	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "pin") && strings.Contains(lower, "lock"):
		return fmt.Errorf("%w: %s", api.ErrPinLocked, msg)
	case strings.Contains(lower, "otp") || strings.Contains(lower, "verification code"):
		return fmt.Errorf("%w: %s", api.ErrOtpRequired, msg)
	}

	switch res.ErrorCode {
	case 401, 403, 1003, 1005:
		return fmt.Errorf("%w: %s", api.ErrAuthFail, msg)
	}

	return fmt.Errorf("unexpected response %d: %s", res.ErrorCode, msg)
}

// decodeLogin decodes the oauth token response, mapping error envelopes
// and otp challenges to the error taxonomy
func decodeLogin(b []byte, token *oauth.Token) error {
	if err := json.Unmarshal(b, token); err != nil {
		return err
	}

	if token.AccessToken != "" {
		return nil
	}

	var res errorResponse
	if err := json.Unmarshal(b, &res); err == nil {
		if err := evalError(res); err != nil {
			return err
		}
	}

	// some accounts are flagged for otp verification, which this client
	// does not drive for the telematics brands
	var otp struct {
		OtpKey string `json:"otpKey"`
	}
	if err := json.Unmarshal(b, &otp); err == nil && otp.OtpKey != "" {
		return fmt.Errorf("%w: account requires otp verification", api.ErrOtpRequired)
	}

	return fmt.Errorf("%w: no access token in login response", api.ErrAuthFail)
}
