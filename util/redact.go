package util

import (
	"fmt"
	"regexp"
	"strings"
)

// names of JSON fields and HTTP headers that must never be logged verbatim
var redactFields = []string{
	"username", "password", "userid", "pin", "blueLinkServicePin",
	"accessToken", "access_token", "refresh_token", "sid", "rmtoken",
	"vinkey", "vinKey", "vin", "deviceid", "registrationId", "otp",
	"lat", "lon",
}

var redactRE *regexp.Regexp

func init() {
	fields := make([]string, 0, len(redactFields))
	for _, f := range redactFields {
		fields = append(fields, regexp.QuoteMeta(f))
	}

	// matches json fields and header lines alike
	redactRE = regexp.MustCompile(fmt.Sprintf(
		`(?i)("?(?:%s)"?\s*[:=]\s*)("[^"]*"|[^\s,}&]+)`,
		strings.Join(fields, "|"),
	))
}

// RedactHook is applied to logged request and response payloads.
// Assign nil to disable redaction, e.g. in tests.
var RedactHook = RedactDefault

// RedactDefault masks the values of known sensitive fields
func RedactDefault(s string) string {
	return redactRE.ReplaceAllString(s, `$1*****`)
}

// Redact applies the redact hook if set
func Redact(s string) string {
	if RedactHook != nil {
		return RedactHook(s)
	}
	return s
}
