package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/uvolink/uvolink/api"
)

// StatusError indicates an unsuccessful http response status
type StatusError struct {
	resp *http.Response
}

// NewStatusError creates a status error for the given response
func NewStatusError(resp *http.Response) StatusError {
	return StatusError{resp: resp}
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d (%s)", e.resp.StatusCode, http.StatusText(e.resp.StatusCode))
}

// Response returns the response with the unexpected status
func (e StatusError) Response() *http.Response {
	return e.resp
}

// StatusCode returns the response status code
func (e StatusError) StatusCode() int {
	return e.resp.StatusCode
}

// HasStatus returns true if the status code matches any of the given codes
func (e StatusError) HasStatus(codes ...int) bool {
	for _, code := range codes {
		if e.resp.StatusCode == code {
			return true
		}
	}
	return false
}

const (
	URLEncoding  = "application/x-www-form-urlencoded"
	JSONContent  = "application/json"
	PlainContent = "text/plain"
)

// URLEncoded is the urlencoded request header
var URLEncoded = map[string]string{"Content-Type": URLEncoding}

// JSONEncoding specifies application/json for content and accept headers
var JSONEncoding = map[string]string{
	"Content-Type": JSONContent,
	"Accept":       JSONContent,
}

// AcceptJSON accepts application/json
var AcceptJSON = map[string]string{"Accept": JSONContent}

// New builds a request with the given method, uri, body and headers
func New(method, uri string, body io.Reader, headers ...map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(method, uri, body)
	if err != nil {
		return nil, err
	}

	for _, header := range headers {
		for k, v := range header {
			req.Header.Set(k, v)
		}
	}

	return req, nil
}

// MarshalJSON marshals the data and silences the error. Request creation
// will fail on the nil reader if marshaling failed.
func MarshalJSON(data interface{}) io.Reader {
	b, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return bytes.NewReader(b)
}

// ReadBody reads and closes the response body
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err == nil && resp.StatusCode >= 400 {
		err = NewStatusError(resp)
	}

	return b, err
}

// DecodeJSON reads the response body and decodes it into the given value.
// A non-json content type means the vendor served an interactive login
// page instead, which is treated as an expired session.
func DecodeJSON(resp *http.Response, res interface{}) error {
	b, err := ReadBody(resp)
	if err == nil && res != nil && len(b) > 0 {
		if !jsonContent(resp) {
			return fmt.Errorf("%w: unexpected content type: %s", api.ErrAuthFail, resp.Header.Get("Content-Type"))
		}
		err = json.Unmarshal(b, res)
	}

	return err
}

func jsonContent(resp *http.Response) bool {
	mediatype, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && (mediatype == JSONContent || strings.HasSuffix(mediatype, "+json"))
}
