package request

import (
	"fmt"
	"net/http"
	"time"

	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
	"github.com/uvolink/uvolink/util/transport"
)

// Timeout is the default request timeout used by the Helper
var Timeout = 30 * time.Second

// Helper provides utility primitives
type Helper struct {
	*http.Client
}

// NewHelper creates a http helper for simplified PUT GET logic
func NewHelper(log *util.Logger) *Helper {
	return &Helper{
		Client: NewClient(log),
	}
}

// NewClient creates an http client with request logging
func NewClient(log *util.Logger) *http.Client {
	return &http.Client{
		Timeout:   Timeout,
		Transport: NewTripper(log, transport.Default()),
	}
}

// DoBody executes the request and returns the response body
func (r *Helper) DoBody(req *http.Request) ([]byte, error) {
	resp, err := r.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrTransport, err)
	}
	return ReadBody(resp)
}

// GetBody executes a GET request and returns the response body
func (r *Helper) GetBody(url string) ([]byte, error) {
	resp, err := r.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrTransport, err)
	}
	return ReadBody(resp)
}

// DoJSON executes the request and decodes the json response into res
func (r *Helper) DoJSON(req *http.Request, res interface{}) error {
	resp, err := r.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrTransport, err)
	}
	return DecodeJSON(resp, res)
}

// GetJSON executes a GET request and decodes the json response into res
func (r *Helper) GetJSON(url string, res interface{}) error {
	req, err := New(http.MethodGet, url, nil, AcceptJSON)
	if err != nil {
		return err
	}
	return r.DoJSON(req, res)
}
