package transport

import (
	"crypto/tls"
	"net/http"
)

// Decorator is an http.RoundTripper that runs a decorator against each
// request before delegating to the base transport
type Decorator struct {
	Decorator func(req *http.Request) error
	Base      http.RoundTripper
}

func (t *Decorator) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Decorator(req); err != nil {
		return nil, err
	}

	base := t.Base
	if base == nil {
		base = Default()
	}

	return base.RoundTrip(req)
}

// DecorateHeaders wraps the given headers into a request decorator
func DecorateHeaders(headers map[string]string) func(req *http.Request) error {
	return func(req *http.Request) error {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return nil
	}
}

// legacy cipher suites accepted by the vendor endpoints. The vendors run
// TLS stacks that reject modern-default negotiation and require
// client-side renegotiation.
var legacyCipherSuites = []uint16{
	tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
	tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_RSA_WITH_AES_128_CBC_SHA,
	tls.TLS_RSA_WITH_AES_256_CBC_SHA,
	tls.TLS_RSA_WITH_3DES_EDE_CBC_SHA,
}

// Default returns an http.Transport with a legacy-compatible TLS config
func Default() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{
		MinVersion:    tls.VersionTLS12,
		MaxVersion:    tls.VersionTLS12,
		CipherSuites:  legacyCipherSuites,
		Renegotiation: tls.RenegotiateOnceAsClient,
	}
	return t
}

// Insecure returns the default transport with certificate verification disabled
func Insecure() *http.Transport {
	t := Default()
	t.TLSClientConfig.InsecureSkipVerify = true
	return t
}
