// Package public derives the externally reachable address of the api server.
package public

import (
	"fmt"
	"net"
	"os"
)

var baseURL string

// URL returns the announced base url, empty until Announce succeeds
func URL() string {
	return baseURL
}

// Announce derives the advertised http url for the given listen address.
// Listening on a generic interface advertises the hostname instead.
func Announce(listen string) (string, error) {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return "", err
	}

	if host == "" || generic(host) {
		if host, err = os.Hostname(); err != nil {
			return "", err
		}
	}

	baseURL = fmt.Sprintf("http://%s:%s", host, port)
	return baseURL, nil
}

func generic(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}
