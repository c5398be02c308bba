package public

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnounce(t *testing.T) {
	host, err := os.Hostname()
	require.NoError(t, err)

	cases := []string{":7070", "0.0.0.0:7070", "127.0.0.1:7070"}

	for _, listen := range cases {
		res, err := Announce(listen)
		require.NoError(t, err, listen)
		assert.Equal(t, fmt.Sprintf("http://%s:7070", host), res, listen)
	}

	res, err := Announce("192.168.1.5:7070")
	require.NoError(t, err)
	assert.Equal(t, "http://192.168.1.5:7070", res)
	assert.Equal(t, res, URL())
}

func TestAnnounceInvalid(t *testing.T) {
	_, err := Announce("no-port")
	assert.Error(t, err)
}
