package bluelink

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
	"github.com/uvolink/uvolink/util/oauth"
	"github.com/uvolink/uvolink/util/request"
	"golang.org/x/oauth2"
)

const (
	clientID     = "m66129Bb-em93-SPAHYN-bZ91-am4540zp19920"
	clientSecret = "v558o935-6nne-423i-baa8"

	// RefreshBuffer triggers a proactive re-login this close to token expiry
	RefreshBuffer = 10 * time.Minute
)

// Config are the account credentials and the persisted session blob
type Config struct {
	Username      string
	Password      string
	Pin           string
	DeviceID      string // reused across sessions, generated when empty
	AccessToken   string // stored bearer token, resumes without re-login
	Expiry        time.Time
	RefreshBuffer time.Duration
}

// Identity maintains a telematics bearer token. The backend issues short
// lived tokens against username/password; tokens are renewed by logging
// in again ahead of expiry.
type Identity struct {
	*request.Helper
	log   *util.Logger
	brand Brand
	clock clock.Clock

	username string
	password string
	pin      string
	deviceID string
	buffer   time.Duration

	mu    sync.Mutex
	token *oauth2.Token
}

// NewIdentity creates a telematics session for the given brand account
func NewIdentity(log *util.Logger, brand Brand, cfg Config) *Identity {
	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID = strings.ToUpper(uuid.NewString())
	}

	buffer := cfg.RefreshBuffer
	if buffer == 0 {
		buffer = RefreshBuffer
	}

	var token *oauth2.Token
	if cfg.AccessToken != "" {
		token = &oauth2.Token{AccessToken: cfg.AccessToken, Expiry: cfg.Expiry}
	}

	return &Identity{
		Helper:   request.NewHelper(log),
		log:      log,
		brand:    brand,
		clock:    clock.New(),
		username: cfg.Username,
		password: cfg.Password,
		pin:      cfg.Pin,
		deviceID: deviceID,
		buffer:   buffer,
		token:    token,
	}
}

// DeviceID returns the device id used for this session
func (v *Identity) DeviceID() string {
	return v.deviceID
}

// Username returns the account name
func (v *Identity) Username() string {
	return v.username
}

// AccessToken returns the current bearer token and its expiry for
// persistence, empty when logged out
func (v *Identity) AccessToken() (string, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.token == nil {
		return "", time.Time{}
	}
	return v.token.AccessToken, v.token.Expiry
}

// Reset drops the token so the next request logs in again
func (v *Identity) Reset() {
	v.mu.Lock()
	v.token = nil
	v.mu.Unlock()
}

// baseHeaders are the telematics app headers common to all requests
func (v *Identity) baseHeaders() map[string]string {
	_, offset := time.Now().Zone()
	origin := "https://" + v.brand.Host

	return map[string]string{
		"content-type":    "application/json;charset=UTF-8",
		"accept":          "application/json, text/plain, */*",
		"accept-encoding": "gzip",
		"accept-language": "en-US,en;q=0.9",
		"user-agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/75.0.3770.142 Safari/537.36",
		"host":            v.brand.Host,
		"origin":          origin,
		"referer":         origin + "/login",
		"from":            "SPA",
		"to":              "ISS",
		"language":        "0",
		"offset":          strconv.Itoa(offset / 3600),
		"refresh":         "false",
		"encryptFlag":     "false",
		"brandIndicator":  v.brand.BrandIndicator,
		"client_id":       clientID,
		"clientSecret":    clientSecret,
	}
}

// login exchanges credentials for a bearer token
func (v *Identity) login() (*oauth2.Token, error) {
	data := map[string]string{
		"username": v.username,
		"password": v.password,
	}

	uri := v.brand.LoginURI() + "oauth/token"
	req, err := request.New(http.MethodPost, uri, request.MarshalJSON(data), v.baseHeaders())
	if err != nil {
		return nil, err
	}

	resp, err := v.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrTransport, err)
	}

	b, err := request.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	var token oauth.Token
	if err := decodeLogin(b, &token); err != nil {
		return nil, err
	}

	return &token.Token, nil
}

// valid reports whether the token is usable beyond the refresh buffer
func (v *Identity) valid(token *oauth2.Token) bool {
	return token != nil && (token.Expiry.IsZero() || v.clock.Now().Add(v.buffer).Before(token.Expiry))
}

// Login ensures a valid bearer token, logging in when the session has
// none or it is about to expire
func (v *Identity) Login() error {
	_, err := v.Token()
	return err
}

// Token implements oauth2.TokenSource. A token within the refresh buffer
// of its expiry is replaced by a fresh login; the backend's refresh grant
// is unreliable, re-login is the supported path. The mutex spans the
// expiry check and the login so concurrent callers cannot race two
// logins; waiters queued behind a login reuse its token.
func (v *Identity) Token() (*oauth2.Token, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.valid(v.token) {
		return v.token, nil
	}

	if v.token != nil {
		v.log.DEBUG.Println("token expiring, logging in again")
	}

	token, err := v.login()
	if err != nil {
		return nil, err
	}

	v.token = token
	return token, nil
}

// Request decorates an outbound api request with auth headers
func (v *Identity) Request(req *http.Request) error {
	token, err := v.Token()
	if err != nil {
		return err
	}

	for k, val := range v.baseHeaders() {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, val)
		}
	}

	req.Header.Set("username", v.username)
	req.Header.Set("accessToken", token.AccessToken)
	req.Header.Set("blueLinkServicePin", v.pin)

	return nil
}

var _ oauth2.TokenSource = (*Identity)(nil)
