package kia

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/uvolink/uvolink/api"
	"github.com/uvolink/uvolink/util"
	"github.com/uvolink/uvolink/util/request"
)

const (
	// APIHost is the owners api endpoint
	APIHost = "api.owners.kia.com"
	// BaseURI is the owners api base path
	BaseURI = "https://" + APIHost + "/apigw/v1/"

	appVersion = "7.22.0"
	clientID   = "SPACL716-APL"
	secretKey  = "sydnat-9kykci-Kuhtep-h5nK"

	// OtpTimeout bounds each wait on the otp prompt
	OtpTimeout = 5 * time.Minute
)

// Config are the account credentials and session parameters
type Config struct {
	Username     string
	Password     string
	DeviceID     string // reused across sessions, generated when empty
	RefreshToken string // stored rmtoken, skips the otp exchange
	OtpTimeout   time.Duration
}

// Identity maintains an owners api session. Login requires a one-time
// passcode exchange unless a stored rmtoken is still valid.
type Identity struct {
	*request.Helper
	log     *util.Logger
	mu      sync.Mutex
	machine *fsm.FSM
	prompt  api.OtpPrompt
	baseURI string

	username   string
	password   string
	deviceID   string
	clientUUID string
	otpTimeout time.Duration

	sessionID    string
	refreshToken string

	// transient otp exchange state, cleared on every terminal outcome
	otpKey     string
	otpXid     string
	notifyType string
}

// NewIdentity creates an owners api session for the given account
func NewIdentity(log *util.Logger, cfg Config, prompt api.OtpPrompt) *Identity {
	deviceID := cfg.DeviceID
	if deviceID == "" {
		deviceID = strings.ToUpper(uuid.NewString())
	}

	timeout := cfg.OtpTimeout
	if timeout == 0 {
		timeout = OtpTimeout
	}

	return &Identity{
		Helper:       request.NewHelper(log),
		log:          log,
		machine:      newLoginMachine(log),
		prompt:       prompt,
		baseURI:      BaseURI,
		username:     cfg.Username,
		password:     cfg.Password,
		deviceID:     deviceID,
		clientUUID:   uuid.NewSHA1(uuid.NameSpaceDNS, []byte(deviceID)).String(),
		otpTimeout:   timeout,
		refreshToken: cfg.RefreshToken,
	}
}

// DeviceID returns the device id used for this session
func (v *Identity) DeviceID() string {
	return v.deviceID
}

// RefreshToken returns the rmtoken for persistence. Valid after login.
func (v *Identity) RefreshToken() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.refreshToken
}

// SessionID returns the current session id, empty when logged out
func (v *Identity) SessionID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessionID
}

// Reset drops the session so the next request logs in again
func (v *Identity) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sessionID = ""
	v.clearOtpState()
	_ = v.machine.Event(context.Background(), eventFail)
}

func (v *Identity) clearOtpState() {
	v.otpKey = ""
	v.otpXid = ""
	v.notifyType = ""
}

// headers builds the owners api headers mimicking the vendor's mobile app
func (v *Identity) headers() map[string]string {
	_, offset := time.Now().Zone()

	h := map[string]string{
		"content-type":    "application/json;charset=utf-8",
		"accept":          "application/json",
		"accept-encoding": "gzip",
		"accept-language": "en-US,en;q=0.9",
		"apptype":         "L",
		"appversion":      appVersion,
		"clientid":        clientID,
		"clientuuid":      v.clientUUID,
		"from":            "SPA",
		"host":            APIHost,
		"language":        "0",
		"offset":          strconv.Itoa(offset / 3600),
		"ostype":          "iOS",
		"osversion":       "15.8.5",
		"phonebrand":      "iPhone",
		"secretkey":       secretKey,
		"to":              "APIGW",
		"tokentype":       "A",
		"user-agent":      "KIAPrimo_iOS/37 CFNetwork/1335.0.3.4 Darwin/21.6.0",
		"deviceid":        v.deviceID,
		"date":            time.Now().UTC().Format(http.TimeFormat),
	}

	if v.sessionID != "" {
		h["sid"] = v.sessionID
	}
	if v.refreshToken != "" {
		h["rmtoken"] = v.refreshToken
	}

	return h
}

func (v *Identity) otpHeaders() map[string]string {
	h := v.headers()
	if v.otpKey != "" {
		h["otpkey"] = v.otpKey
	}
	if v.notifyType != "" {
		h["notifytype"] = v.notifyType
	}
	if v.otpXid != "" {
		h["xid"] = v.otpXid
	}
	return h
}

// Request decorates an outbound api request with session headers,
// logging in first if needed. The session check and the login share the
// mutex so callers queued behind a login reuse its session instead of
// logging in again.
func (v *Identity) Request(req *http.Request) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sessionID == "" {
		if err := v.loginSession(); err != nil {
			return err
		}
	}

	for k, val := range v.headers() {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, val)
		}
	}

	return nil
}

// evalStatus maps the owners api response envelope to the error taxonomy
func evalStatus(s responseStatus) error {
	if s.StatusCode == 0 {
		return nil
	}

	if s.ErrorType == 1 {
		switch s.ErrorCode {
		case 1003, 1005, 1037, 1165:
			// expired session, rotated vehicle key or rejected otp
			return fmt.Errorf("%w: %s", api.ErrAuthFail, s.ErrorMessage)
		case 1001, 1132:
			// vehicle not ready to accept the command
			return fmt.Errorf("%w: %s", api.ErrActionInProgress, s.ErrorMessage)
		}
	}

	return fmt.Errorf("unexpected response %d/%d: %s", s.ErrorCode, s.ErrorType, s.ErrorMessage)
}

// Login establishes a session. The owners api either returns a session id
// directly or demands an otp exchange driven through the login machine.
func (v *Identity) Login() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loginSession()
}

// loginSession runs the login flow and clears transient otp state on
// every terminal outcome. Callers must hold mu.
func (v *Identity) loginSession() error {
	err := v.login()
	if err != nil {
		_ = v.machine.Event(context.Background(), eventFail)
	}
	v.clearOtpState()

	return err
}

func (v *Identity) login() error {
	if !v.machine.Is(stateUnauthenticated) {
		_ = v.machine.Event(context.Background(), eventFail)
	}

	v.sessionID = ""

	data := loginRequest{
		DeviceKey:  v.deviceID,
		DeviceType: 2,
		UserCredential: userCredential{
			UserID:   v.username,
			Password: v.password,
		},
		TncFlag: 1,
	}

	req, err := request.New(http.MethodPost, v.baseURI+"prof/authUser", request.MarshalJSON(data), v.headers())
	if err != nil {
		return err
	}

	resp, err := v.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrTransport, err)
	}

	var res loginResponse
	if err := request.DecodeJSON(resp, &res); err != nil {
		return err
	}

	// a stored rmtoken short-circuits the otp exchange
	if sid := resp.Header.Get("sid"); sid != "" {
		v.sessionID = sid
		return v.machine.Event(context.Background(), eventAuthenticate)
	}

	if res.Payload.OtpKey == "" {
		if err := evalStatus(res.Status); err != nil {
			return err
		}
		return fmt.Errorf("%w: no session id in login response", api.ErrAuthFail)
	}

	if res.Payload.RmTokenExpired {
		v.log.INFO.Println("stored rmtoken expired, new otp required")
		v.refreshToken = ""
	}

	v.otpKey = res.Payload.OtpKey
	v.otpXid = resp.Header.Get("xid")

	return v.loginWithOtp(res)
}

func (v *Identity) loginWithOtp(res loginResponse) error {
	ctx, cancel := context.WithTimeout(context.Background(), v.otpTimeout)
	defer cancel()

	if v.prompt == nil {
		return fmt.Errorf("%w: no otp prompt configured", api.ErrOtpRequired)
	}

	if err := v.machine.Event(ctx, eventChallenge); err != nil {
		return err
	}

	challenge := api.OtpChallenge{
		HasEmail: res.Payload.HasEmail,
		HasPhone: res.Payload.HasPhone,
		Email:    res.Payload.Email,
		Phone:    res.Payload.Phone,
	}

	dest, err := v.prompt.ChooseDestination(ctx, challenge)
	if err != nil {
		return fmt.Errorf("choosing otp destination: %w", err)
	}
	if dest != api.OtpEmail && dest != api.OtpSMS {
		return fmt.Errorf("invalid otp destination: %s", dest)
	}

	v.notifyType = string(dest)

	if err := v.machine.Event(ctx, eventSend); err != nil {
		return err
	}
	if err := v.sendOtp(); err != nil {
		return err
	}

	if err := v.machine.Event(ctx, eventAwait); err != nil {
		return err
	}

	code, err := v.prompt.Code(ctx, dest)
	if err != nil {
		return fmt.Errorf("reading otp code: %w", err)
	}
	if code = strings.TrimSpace(code); code == "" {
		return fmt.Errorf("%w: empty otp code", api.ErrAuthFail)
	}

	if err := v.machine.Event(ctx, eventVerify); err != nil {
		return err
	}

	sid, rmtoken, err := v.verifyOtp(code)
	if err != nil {
		return err
	}

	// the verified session is provisional; a second credential login
	// carrying it yields the final session id
	finalSid, err := v.completeLogin(sid, rmtoken)
	if err != nil {
		return err
	}

	v.sessionID = finalSid
	v.refreshToken = rmtoken

	return v.machine.Event(ctx, eventComplete)
}

func (v *Identity) sendOtp() error {
	v.log.DEBUG.Printf("sending otp via %s", v.notifyType)

	req, err := request.New(http.MethodPost, v.baseURI+"cmm/sendOTP", request.MarshalJSON(struct{}{}), v.otpHeaders())
	if err != nil {
		return err
	}

	var res statusResponse
	if err := v.DoJSON(req, &res); err != nil {
		return err
	}

	return evalStatus(res.Status)
}

func (v *Identity) verifyOtp(code string) (string, string, error) {
	data := map[string]string{"otp": code}

	req, err := request.New(http.MethodPost, v.baseURI+"cmm/verifyOTP", request.MarshalJSON(data), v.otpHeaders())
	if err != nil {
		return "", "", err
	}

	resp, err := v.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", api.ErrTransport, err)
	}

	var res statusResponse
	if err := request.DecodeJSON(resp, &res); err != nil {
		return "", "", err
	}

	if res.Status.StatusCode != 0 {
		return "", "", fmt.Errorf("%w: otp verification failed: %s", api.ErrAuthFail, res.Status.ErrorMessage)
	}

	sid := resp.Header.Get("sid")
	rmtoken := resp.Header.Get("rmtoken")
	if sid == "" || rmtoken == "" {
		return "", "", fmt.Errorf("%w: no session in otp verification response", api.ErrAuthFail)
	}

	return sid, rmtoken, nil
}

func (v *Identity) completeLogin(sid, rmtoken string) (string, error) {
	data := loginRequest{
		DeviceKey:  v.deviceID,
		DeviceType: 2,
		UserCredential: userCredential{
			UserID:   v.username,
			Password: v.password,
		},
	}

	headers := v.headers()
	headers["sid"] = sid
	headers["rmtoken"] = rmtoken

	req, err := request.New(http.MethodPost, v.baseURI+"prof/authUser", request.MarshalJSON(data), headers)
	if err != nil {
		return "", err
	}

	resp, err := v.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrTransport, err)
	}

	var res statusResponse
	if err := request.DecodeJSON(resp, &res); err != nil {
		return "", err
	}

	finalSid := resp.Header.Get("sid")
	if finalSid == "" {
		return "", fmt.Errorf("%w: no final session id in login completion", api.ErrAuthFail)
	}

	return finalSid, nil
}

// LoggedIn reports whether a session is established
func (v *Identity) LoggedIn() bool {
	return v.SessionID() != ""
}

// IsOtpPending reports whether the login machine is mid-exchange
func (v *Identity) IsOtpPending() bool {
	cur := v.machine.Current()
	return cur != stateUnauthenticated && cur != stateAuthenticated
}
