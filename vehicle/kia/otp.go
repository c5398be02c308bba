package kia

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/uvolink/uvolink/util"
)

// login state machine states. The owners api requires the OTP exchange to
// run strictly in order; the machine rejects out-of-order steps.
const (
	stateUnauthenticated     = "unauthenticated"
	stateAwaitingDestination = "awaitingDestination"
	stateOtpSent             = "otpSent"
	stateAwaitingCode        = "awaitingCode"
	stateVerifying           = "verifying"
	stateAuthenticated       = "authenticated"
)

const (
	eventChallenge    = "challenge"    // credentials accepted, otp demanded
	eventSend         = "send"         // destination chosen, otp dispatched
	eventAwait        = "await"        // waiting for the user to read the code
	eventVerify       = "verify"       // code submitted for verification
	eventComplete     = "complete"     // final session established
	eventAuthenticate = "authenticate" // session established without otp
	eventFail         = "fail"         // any terminal failure
)

func newLoginMachine(log *util.Logger) *fsm.FSM {
	return fsm.NewFSM(
		stateUnauthenticated,
		fsm.Events{
			{Name: eventChallenge, Src: []string{stateUnauthenticated}, Dst: stateAwaitingDestination},
			{Name: eventSend, Src: []string{stateAwaitingDestination}, Dst: stateOtpSent},
			{Name: eventAwait, Src: []string{stateOtpSent}, Dst: stateAwaitingCode},
			{Name: eventVerify, Src: []string{stateAwaitingCode}, Dst: stateVerifying},
			{Name: eventComplete, Src: []string{stateVerifying}, Dst: stateAuthenticated},
			{Name: eventAuthenticate, Src: []string{stateUnauthenticated}, Dst: stateAuthenticated},
			{Name: eventFail, Src: []string{
				stateUnauthenticated, stateAwaitingDestination, stateOtpSent,
				stateAwaitingCode, stateVerifying, stateAuthenticated,
			}, Dst: stateUnauthenticated},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.DEBUG.Printf("login: %s -> %s", e.Src, e.Dst)
			},
		},
	)
}
