package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/uvolink/uvolink/api"
)

// terminalPrompt collects the one-time passcode interactively
type terminalPrompt struct{}

var _ api.OtpPrompt = (*terminalPrompt)(nil)

// askOne runs a survey prompt while honoring the login deadline
func askOne(ctx context.Context, prompt survey.Prompt, response interface{}) error {
	done := make(chan error, 1)
	go func() {
		done <- survey.AskOne(prompt, response, survey.WithValidator(survey.Required))
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *terminalPrompt) ChooseDestination(ctx context.Context, challenge api.OtpChallenge) (api.OtpDestination, error) {
	var options []string
	destinations := make(map[string]api.OtpDestination)

	if challenge.HasEmail {
		opt := fmt.Sprintf("Email (%s)", challenge.Email)
		options = append(options, opt)
		destinations[opt] = api.OtpEmail
	}
	if challenge.HasPhone {
		opt := fmt.Sprintf("Text message (%s)", challenge.Phone)
		options = append(options, opt)
		destinations[opt] = api.OtpSMS
	}

	switch len(options) {
	case 0:
		return "", errors.New("account has no verification destinations")
	case 1:
		return destinations[options[0]], nil
	}

	var choice string
	err := askOne(ctx, &survey.Select{
		Message: "Send verification code to:",
		Options: options,
	}, &choice)

	return destinations[choice], err
}

func (p *terminalPrompt) Code(ctx context.Context, destination api.OtpDestination) (string, error) {
	var code string
	err := askOne(ctx, &survey.Input{
		Message: fmt.Sprintf("Verification code (%s):", destination),
	}, &code)

	return code, err
}
