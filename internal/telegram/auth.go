package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

// ConsoleAuth prompts for the phone number, login code, and two-factor
// password on the terminal. It implements auth.UserAuthenticator.
type ConsoleAuth struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleAuth creates an interactive authenticator reading stdin.
func NewConsoleAuth() *ConsoleAuth {
	return &ConsoleAuth{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (a *ConsoleAuth) prompt(label string) (string, error) {
	if _, err := fmt.Fprint(a.out, label); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *ConsoleAuth) Phone(_ context.Context) (string, error) {
	return a.prompt("Phone number: ")
}

func (a *ConsoleAuth) Password(_ context.Context) (string, error) {
	return a.prompt("Two-factor password: ")
}

func (a *ConsoleAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	return a.prompt("Login code: ")
}

func (a *ConsoleAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a *ConsoleAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up is not supported, use an existing account")
}

// StaticAuth answers the authorization flow with pre-supplied values.
// It backs non-interactive runs and tests that must not block on stdin.
type StaticAuth struct {
	PhoneNumber string
	LoginCode   string
	TwoFactor   string
}

func (a StaticAuth) Phone(_ context.Context) (string, error) {
	if a.PhoneNumber == "" {
		return "", errors.New("phone number not configured")
	}
	return a.PhoneNumber, nil
}

func (a StaticAuth) Password(_ context.Context) (string, error) {
	if a.TwoFactor == "" {
		return "", errors.New("two-factor password not configured")
	}
	return a.TwoFactor, nil
}

func (a StaticAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	if a.LoginCode == "" {
		return "", errors.New("login code not configured")
	}
	return a.LoginCode, nil
}

func (a StaticAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a StaticAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up is not supported")
}
