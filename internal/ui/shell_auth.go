package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kirillkom/notelm-client/internal/apperr"
)

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type registration struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8"`
}

func (s *Shell) dispatchAuth(ctx context.Context, cmd string, _ []string) {
	switch cmd {
	case "login":
		s.cmdLogin(ctx)
	case "register":
		s.cmdRegister(ctx)
	case "help":
		s.printHelp()
	default:
		printError(s.out, fmt.Sprintf("unknown command %q; log in first (try 'help')", cmd))
	}
}

func (s *Shell) cmdLogin(ctx context.Context) {
	creds, ok := s.promptCredentials()
	if !ok {
		return
	}
	if err := s.client.Login(ctx, creds.Email, creds.Password); err != nil {
		s.fail(err, "auth.login")
		return
	}
	// Login deliberately returns no user; fetch it separately.
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.fail(err, "auth.me")
		return
	}
	s.user = &user
	s.authExpired.Store(false)
	printOK(s.out, fmt.Sprintf("logged in as %s", user.Username))
}

func (s *Shell) cmdRegister(ctx context.Context) {
	reg, ok := s.promptRegistration()
	if !ok {
		return
	}
	if _, err := s.client.Register(ctx, reg.Email, reg.Username, reg.Password); err != nil {
		s.fail(err, "auth.register")
		return
	}
	printOK(s.out, "account created")

	// Registration chains into login.
	if err := s.client.Login(ctx, reg.Email, reg.Password); err != nil {
		s.fail(err, "auth.login")
		return
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.fail(err, "auth.me")
		return
	}
	s.user = &user
	printOK(s.out, fmt.Sprintf("logged in as %s", user.Username))
}

func (s *Shell) promptCredentials() (credentials, bool) {
	email, err := s.promptLine("email: ")
	if err != nil {
		return credentials{}, false
	}
	password, err := s.promptPassword("password: ")
	if err != nil {
		return credentials{}, false
	}

	creds := credentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		s.printValidationErrors(err)
		return credentials{}, false
	}
	return creds, true
}

func (s *Shell) promptRegistration() (registration, bool) {
	email, err := s.promptLine("email: ")
	if err != nil {
		return registration{}, false
	}
	username, err := s.promptLine("username: ")
	if err != nil {
		return registration{}, false
	}
	password, err := s.promptPassword("password (min 8 chars): ")
	if err != nil {
		return registration{}, false
	}

	reg := registration{Email: email, Username: username, Password: password}
	if err := s.validate.Struct(reg); err != nil {
		s.printValidationErrors(err)
		return registration{}, false
	}
	return reg, true
}

func (s *Shell) promptLine(prompt string) (string, error) {
	s.rl.SetPrompt(prompt)
	defer s.rl.SetPrompt(s.prompt())
	line, err := s.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) promptPassword(prompt string) (string, error) {
	pw, err := s.rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

// printValidationErrors surfaces field-level problems inline, next to the
// form that produced them.
func (s *Shell) printValidationErrors(err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		printError(s.out, apperr.Message(err))
		return
	}
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			printError(s.out, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			printError(s.out, "email address is not valid")
		case "min":
			printError(s.out, fmt.Sprintf("%s must be at least %s characters", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			printError(s.out, fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param()))
		default:
			printError(s.out, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
}
