package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup runs onboarding: account, basic info and the health baseline. On
// success the new user is logged in.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.newPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	age, err := GetInt(a.reader, "Your age", services.MinAge, services.MaxAge, a.out)
	if err != nil {
		return err
	}
	sex, err := GetChoice(a.reader, "Biological sex", []string{string(models.SexMale), string(models.SexFemale)}, false, a.out)
	if err != nil {
		return err
	}

	a.println("A few questions about your current habits. Answers are stored encrypted with your password.")
	baseline, err := a.askBaseline()
	if err != nil {
		return err
	}

	profile := models.Profile{Name: name, Age: age, Sex: models.Sex(sex), Baseline: baseline}
	s, err := a.auth.Signup(ctx, email, password, profile)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			a.println("An account with this email already exists")
			return err
		}
		if errors.Is(err, common.ErrorValidation) {
			a.println("Invalid input:", err)
			return err
		}
		return a.fail(err)
	}

	a.startSession(s, name)
	a.printf("Welcome, %s! Your program starts today.\n", name)
	return nil
}

// newPassword asks for a password twice.
func (a *App) newPassword() ([]byte, error) {
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		common.WipeByteArray(password)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		common.WipeByteArray(password)
		a.println("Passwords do not match")
		return nil, fmt.Errorf("passwords do not match: %w", common.ErrorValidation)
	}
	return password, nil
}

// Login asks for credentials. An empty email answer reuses the remembered one.
func (a *App) Login(ctx context.Context) error {
	remembered, err := a.auth.RememberedEmail(ctx)
	if err != nil {
		a.log.Warn(ctx, "error reading remembered email", "error", err)
	}

	prompt := "Enter email"
	if remembered != "" {
		prompt = fmt.Sprintf("Enter email [%s]", remembered)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = remembered
	}
	return a.login(ctx, email)
}

func (a *App) login(ctx context.Context, email string) error {
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.println("Invalid email or password")
			return err
		}
		return a.fail(err)
	}

	name := s.Email()
	if u, err := a.auth.CurrentUser(ctx, s); err == nil {
		name = u.Name
	}
	a.startSession(s, name)
	a.printf("Welcome back, %s!\n", name)
	return nil
}

// Forget removes the remembered login email.
func (a *App) Forget(ctx context.Context) error {
	if err := a.auth.ForgetEmail(ctx); err != nil {
		return a.fail(err)
	}
	a.println("Remembered email cleared")
	return nil
}

// Logout destroys the session secret.
func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		a.println("Not logged in")
		return nil
	}
	a.auth.Logout(ctx, a.session)
	a.endSession()
	a.println("Logged out")
	return nil
}
