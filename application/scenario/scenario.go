// Package scenario runs the login flow checks against a live session. Every scenario gets
// a fresh browser opened on the base URL and closed afterwards, whatever the outcome.
package scenario

import (
	"context"
	"fmt"

	"login_automation/application/page"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Scenario is one named check of the login flow
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Env is what a scenario gets to work with
type Env struct {
	Factory  *page.Factory
	Session  interfaces.Session
	Login    string
	Password string
	Logger   logrus.FieldLogger
}

// LoginPage - the page every scenario starts from
func (e *Env) LoginPage(ctx context.Context) (*page.LoginPage, error) {
	return page.Open[*page.LoginPage](ctx, e.Factory, page.LoginID)
}

// loginAndSubmit - fills both inputs, optionally revealing the password first, and submits
func (e *Env) loginAndSubmit(ctx context.Context, login, password string, showPassword bool) (*page.HomePage, error) {
	loginPage, err := e.LoginPage(ctx)
	if err != nil {
		return nil, err
	}
	if showPassword {
		if err := loginPage.ClickShowPasswordButton(ctx); err != nil {
			return nil, err
		}
	}
	if err := loginPage.FillLoginInput(ctx, login); err != nil {
		return nil, err
	}
	if err := loginPage.FillPasswordInput(ctx, password); err != nil {
		return nil, err
	}
	return loginPage.ClickLoginButton(ctx)
}

// handleAlert - reads the open alert, accepts it and returns its text
func (e *Env) handleAlert(ctx context.Context) (string, error) {
	text, err := e.Session.AlertText(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read alert: %w", err)
	}
	if err := e.Session.AcceptAlert(ctx); err != nil {
		return "", fmt.Errorf("failed to accept alert: %w", err)
	}
	e.Logger.Infof("alert handled: %s", text)
	return text, nil
}

// recoverPassword - opens the recovery form and requests a reset for login
func (e *Env) recoverPassword(ctx context.Context, login string) (*page.PasswordRecoverPage, error) {
	loginPage, err := e.LoginPage(ctx)
	if err != nil {
		return nil, err
	}
	recoverPage, err := loginPage.ClickForgetPasswordButton(ctx)
	if err != nil {
		return nil, err
	}
	if err := recoverPage.FillLoginInput(ctx, login); err != nil {
		return nil, err
	}
	if err := recoverPage.ClickSendRecoverEmailButton(ctx); err != nil {
		return nil, err
	}
	return recoverPage, nil
}

func expectEqual(what, expected, actual string) error {
	if expected != actual {
		return fmt.Errorf("%s: expected %q, got %q", what, expected, actual)
	}
	return nil
}

func expectAuthorized(ctx context.Context, home *page.HomePage, what string) error {
	authorized, err := home.IsAuthorized(ctx)
	if err != nil {
		return err
	}
	if !authorized {
		return fmt.Errorf("%s: user is not authorized", what)
	}
	return nil
}
