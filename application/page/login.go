package page

import (
	"context"
	"fmt"

	"login_automation/application/element"
	"login_automation/domain/entities"
)

const (
	loginInputClass          = "mira-widget-login-input mira-default-login-page-text-input"
	loginInputName           = "user"
	passwordInputName        = "password"
	loginButtonClass         = "mira-widget-login-button mira-default-login-page-button-submit"
	showPasswordButtonClass  = "mira-widget-login-button"
	recoverPasswordLinkClass = "mira-default-login-page-link"
)

// LoginPage is the Mira login widget
type LoginPage struct {
	Base
	loginInput          *element.Element
	passwordInput       *element.Element
	loginButton         *element.Element
	showPasswordButton  *element.Element
	recoverPasswordLink *element.Element
}

func newLoginPage(b Base) Page {
	opts := b.elementOptions()
	return &LoginPage{
		Base:                b,
		loginInput:          element.NewInputByName(b.session, loginInputClass, loginInputName, opts...),
		passwordInput:       element.NewInputByName(b.session, loginInputClass, passwordInputName, opts...),
		loginButton:         element.NewButton(b.session, loginButtonClass, opts...),
		showPasswordButton:  element.NewButton(b.session, showPasswordButtonClass, opts...),
		recoverPasswordLink: element.NewLink(b.session, recoverPasswordLinkClass, opts...),
	}
}

func (p *LoginPage) FillLoginInput(ctx context.Context, login string) error {
	if err := p.loginInput.Fill(ctx, login); err != nil {
		return err
	}
	p.logger.Infof("login input: %s", login)
	return nil
}

func (p *LoginPage) FillPasswordInput(ctx context.Context, password string) error {
	if err := p.passwordInput.Fill(ctx, password); err != nil {
		return err
	}
	p.logger.Infof("password input: %s", p.secret("password", password))
	return nil
}

// ClickLoginButton - submits the form; the browser lands on the home page
func (p *LoginPage) ClickLoginButton(ctx context.Context) (*HomePage, error) {
	if err := p.loginButton.Click(ctx); err != nil {
		return nil, err
	}
	p.logger.Info("login button clicked")
	return transition[*HomePage](ctx, p.Base, HomeID)
}

// ClickLoginInput - focuses the login input for keyboard entry
func (p *LoginPage) ClickLoginInput(ctx context.Context) error {
	if err := p.loginInput.Click(ctx); err != nil {
		return err
	}
	p.logger.Info("login input clicked. ready for filling with keys")
	return nil
}

// FillCurrent - types text into the focused input
func (p *LoginPage) FillCurrent(ctx context.Context, text string) error {
	if err := p.session.TypeText(ctx, text); err != nil {
		return fmt.Errorf("failed to type into focused element: %w", err)
	}
	p.logger.Infof("current input is filled with text: %s", p.redactor.Scrub(text))
	return nil
}

func (p *LoginPage) PressKey(ctx context.Context, key entities.Key) error {
	if err := p.session.PressKey(ctx, key); err != nil {
		return fmt.Errorf("failed to press %s: %w", key, err)
	}
	p.logger.Infof("key pressed: %s", key)
	return nil
}

func (p *LoginPage) ClickShowPasswordButton(ctx context.Context) error {
	if err := p.showPasswordButton.Click(ctx); err != nil {
		return err
	}
	p.logger.Info("show password button clicked")
	return nil
}

// GetPassword - current content of the password input
func (p *LoginPage) GetPassword(ctx context.Context) (string, error) {
	password, err := p.passwordInput.GetValue(ctx)
	if err != nil {
		return "", err
	}
	p.logger.Infof("got password from password input: %s", p.secret("password", password))
	return password, nil
}

// ClickForgetPasswordButton - follows the recovery link
func (p *LoginPage) ClickForgetPasswordButton(ctx context.Context) (*PasswordRecoverPage, error) {
	if err := p.recoverPasswordLink.Click(ctx); err != nil {
		return nil, err
	}
	p.logger.Info("recover password button clicked")
	return transition[*PasswordRecoverPage](ctx, p.Base, PasswordRecoverID)
}

func (p *LoginPage) Refresh(ctx context.Context) (*LoginPage, error) {
	return refresh[*LoginPage](ctx, p.Base)
}
