package scenario

import (
	"context"

	"login_automation/application/page"
	"login_automation/domain/entities"
)

// Texts the Mira widget shows for rejected input
const (
	AlertWrongCredentials = "Неверные данные для авторизации"
	AlertEmptyCredentials = "Неверные данные для авторизации."
	RecoverUnknownUser    = "Пользователь с таким именем не найден."
	RecoverEmailSent      = "На ваш электронный адрес отправлена инструкция по восстановлению пароля."
)

const (
	wrongLogin    = "wqerasdfzvxcvhdgf"
	wrongPassword = "pass1234"
)

func padded(s string) string {
	return " " + s + " "
}

// LoginSuite - the login flow checks, in execution order
func LoginSuite() []Scenario {
	return []Scenario{
		{
			Name:        "success-login",
			Description: "valid login and password reach the home page",
			Run: func(ctx context.Context, env *Env) error {
				home, err := env.loginAndSubmit(ctx, env.Login, env.Password, false)
				if err != nil {
					return err
				}
				return expectAuthorized(ctx, home, "login with valid credentials")
			},
		},
		{
			Name:        "wrong-login",
			Description: "unknown login is rejected with an alert",
			Run: func(ctx context.Context, env *Env) error {
				return expectAlert(ctx, env, wrongLogin, wrongPassword, AlertWrongCredentials, "wrong login")
			},
		},
		{
			Name:        "wrong-password",
			Description: "valid login with a wrong password is rejected with an alert",
			Run: func(ctx context.Context, env *Env) error {
				return expectAlert(ctx, env, env.Login, wrongPassword, AlertWrongCredentials, "wrong password")
			},
		},
		{
			Name:        "empty-login",
			Description: "empty login and password are rejected with an alert",
			Run: func(ctx context.Context, env *Env) error {
				return expectAlert(ctx, env, "", "", AlertEmptyCredentials, "empty login")
			},
		},
		{
			Name:        "empty-password",
			Description: "empty password is rejected with an alert",
			Run: func(ctx context.Context, env *Env) error {
				return expectAlert(ctx, env, wrongLogin, "", AlertEmptyCredentials, "empty password")
			},
		},
		{
			Name:        "login-with-spaces",
			Description: "blanks around the login are ignored",
			Run: func(ctx context.Context, env *Env) error {
				home, err := env.loginAndSubmit(ctx, padded(env.Login), env.Password, false)
				if err != nil {
					return err
				}
				return expectAuthorized(ctx, home, "login surrounded by blanks")
			},
		},
		{
			Name:        "password-with-spaces",
			Description: "blanks around the password are ignored",
			Run: func(ctx context.Context, env *Env) error {
				home, err := env.loginAndSubmit(ctx, env.Login, padded(env.Password), false)
				if err != nil {
					return err
				}
				return expectAuthorized(ctx, home, "password surrounded by blanks")
			},
		},
		{
			Name:        "show-password",
			Description: "revealed password shows exactly what was typed",
			Run: func(ctx context.Context, env *Env) error {
				loginPage, err := env.LoginPage(ctx)
				if err != nil {
					return err
				}
				if err := loginPage.FillPasswordInput(ctx, env.Password); err != nil {
					return err
				}
				if err := loginPage.ClickShowPasswordButton(ctx); err != nil {
					return err
				}
				shown, err := loginPage.GetPassword(ctx)
				if err != nil {
					return err
				}
				return expectEqual("shown password", env.Password, shown)
			},
		},
		{
			Name:        "login-with-shown-password",
			Description: "login still works with the password revealed",
			Run: func(ctx context.Context, env *Env) error {
				home, err := env.loginAndSubmit(ctx, env.Login, padded(env.Password), true)
				if err != nil {
					return err
				}
				return expectAuthorized(ctx, home, "login with shown password")
			},
		},
		{
			Name:        "hotkey-login",
			Description: "login typed with Tab and submitted with Enter",
			Run:         hotkeyLogin,
		},
		{
			Name:        "recover-existing-user",
			Description: "recovery for a known user sends an email",
			Run: func(ctx context.Context, env *Env) error {
				recoverPage, err := env.recoverPassword(ctx, env.Login)
				if err != nil {
					return err
				}
				message, err := recoverPage.GetRecoveringUserSuccessMessage(ctx)
				if err != nil {
					return err
				}
				return expectEqual("recovery for "+env.Login, RecoverEmailSent, message)
			},
		},
		{
			Name:        "recover-unknown-user",
			Description: "recovery for an unknown user is refused",
			Run: func(ctx context.Context, env *Env) error {
				recoverPage, err := env.recoverPassword(ctx, wrongLogin)
				if err != nil {
					return err
				}
				message, err := recoverPage.GetRecoveringUserAlertMessage(ctx)
				if err != nil {
					return err
				}
				return expectEqual("recovery for "+wrongLogin, RecoverUnknownUser, message)
			},
		},
	}
}

func expectAlert(ctx context.Context, env *Env, login, password, expected, what string) error {
	if _, err := env.loginAndSubmit(ctx, login, password, false); err != nil {
		return err
	}
	text, err := env.handleAlert(ctx)
	if err != nil {
		return err
	}
	return expectEqual(what, expected, text)
}

func hotkeyLogin(ctx context.Context, env *Env) error {
	loginPage, err := env.LoginPage(ctx)
	if err != nil {
		return err
	}
	if err := loginPage.ClickLoginInput(ctx); err != nil {
		return err
	}
	if err := loginPage.FillCurrent(ctx, env.Login); err != nil {
		return err
	}
	if err := loginPage.PressKey(ctx, entities.KeyTab); err != nil {
		return err
	}
	if err := loginPage.FillCurrent(ctx, env.Password); err != nil {
		return err
	}
	if err := loginPage.PressKey(ctx, entities.KeyEnter); err != nil {
		return err
	}
	home, err := page.Open[*page.HomePage](ctx, env.Factory, page.HomeID)
	if err != nil {
		return err
	}
	return expectAuthorized(ctx, home, "hotkey login")
}
