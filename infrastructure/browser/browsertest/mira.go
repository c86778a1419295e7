package browsertest

import (
	"context"
	"strings"

	"login_automation/domain/entities"
)

// Texts rendered by the Mira login widget
const (
	MiraWrongCredentials  = "Неверные данные для авторизации"
	MiraEmptyCredentials  = "Неверные данные для авторизации."
	MiraUnknownUser       = "Пользователь с таким именем не найден."
	MiraRecoveryEmailSent = "На ваш электронный адрес отправлена инструкция по восстановлению пароля."
)

const (
	miraInputClass        = "mira-widget-login-input mira-default-login-page-text-input"
	miraSubmitClass       = "mira-widget-login-button mira-default-login-page-button-submit"
	miraShowPasswordClass = "mira-widget-login-button"
	miraRecoverLinkClass  = "mira-default-login-page-link"
	miraSendRecoverClass  = "mira-page-forgot-password-button"
)

// Locators of the Mira widget DOM
var (
	MiraLoginInput     = entities.ByClassAndName("input", miraInputClass, "user")
	MiraPasswordInput  = entities.ByClassAndName("input", miraInputClass, "password")
	MiraSubmitButton   = entities.ByClass("button", miraSubmitClass)
	MiraShowPassword   = entities.ByClass("button", miraShowPasswordClass)
	MiraRecoverLink    = entities.ByClass("a", miraRecoverLinkClass)
	MiraUserName       = entities.ByClass("div", "avatar-full-name")
	MiraRecoverInput   = entities.ByClass("input", miraInputClass)
	MiraSendRecover    = entities.ByClass("button", miraSendRecoverClass)
	MiraAlertMessage   = entities.ByClass("div", "alert")
	MiraSuccessMessage = entities.ByClass("div", "success")
)

// MiraApp simulates the login widget on top of a Session
type MiraApp struct {
	BaseURL  string
	Login    string
	Password string
	FullName string

	// RenderDelay is the number of visibility checks newly shown nodes stay hidden for
	RenderDelay int

	// PasswordShown is toggled by the show-password button
	PasswordShown bool
}

// NewSession - session opened on the login page of the app
func (a *MiraApp) NewSession() *Session {
	s := NewSession()
	s.url = a.BaseURL
	s.OnKey = a.onKey
	s.OnReload = a.reload
	a.showLogin(s)
	return s
}

func (a *MiraApp) showLogin(s *Session) {
	s.mu.Lock()
	s.nodes = map[entities.Locator]*Node{
		MiraLoginInput:    {Visible: true},
		MiraPasswordInput: {Visible: true},
		MiraSubmitButton:  {Visible: true, Text: "Войти", OnClick: a.submit},
		MiraShowPassword:  {Visible: true, OnClick: func(*Session) { a.PasswordShown = !a.PasswordShown }},
		MiraRecoverLink:   {Visible: true, Text: "Забыли пароль?", OnClick: a.showRecover},
	}
	s.mu.Unlock()
}

func (a *MiraApp) showHome(s *Session) {
	s.mu.Lock()
	s.url = strings.TrimSuffix(a.BaseURL, "/") + "/home"
	s.focused = ""
	s.nodes = map[entities.Locator]*Node{
		MiraUserName: {Visible: true, VisibleAfter: a.RenderDelay, Text: a.FullName},
	}
	s.mu.Unlock()
}

func (a *MiraApp) showRecover(s *Session) {
	s.mu.Lock()
	s.url = strings.TrimSuffix(a.BaseURL, "/") + "/forgot-password"
	s.focused = ""
	s.nodes = map[entities.Locator]*Node{
		MiraRecoverInput:   {Visible: true, VisibleAfter: a.RenderDelay},
		MiraSendRecover:    {Visible: true, OnClick: a.sendRecover},
		MiraAlertMessage:   {Visible: false},
		MiraSuccessMessage: {Visible: false},
	}
	s.mu.Unlock()
}

// reload re-renders the current screen, dropping anything typed
func (a *MiraApp) reload(s *Session) {
	url, _ := s.CurrentURL(context.Background())
	switch {
	case strings.HasSuffix(url, "/home"):
		a.showHome(s)
	case strings.HasSuffix(url, "/forgot-password"):
		a.showRecover(s)
	default:
		a.showLogin(s)
	}
}

func (a *MiraApp) submit(s *Session) {
	s.mu.Lock()
	login := strings.TrimSpace(s.nodes[MiraLoginInput].Value)
	password := strings.TrimSpace(s.nodes[MiraPasswordInput].Value)
	s.mu.Unlock()

	switch {
	case login == "" || password == "":
		s.OpenAlert(MiraEmptyCredentials)
	case login == a.Login && password == a.Password:
		a.showHome(s)
	default:
		s.OpenAlert(MiraWrongCredentials)
	}
}

func (a *MiraApp) sendRecover(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	login := strings.TrimSpace(s.nodes[MiraRecoverInput].Value)
	if login == a.Login {
		s.nodes[MiraSuccessMessage] = &Node{Visible: true, Text: MiraRecoveryEmailSent}
		return
	}
	s.nodes[MiraAlertMessage] = &Node{Visible: true, Text: MiraUnknownUser}
}

func (a *MiraApp) onKey(s *Session, key entities.Key) {
	s.mu.Lock()
	focused := s.focused
	s.mu.Unlock()

	switch key {
	case entities.KeyTab:
		if focused == MiraLoginInput {
			s.Focus(MiraPasswordInput)
		}
	case entities.KeyEnter:
		if focused == MiraLoginInput || focused == MiraPasswordInput {
			a.submit(s)
		}
	}
}
