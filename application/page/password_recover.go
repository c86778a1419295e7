package page

import (
	"context"

	"login_automation/application/element"
)

const (
	sendRecoverEmailButtonClass = "mira-page-forgot-password-button"
	alertMessageClass           = "alert"
	successMessageClass         = "success"
)

// PasswordRecoverPage requests a password reset email
type PasswordRecoverPage struct {
	Base
	loginInput             *element.Element
	sendRecoverEmailButton *element.Element
	alertMessage           *element.Element
	successMessage         *element.Element
}

func newPasswordRecoverPage(b Base) Page {
	opts := b.elementOptions()
	return &PasswordRecoverPage{
		Base:                   b,
		loginInput:             element.NewInput(b.session, loginInputClass, opts...),
		sendRecoverEmailButton: element.NewButton(b.session, sendRecoverEmailButtonClass, opts...),
		alertMessage:           element.NewTextBlock(b.session, alertMessageClass, opts...),
		successMessage:         element.NewTextBlock(b.session, successMessageClass, opts...),
	}
}

func (p *PasswordRecoverPage) FillLoginInput(ctx context.Context, login string) error {
	if err := p.loginInput.Fill(ctx, login); err != nil {
		return err
	}
	p.logger.Infof("login to recover input: %s", login)
	return nil
}

func (p *PasswordRecoverPage) ClickSendRecoverEmailButton(ctx context.Context) error {
	if err := p.sendRecoverEmailButton.Click(ctx); err != nil {
		return err
	}
	p.logger.Info("send recover email button clicked")
	return nil
}

// GetRecoveringUserAlertMessage - alert banner text, or "" when it is not shown
func (p *PasswordRecoverPage) GetRecoveringUserAlertMessage(ctx context.Context) (string, error) {
	return p.recoveringUserMessage(ctx, p.alertMessage)
}

// GetRecoveringUserSuccessMessage - success banner text, or "" when it is not shown
func (p *PasswordRecoverPage) GetRecoveringUserSuccessMessage(ctx context.Context) (string, error) {
	return p.recoveringUserMessage(ctx, p.successMessage)
}

func (p *PasswordRecoverPage) recoveringUserMessage(ctx context.Context, message *element.Element) (string, error) {
	displayed, err := message.IsDisplayed(ctx)
	if err != nil {
		return "", err
	}
	text := ""
	if displayed {
		if text, err = message.GetText(ctx); err != nil {
			return "", err
		}
	}
	p.logger.Infof("recovering password message: %s", text)
	return text, nil
}

func (p *PasswordRecoverPage) Refresh(ctx context.Context) (*PasswordRecoverPage, error) {
	return refresh[*PasswordRecoverPage](ctx, p.Base)
}
