package page

import (
	"context"

	"login_automation/application/element"
)

const userNameClass = "avatar-full-name"

// HomePage is shown after a successful login
type HomePage struct {
	Base
	userName *element.Element
}

func newHomePage(b Base) Page {
	return &HomePage{
		Base:     b,
		userName: element.NewTextBlock(b.session, userNameClass, b.elementOptions()...),
	}
}

// IsAuthorized - true when the user name banner is rendered
func (p *HomePage) IsAuthorized(ctx context.Context) (bool, error) {
	displayed, err := p.userName.IsDisplayed(ctx)
	if err != nil {
		return false, err
	}
	if displayed {
		p.logger.Info("user name displayed")
	} else {
		p.logger.Info("user name not displayed")
	}
	return displayed, nil
}

func (p *HomePage) Refresh(ctx context.Context) (*HomePage, error) {
	return refresh[*HomePage](ctx, p.Base)
}
