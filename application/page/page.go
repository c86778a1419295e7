// Package page implements page objects: typed facades over one logical screen, produced by a
// Factory from a Registry of constructors. Actions that navigate return the destination page.
package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"login_automation/application/element"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ID identifies a page type
type ID string

const (
	LoginID           ID = "login"
	HomeID            ID = "home"
	PasswordRecoverID ID = "password_recover"
)

var ErrUnknownPage = errors.New("unknown page")

// Page is implemented by every page object
type Page interface {
	ID() ID
}

// Constructor builds a page. It must not have side effects.
type Constructor func(b Base) Page

// Base carries what every page needs. Concrete pages embed it.
type Base struct {
	id       ID
	factory  *Factory
	session  interfaces.Session
	logger   logrus.FieldLogger
	redactor interfaces.Redactor
}

func (b Base) ID() ID {
	return b.id
}

// Refresh - reloads the session and resolves a page of the same ID
func (b Base) Refresh(ctx context.Context) (Page, error) {
	if err := b.session.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload page: %w", err)
	}
	b.logger.Info("page refreshed")
	return b.factory.instantiate(ctx, b.id, entities.PageEventRefreshed)
}

func (b Base) elementOptions() []element.Option {
	return []element.Option{
		element.WithPolicy(b.factory.policy),
		element.WithClock(b.factory.clock),
		element.WithLogger(b.logger),
	}
}

func (b Base) secret(field, value string) string {
	return b.redactor.Value(field, value)
}

// Open - instantiates id and asserts it is a P
func Open[P Page](ctx context.Context, f *Factory, id ID) (P, error) {
	var zero P
	p, err := f.Instantiate(ctx, id)
	if err != nil {
		return zero, err
	}
	return assertPage[P](p, id)
}

func refresh[P Page](ctx context.Context, b Base) (P, error) {
	var zero P
	p, err := b.Refresh(ctx)
	if err != nil {
		return zero, err
	}
	return assertPage[P](p, b.id)
}

func transition[P Page](ctx context.Context, b Base, id ID) (P, error) {
	return Open[P](ctx, b.factory, id)
}

func assertPage[P Page](p Page, id ID) (P, error) {
	typed, ok := p.(P)
	if !ok {
		var zero P
		return zero, fmt.Errorf("page %q is %T, not %T", id, p, zero)
	}
	return typed, nil
}

// DisplayName - "login" -> "LoginPage", "password_recover" -> "PasswordRecoverPage"
func (id ID) DisplayName() string {
	var sb strings.Builder
	for _, part := range strings.Split(string(id), "_") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	sb.WriteString("Page")
	return sb.String()
}
