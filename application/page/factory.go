package page

import (
	"context"
	"fmt"
	"strings"

	"login_automation/application/element"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Observer is notified after a page object has been produced
type Observer func(ctx context.Context, event entities.PageEvent)

// Factory produces page objects bound to one session
type Factory struct {
	session   interfaces.Session
	registry  *Registry
	policy    entities.WaitPolicy
	clock     interfaces.Clock
	logger    logrus.FieldLogger
	redactor  interfaces.Redactor
	observers []Observer
}

type FactoryOption func(*Factory)

func WithRegistry(r *Registry) FactoryOption {
	return func(f *Factory) { f.registry = r }
}

// WithWaitPolicy - policy handed to every element of every page
func WithWaitPolicy(p entities.WaitPolicy) FactoryOption {
	return func(f *Factory) { f.policy = p.OrDefault() }
}

func WithClock(c interfaces.Clock) FactoryOption {
	return func(f *Factory) { f.clock = c }
}

func WithLogger(l logrus.FieldLogger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

func WithRedactor(r interfaces.Redactor) FactoryOption {
	return func(f *Factory) { f.redactor = r }
}

func WithObserver(o Observer) FactoryOption {
	return func(f *Factory) { f.observers = append(f.observers, o) }
}

// NewFactory - creates a factory over session with the default registry and wait policy
func NewFactory(session interfaces.Session, opts ...FactoryOption) *Factory {
	f := &Factory{
		session:  session,
		registry: DefaultRegistry(),
		policy:   entities.DefaultWaitPolicy(),
		clock:    element.SystemClock{},
		logger:   logrus.StandardLogger(),
		redactor: passwordMask{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Session - the session pages of this factory act on
func (f *Factory) Session() interfaces.Session {
	return f.session
}

// Instantiate - builds the page registered under id for the active browser page
func (f *Factory) Instantiate(ctx context.Context, id ID) (Page, error) {
	return f.instantiate(ctx, id, entities.PageEventOpened)
}

func (f *Factory) instantiate(ctx context.Context, id ID, kind entities.PageEventKind) (Page, error) {
	ctor, ok := f.registry.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}

	p := ctor(Base{
		id:       id,
		factory:  f,
		session:  f.session,
		logger:   f.logger.WithField("page", id.DisplayName()),
		redactor: f.redactor,
	})

	url, err := f.session.CurrentURL(ctx)
	if err != nil {
		f.logger.Warnf("failed to read current url: %v", err)
	}
	event := entities.PageEvent{
		Kind: kind,
		Page: string(id),
		URL:  url,
		At:   f.clock.Now(),
	}
	for _, observe := range f.observers {
		observe(ctx, event)
	}
	return p, nil
}

// LogObserver - logs "<Page> opened" for every produced page
func LogObserver(logger logrus.FieldLogger) Observer {
	return func(ctx context.Context, event entities.PageEvent) {
		logger.WithField("url", event.URL).Infof("%s %s", ID(event.Page).DisplayName(), event.Kind)
	}
}

// passwordMask hides values of password-like fields when no redactor is configured
type passwordMask struct{}

func (passwordMask) IsSensitive(field string) bool {
	return strings.Contains(strings.ToLower(field), "password")
}

func (m passwordMask) Value(field, value string) string {
	if m.IsSensitive(field) {
		return "[REDACTED]"
	}
	return value
}

func (passwordMask) Scrub(s string) string {
	return s
}
