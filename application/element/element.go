// Package element wraps located DOM nodes behind a visibility gate.
//
// Every operation re-resolves the locator through the session and waits for the node to
// become visible before touching it, so callers never act on a node that has not rendered.
package element

import (
	"context"
	"errors"
	"fmt"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Capability is a set of operations an element kind allows
type Capability uint8

const (
	CanClick Capability = 1 << iota
	CanRead
	CanFill
)

// Has - reports whether every capability in o is present
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

func (c Capability) String() string {
	names := []struct {
		c    Capability
		name string
	}{{CanClick, "click"}, {CanRead, "read"}, {CanFill, "fill"}}
	s := ""
	for _, n := range names {
		if c.Has(n.c) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Element is one interactive node on a page
type Element struct {
	locator entities.Locator
	tag     string
	caps    Capability
	session interfaces.Session
	policy  entities.WaitPolicy
	clock   interfaces.Clock
	logger  logrus.FieldLogger
}

// Option customises an element at construction
type Option func(*Element)

// WithPolicy - overrides the default wait policy
func WithPolicy(p entities.WaitPolicy) Option {
	return func(e *Element) { e.policy = p }
}

// WithClock - replaces the wall clock used by the wait loop
func WithClock(c interfaces.Clock) Option {
	return func(e *Element) { e.clock = c }
}

// WithLogger - sets the logger for wait outcomes
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Element) { e.logger = l }
}

// New - creates an element bound to locator with the given capabilities
func New(session interfaces.Session, tag string, locator entities.Locator, caps Capability, opts ...Option) *Element {
	e := &Element{
		locator: locator,
		tag:     tag,
		caps:    caps,
		session: session,
		policy:  entities.DefaultWaitPolicy(),
		clock:   SystemClock{},
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.policy = e.policy.OrDefault()
	e.logger = e.logger.WithField("locator", locator.String())
	return e
}

// WithPolicy - returns a copy of the element that waits with p
func (e *Element) WithPolicy(p entities.WaitPolicy) *Element {
	cp := *e
	cp.policy = p.OrDefault()
	return &cp
}

func (e *Element) Locator() entities.Locator {
	return e.locator
}

func (e *Element) Tag() string {
	return e.tag
}

func (e *Element) Capabilities() Capability {
	return e.caps
}

func (e *Element) Policy() entities.WaitPolicy {
	return e.policy
}

// WaitVisible - blocks until the element is visible or the policy timeout elapses
func (e *Element) WaitVisible(ctx context.Context) error {
	_, err := e.waitVisible(ctx)
	return err
}

// IsDisplayed - same wait as WaitVisible, but a timeout is reported as false
func (e *Element) IsDisplayed(ctx context.Context) (bool, error) {
	_, err := e.waitVisible(ctx)
	if errors.Is(err, entities.ErrElementNotVisible) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Click - waits for the element, then clicks it
func (e *Element) Click(ctx context.Context) error {
	if err := e.require(CanClick, "click"); err != nil {
		return err
	}
	handle, err := e.waitVisible(ctx)
	if err != nil {
		return err
	}
	if err := handle.Click(ctx); err != nil {
		return fmt.Errorf("failed to click %s: %w", e.locator, err)
	}
	return nil
}

// GetText - waits for the element, then returns its rendered text
func (e *Element) GetText(ctx context.Context) (string, error) {
	if err := e.require(CanRead, "read text"); err != nil {
		return "", err
	}
	handle, err := e.waitVisible(ctx)
	if err != nil {
		return "", err
	}
	text, err := handle.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", e.locator, err)
	}
	return text, nil
}

// Fill - waits for the input, then replaces its value
func (e *Element) Fill(ctx context.Context, value string) error {
	if err := e.require(CanFill, "fill"); err != nil {
		return err
	}
	handle, err := e.waitVisible(ctx)
	if err != nil {
		return err
	}
	if err := handle.SetValue(ctx, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", e.locator, err)
	}
	return nil
}

// GetValue - waits for the input, then returns its current value
func (e *Element) GetValue(ctx context.Context) (string, error) {
	if err := e.require(CanFill, "read value"); err != nil {
		return "", err
	}
	handle, err := e.waitVisible(ctx)
	if err != nil {
		return "", err
	}
	value, err := handle.Value(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read value of %s: %w", e.locator, err)
	}
	return value, nil
}

func (e *Element) require(c Capability, op string) error {
	if e.caps.Has(c) {
		return nil
	}
	return fmt.Errorf("%w: cannot %s <%s> %s", entities.ErrUnsupportedOperation, op, e.tag, e.locator)
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s> %s", e.tag, e.locator)
}
