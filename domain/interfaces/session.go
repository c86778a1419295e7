package interfaces

import (
	"context"

	"login_automation/domain/entities"
)

// ElementHandle is one resolved DOM node. Handles are short-lived and must not be cached
// across operations.
type ElementHandle interface {
	// IsVisible reports whether the node is rendered and visible
	IsVisible(ctx context.Context) (bool, error)

	// Click clicks the node
	Click(ctx context.Context) error

	// Text returns the rendered text content
	Text(ctx context.Context) (string, error)

	// SetValue replaces the current value of an input node
	SetValue(ctx context.Context, value string) error

	// Value returns the current value of an input node
	Value(ctx context.Context) (string, error)
}

// Session is the live browser-automation connection owned by a single test
type Session interface {
	// Locate resolves a locator. Returns entities.ErrElementNotFound when nothing matches.
	Locate(ctx context.Context, locator entities.Locator) (ElementHandle, error)

	// Navigate opens a URL in the active page
	Navigate(ctx context.Context, url string) error

	// Reload reloads the active page
	Reload(ctx context.Context) error

	// CurrentURL returns the URL of the active page
	CurrentURL(ctx context.Context) (string, error)

	// TypeText types text into whatever node has keyboard focus
	TypeText(ctx context.Context, text string) error

	// PressKey presses a single key on the focused node
	PressKey(ctx context.Context, key entities.Key) error

	// AlertText returns the message of the open JS dialog, or entities.ErrNoAlert
	AlertText(ctx context.Context) (string, error)

	// AcceptAlert accepts the open JS dialog
	AcceptAlert(ctx context.Context) error

	// Close releases the browser and driver
	Close() error
}

// Launcher provisions a fresh session for one test
type Launcher interface {
	Launch(ctx context.Context) (Session, error)

	// Name identifies the driver in reports
	Name() string
}
