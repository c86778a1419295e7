// Package browsertest provides an in-memory Session and a controllable Clock for tests.
package browsertest

import (
	"context"
	"errors"
	"sync"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

// Node is a fake DOM node. VisibleAfter makes the first N visibility checks report false.
type Node struct {
	Text         string
	Value        string
	Visible      bool
	VisibleAfter int

	// OnClick runs after the click is recorded, without the session lock held
	OnClick func(s *Session)

	checks int
	clicks int
}

// Session is an in-memory interfaces.Session
type Session struct {
	mu      sync.Mutex
	nodes   map[entities.Locator]*Node
	url     string
	focused entities.Locator
	alerts  []string
	keys    []entities.Key
	reloads int
	locates int
	closed  bool

	// LocateErr, when set, is returned by every Locate call
	LocateErr error

	// OnReload runs after each Reload
	OnReload func(s *Session)

	// OnKey runs after each PressKey
	OnKey func(s *Session, key entities.Key)
}

var _ interfaces.Session = (*Session)(nil)

// NewSession - creates an empty session
func NewSession() *Session {
	return &Session{nodes: make(map[entities.Locator]*Node)}
}

// Add - registers node under locator and returns it
func (s *Session) Add(loc entities.Locator, n *Node) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[loc] = n
	return n
}

// Remove - deletes the node at locator
func (s *Session) Remove(loc entities.Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, loc)
}

// Node - returns the node at locator or nil
func (s *Session) Node(loc entities.Locator) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[loc]
}

// SetVisible - toggles visibility of the node at locator
func (s *Session) SetVisible(loc entities.Locator, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[loc]; ok {
		n.Visible = visible
	}
}

// SetText - sets the text of the node at locator
func (s *Session) SetText(loc entities.Locator, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[loc]; ok {
		n.Text = text
	}
}

// Checks - number of visibility checks made against the node at locator
func (s *Session) Checks(loc entities.Locator) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[loc]; ok {
		return n.checks
	}
	return 0
}

// Clicks - number of clicks received by the node at locator
func (s *Session) Clicks(loc entities.Locator) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[loc]; ok {
		return n.clicks
	}
	return 0
}

// OpenAlert - opens a JS dialog with msg
func (s *Session) OpenAlert(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, msg)
}

// Focused - locator of the node holding keyboard focus
func (s *Session) Focused() entities.Locator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Focus - moves keyboard focus to locator
func (s *Session) Focus(loc entities.Locator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = loc
}

// Keys - keys pressed so far
func (s *Session) Keys() []entities.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Key(nil), s.keys...)
}

func (s *Session) Reloads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloads
}

func (s *Session) Locates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locates
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Locate(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locates++
	if s.LocateErr != nil {
		return nil, s.LocateErr
	}
	if _, ok := s.nodes[loc]; !ok {
		return nil, entities.ErrElementNotFound
	}
	return &handle{s: s, loc: loc}, nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	return nil
}

func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.reloads++
	hook := s.OnReload
	s.mu.Unlock()
	if hook != nil {
		hook(s)
	}
	return nil
}

func (s *Session) CurrentURL(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *Session) TypeText(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[s.focused]
	if !ok {
		return errors.New("no focused element")
	}
	n.Value += text
	return nil
}

func (s *Session) PressKey(ctx context.Context, key entities.Key) error {
	s.mu.Lock()
	s.keys = append(s.keys, key)
	hook := s.OnKey
	s.mu.Unlock()
	if hook != nil {
		hook(s, key)
	}
	return nil
}

func (s *Session) AlertText(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return "", entities.ErrNoAlert
	}
	return s.alerts[0], nil
}

func (s *Session) AcceptAlert(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) == 0 {
		return entities.ErrNoAlert
	}
	s.alerts = s.alerts[1:]
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// handle resolves its node on every call, like a real stale-able DOM reference
type handle struct {
	s   *Session
	loc entities.Locator
}

func (h *handle) node() (*Node, error) {
	n, ok := h.s.nodes[h.loc]
	if !ok {
		return nil, entities.ErrElementNotFound
	}
	return n, nil
}

func (h *handle) IsVisible(ctx context.Context) (bool, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	n, err := h.node()
	if err != nil {
		return false, err
	}
	n.checks++
	if n.checks <= n.VisibleAfter {
		return false, nil
	}
	return n.Visible, nil
}

func (h *handle) Click(ctx context.Context) error {
	h.s.mu.Lock()
	n, err := h.node()
	if err != nil {
		h.s.mu.Unlock()
		return err
	}
	n.clicks++
	h.s.focused = h.loc
	hook := n.OnClick
	h.s.mu.Unlock()
	if hook != nil {
		hook(h.s)
	}
	return nil
}

func (h *handle) Text(ctx context.Context) (string, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	n, err := h.node()
	if err != nil {
		return "", err
	}
	return n.Text, nil
}

func (h *handle) SetValue(ctx context.Context, value string) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	n, err := h.node()
	if err != nil {
		return err
	}
	n.Value = value
	return nil
}

func (h *handle) Value(ctx context.Context) (string, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	n, err := h.node()
	if err != nil {
		return "", err
	}
	return n.Value, nil
}
