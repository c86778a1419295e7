package browsertest

import (
	"context"
	"sync"

	"login_automation/domain/interfaces"
)

// Launcher hands out sessions built by New
type Launcher struct {
	New func() *Session

	mu       sync.Mutex
	launched []*Session
}

var _ interfaces.Launcher = (*Launcher)(nil)

func (l *Launcher) Launch(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := NewSession()
	if l.New != nil {
		s = l.New()
	}
	l.mu.Lock()
	l.launched = append(l.launched, s)
	l.mu.Unlock()
	return s, nil
}

func (l *Launcher) Name() string {
	return "memory"
}

// Launched - every session handed out so far
func (l *Launcher) Launched() []*Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Session(nil), l.launched...)
}
