package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
)

const alertPollInterval = 100 * time.Millisecond

// NewLauncher - picks the session driver named by cfg.Driver
func NewLauncher(cfg *config.Config, logger *logrus.Logger) (interfaces.Launcher, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return NewPlaywrightLauncher(cfg, logger), nil
	case config.DriverSelenium:
		return NewSeleniumLauncher(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}

// pollUntil - calls fn immediately and then every interval until it reports done,
// fails, ctx ends or timeout elapses. Returns false on timeout.
func pollUntil(ctx context.Context, timeout, interval time.Duration, fn func() (bool, error)) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		done, err := fn()
		if err != nil || done {
			return done, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		if interval > remaining {
			interval = remaining
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// isClosedErr - errors raised when the browser is already gone
func isClosedErr(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

func xpathSelector(loc entities.Locator) string {
	return "xpath=" + loc.String()
}
