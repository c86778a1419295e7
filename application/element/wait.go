package element

import (
	"context"
	"errors"
	"time"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
)

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// waitVisible checks once immediately, then every Poll until the deadline. A pause never
// extends past the deadline. On success it returns the handle that was seen visible.
func (e *Element) waitVisible(ctx context.Context) (interfaces.ElementHandle, error) {
	start := e.clock.Now()
	deadline := start.Add(e.policy.Timeout)
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attempts++
		handle, visible, err := e.check(ctx)
		if err != nil {
			return nil, err
		}
		if visible {
			e.logger.Debugf("condition %s met after %d checks in %s", e.policy.Condition, attempts, e.clock.Now().Sub(start))
			return handle, nil
		}

		remaining := deadline.Sub(e.clock.Now())
		if remaining <= 0 {
			break
		}
		pause := e.policy.Poll
		if pause > remaining {
			pause = remaining
		}
		if err := e.clock.Sleep(ctx, pause); err != nil {
			return nil, err
		}
	}

	e.logger.Warnf("condition %s not met for %s", e.policy.Condition, e.policy.Timeout)
	return nil, &entities.ElementNotVisibleError{
		Locator:  e.locator,
		Timeout:  e.policy.Timeout,
		Attempts: attempts,
	}
}

// check resolves the locator once. A locator matching nothing counts as not visible.
func (e *Element) check(ctx context.Context) (interfaces.ElementHandle, bool, error) {
	handle, err := e.session.Locate(ctx, e.locator)
	if errors.Is(err, entities.ErrElementNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	visible, err := handle.IsVisible(ctx)
	if errors.Is(err, entities.ErrElementNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return handle, visible, nil
}
