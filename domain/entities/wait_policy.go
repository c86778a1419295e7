package entities

import (
	"errors"
	"fmt"
	"time"
)

// Condition is the state an element is waited for
type Condition string

const (
	ConditionVisible Condition = "visible"
)

const (
	DefaultWaitTimeout = 10 * time.Second
	DefaultPollEvery   = 1 * time.Second
)

// WaitPolicy bounds the visibility gate: how long to wait and how often to check
type WaitPolicy struct {
	Timeout   time.Duration `json:"timeout"`
	Poll      time.Duration `json:"poll"`
	Condition Condition     `json:"condition"`
}

// DefaultWaitPolicy - 10s timeout polled every second for visibility
func DefaultWaitPolicy() WaitPolicy {
	return WaitPolicy{
		Timeout:   DefaultWaitTimeout,
		Poll:      DefaultPollEvery,
		Condition: ConditionVisible,
	}
}

// OrDefault - replaces a non-positive timeout or poll and an empty condition with the
// defaults, so a policy built by hand always terminates and never spins
func (p WaitPolicy) OrDefault() WaitPolicy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultWaitTimeout
	}
	if p.Poll <= 0 {
		p.Poll = DefaultPollEvery
	}
	if p.Condition == "" {
		p.Condition = ConditionVisible
	}
	return p
}

// Validate - checks that the policy can terminate
func (p WaitPolicy) Validate() error {
	var errs []error
	if p.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("wait timeout must be positive, got %s", p.Timeout))
	}
	if p.Poll <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", p.Poll))
	}
	if p.Condition != ConditionVisible {
		errs = append(errs, fmt.Errorf("unsupported wait condition %q", p.Condition))
	}
	return errors.Join(errs...)
}
