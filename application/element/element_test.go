package element

import (
	"context"
	"errors"
	"testing"
	"time"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/browser/browsertest"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestElement(t *testing.T, s *browsertest.Session, build func(interfaces.Session, string, ...Option) *Element) (*Element, *browsertest.Clock) {
	t.Helper()
	clock := browsertest.NewClock(epoch)
	logger, _ := logtest.NewNullLogger()
	return build(s, "target", WithClock(clock), WithLogger(logger)), clock
}

func TestVariantLocators(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()

	tests := []struct {
		name string
		el   *Element
		want entities.Locator
		caps Capability
	}{
		{"button", NewButton(s, "submit"), "//button[@class='submit']", CanClick | CanRead},
		{"link", NewLink(s, "recover"), "//a[@class='recover']", CanClick | CanRead},
		{"input", NewInput(s, "login"), "//input[@class='login']", CanClick | CanRead | CanFill},
		{"input by name", NewInputByName(s, "login", "user"), "//input[@class='login'][@name='user']", CanClick | CanRead | CanFill},
		{"text block", NewTextBlock(s, "alert"), "//div[@class='alert']", CanRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.el.Locator())
			assert.Equal(t, tt.caps, tt.el.Capabilities())
			assert.Equal(t, entities.DefaultWaitPolicy(), tt.el.Policy())
		})
	}
}

func TestWaitVisible_ImmediatelyVisible(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, clock := newTestElement(t, s, NewButton)
	s.Add(el.Locator(), &browsertest.Node{Visible: true})

	require.NoError(t, el.WaitVisible(context.Background()))
	assert.Equal(t, 1, s.Checks(el.Locator()))
	assert.Empty(t, clock.Sleeps())
}

func TestWaitVisible_AppearsAfterPolling(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, clock := newTestElement(t, s, NewButton)
	s.Add(el.Locator(), &browsertest.Node{Visible: true, VisibleAfter: 3})

	require.NoError(t, el.WaitVisible(context.Background()))
	assert.Equal(t, 4, s.Checks(el.Locator()))
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, clock.Sleeps())
}

func TestWaitVisible_TimeoutBoundary(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, clock := newTestElement(t, s, NewButton)
	s.Add(el.Locator(), &browsertest.Node{Visible: false})

	err := el.WaitVisible(context.Background())
	require.ErrorIs(t, err, entities.ErrElementNotVisible)

	var nv *entities.ElementNotVisibleError
	require.True(t, errors.As(err, &nv))
	assert.Equal(t, el.Locator(), nv.Locator)
	assert.Equal(t, 10*time.Second, nv.Timeout)
	// one immediate check plus one per elapsed second
	assert.Equal(t, 11, nv.Attempts)
	assert.Equal(t, 11, s.Checks(el.Locator()))

	elapsed := clock.Now().Sub(epoch)
	assert.GreaterOrEqual(t, elapsed, 10*time.Second)
	assert.LessOrEqual(t, elapsed, 11*time.Second)
}

func TestWaitVisible_AbsentElementCollapsesToNotVisible(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, _ := newTestElement(t, s, NewTextBlock)

	err := el.WaitVisible(context.Background())
	require.ErrorIs(t, err, entities.ErrElementNotVisible)
	assert.Equal(t, 11, s.Locates())
}

func TestWaitVisible_SessionErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	boom := errors.New("session crashed")
	s.LocateErr = boom
	el, clock := newTestElement(t, s, NewButton)

	err := el.WaitVisible(context.Background())
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, entities.ErrElementNotVisible)
	assert.Empty(t, clock.Sleeps())
}

func TestWaitVisible_ContextCancelled(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, _ := newTestElement(t, s, NewButton)
	s.Add(el.Locator(), &browsertest.Node{Visible: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, el.WaitVisible(ctx), context.Canceled)
	assert.Zero(t, s.Locates())
}

func TestWaitVisible_RealClockShortPolicy(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	policy := entities.WaitPolicy{Timeout: 60 * time.Millisecond, Poll: 10 * time.Millisecond, Condition: entities.ConditionVisible}
	el := NewButton(s, "slow", WithPolicy(policy))
	s.Add(el.Locator(), &browsertest.Node{Visible: false})

	start := time.Now()
	err := el.WaitVisible(context.Background())
	elapsed := time.Since(start)

	require.ErrorIs(t, err, entities.ErrElementNotVisible)
	assert.GreaterOrEqual(t, elapsed, policy.Timeout)
	assert.GreaterOrEqual(t, s.Checks(el.Locator()), 2)
}

func TestIsDisplayed(t *testing.T) {
	t.Parallel()

	t.Run("visible", func(t *testing.T) {
		s := browsertest.NewSession()
		el, _ := newTestElement(t, s, NewTextBlock)
		s.Add(el.Locator(), &browsertest.Node{Visible: true, VisibleAfter: 2})
		ok, err := el.IsDisplayed(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("hidden", func(t *testing.T) {
		s := browsertest.NewSession()
		el, _ := newTestElement(t, s, NewTextBlock)
		s.Add(el.Locator(), &browsertest.Node{Visible: false})
		ok, err := el.IsDisplayed(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		s := browsertest.NewSession()
		el, _ := newTestElement(t, s, NewTextBlock)
		ok, err := el.IsDisplayed(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("session failure", func(t *testing.T) {
		s := browsertest.NewSession()
		s.LocateErr = errors.New("disconnected")
		el, _ := newTestElement(t, s, NewTextBlock)
		ok, err := el.IsDisplayed(context.Background())
		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestClick(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, _ := newTestElement(t, s, NewButton)
	clicked := false
	s.Add(el.Locator(), &browsertest.Node{Visible: true, OnClick: func(*browsertest.Session) { clicked = true }})

	require.NoError(t, el.Click(context.Background()))
	assert.True(t, clicked)
	assert.Equal(t, 1, s.Clicks(el.Locator()))
}

func TestOperationsDoNothingWhenGateTimesOut(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, _ := newTestElement(t, s, NewInput)
	node := s.Add(el.Locator(), &browsertest.Node{Visible: false, Value: "before", Text: "label"})
	ctx := context.Background()

	require.ErrorIs(t, el.Click(ctx), entities.ErrElementNotVisible)
	require.ErrorIs(t, el.Fill(ctx, "after"), entities.ErrElementNotVisible)
	_, err := el.GetText(ctx)
	require.ErrorIs(t, err, entities.ErrElementNotVisible)
	_, err = el.GetValue(ctx)
	require.ErrorIs(t, err, entities.ErrElementNotVisible)

	assert.Zero(t, s.Clicks(el.Locator()))
	assert.Equal(t, "before", node.Value)
}

func TestGetText(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el, _ := newTestElement(t, s, NewTextBlock)
	s.Add(el.Locator(), &browsertest.Node{Visible: true, Text: "Пользователь с таким именем не найден."})

	text, err := el.GetText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Пользователь с таким именем не найден.", text)
}

func TestCapabilityRestrictions(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	ctx := context.Background()

	banner, _ := newTestElement(t, s, NewTextBlock)
	s.Add(banner.Locator(), &browsertest.Node{Visible: true})
	require.ErrorIs(t, banner.Click(ctx), entities.ErrUnsupportedOperation)
	require.ErrorIs(t, banner.Fill(ctx, "x"), entities.ErrUnsupportedOperation)

	button, _ := newTestElement(t, s, NewButton)
	s.Add(button.Locator(), &browsertest.Node{Visible: true})
	_, err := button.GetValue(ctx)
	require.ErrorIs(t, err, entities.ErrUnsupportedOperation)

	// rejected before the gate runs
	assert.Zero(t, s.Checks(banner.Locator()))
	assert.Zero(t, s.Checks(button.Locator()))
}

func TestWithPolicyReturnsCopy(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	el := NewButton(s, "x")
	short := entities.WaitPolicy{Timeout: time.Millisecond, Poll: time.Millisecond, Condition: entities.ConditionVisible}

	cp := el.WithPolicy(short)
	assert.Equal(t, short, cp.Policy())
	assert.Equal(t, entities.DefaultWaitPolicy(), el.Policy())
	assert.Equal(t, el.Locator(), cp.Locator())
}

func TestZeroPollFallsBackToDefault(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	clock := browsertest.NewClock(epoch)
	spinning := entities.WaitPolicy{Timeout: 3 * time.Second, Condition: entities.ConditionVisible}

	el := NewButton(s, "x", WithPolicy(spinning), WithClock(clock))
	assert.Equal(t, entities.DefaultPollEvery, el.Policy().Poll)
	assert.Equal(t, 3*time.Second, el.Policy().Timeout)

	require.ErrorIs(t, el.WaitVisible(context.Background()), entities.ErrElementNotVisible)
	assert.Equal(t, 4, s.Locates())

	cp := el.WithPolicy(entities.WaitPolicy{Poll: -time.Second})
	assert.Equal(t, entities.DefaultWaitPolicy(), cp.Policy())
}

func TestTimeoutIsLogged(t *testing.T) {
	t.Parallel()
	s := browsertest.NewSession()
	logger, hook := logtest.NewNullLogger()
	el := NewButton(s, "x", WithClock(browsertest.NewClock(epoch)), WithLogger(logger))

	require.Error(t, el.WaitVisible(context.Background()))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "//button[@class='x']", entry.Data["locator"])
}

func testFillGetValueRoundTrip(t *rapid.T) {
	s := browsertest.NewSession()
	el := NewInputByName(s, "login-input", "user", WithClock(browsertest.NewClock(epoch)))
	s.Add(el.Locator(), &browsertest.Node{
		Visible:      true,
		VisibleAfter: rapid.IntRange(0, 5).Draw(t, "delay"),
		Value:        rapid.String().Draw(t, "previous"),
	})
	value := rapid.String().Draw(t, "value")
	ctx := context.Background()

	if err := el.Fill(ctx, value); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	got, err := el.GetValue(ctx)
	if err != nil {
		t.Fatalf("get value failed: %v", err)
	}
	if got != value {
		t.Fatalf("expected %q, got %q", value, got)
	}
}

func TestFillGetValueRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testFillGetValueRoundTrip)
}

func testWaitBoundary(t *rapid.T) {
	timeout := time.Duration(rapid.IntRange(1, 60).Draw(t, "timeout_s")) * time.Second
	poll := time.Duration(rapid.IntRange(1, 10_000).Draw(t, "poll_ms")) * time.Millisecond
	policy := entities.WaitPolicy{Timeout: timeout, Poll: poll, Condition: entities.ConditionVisible}

	s := browsertest.NewSession()
	clock := browsertest.NewClock(epoch)
	el := NewTextBlock(s, "never", WithPolicy(policy), WithClock(clock))

	ok, err := el.IsDisplayed(context.Background())
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
	elapsed := clock.Now().Sub(epoch)
	if elapsed < timeout || elapsed > timeout+poll {
		t.Fatalf("elapsed %s outside [%s, %s]", elapsed, timeout, timeout+poll)
	}
	if s.Locates() < 1 {
		t.Fatalf("expected at least one check")
	}
}

func TestWaitBoundary(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testWaitBoundary)
}

func TestCapabilityString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "click|read|fill", (CanClick | CanRead | CanFill).String())
	assert.Equal(t, "read", CanRead.String())
	assert.Equal(t, "none", Capability(0).String())
}
