package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"login_automation/domain/entities"
	"login_automation/infrastructure/config"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func testConfig(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()
	values := map[string]string{config.KeyBaseURL: "http://mira.local"}
	for k, v := range overrides {
		values[k] = v
	}
	cfg, err := config.Parse(values)
	require.NoError(t, err)
	return cfg
}

func TestNewLauncher(t *testing.T) {
	logger, _ := test.NewNullLogger()

	l, err := NewLauncher(testConfig(t, nil), logger)
	require.NoError(t, err)
	assert.IsType(t, &PlaywrightLauncher{}, l)
	assert.Equal(t, "playwright/chromium", l.Name())

	l, err = NewLauncher(testConfig(t, map[string]string{config.KeyDriver: "selenium"}), logger)
	require.NoError(t, err)
	assert.IsType(t, &SeleniumLauncher{}, l)
	assert.Equal(t, "selenium/chrome", l.Name())

	cfg := testConfig(t, nil)
	cfg.Driver = "lynx"
	_, err = NewLauncher(cfg, logger)
	require.Error(t, err)
}

func TestLaunchHonoursCancelledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlaywrightLauncher(testConfig(t, nil), logger).Launch(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, err = NewSeleniumLauncher(testConfig(t, nil), logger).Launch(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitUntilFor(t *testing.T) {
	assert.Equal(t, playwright.WaitUntilStateLoad, waitUntilFor("normal"))
	assert.Equal(t, playwright.WaitUntilStateDomcontentloaded, waitUntilFor("eager"))
	assert.Equal(t, playwright.WaitUntilStateCommit, waitUntilFor("none"))
}

func TestPlaywrightNavigationUsesPageLoadTimeout(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		config.KeyTimeout:          "4000",
		config.KeyPageLoadTimeout:  "30000",
		config.KeyPageLoadStrategy: "eager",
	})
	s := &playwrightSession{
		waitUntil:       waitUntilFor(cfg.PageLoadStrategy),
		alertTimeout:    cfg.Timeout,
		pageLoadTimeout: cfg.PageLoadTimeout,
	}

	gotoOpts := s.gotoOptions()
	require.NotNil(t, gotoOpts.Timeout)
	assert.Equal(t, 30000.0, *gotoOpts.Timeout)
	assert.Equal(t, playwright.WaitUntilStateDomcontentloaded, gotoOpts.WaitUntil)

	reloadOpts := s.reloadOptions()
	require.NotNil(t, reloadOpts.Timeout)
	assert.Equal(t, 30000.0, *reloadOpts.Timeout)
	assert.Equal(t, playwright.WaitUntilStateDomcontentloaded, reloadOpts.WaitUntil)
}

func TestSeleniumKey(t *testing.T) {
	code, err := seleniumKey(entities.KeyTab)
	require.NoError(t, err)
	assert.Equal(t, selenium.TabKey, code)

	code, err = seleniumKey(entities.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, selenium.EnterKey, code)

	_, err = seleniumKey(entities.Key("F13"))
	require.Error(t, err)
}

func TestWebdriverErrorClassification(t *testing.T) {
	missing := &selenium.Error{Err: "no such element", Message: "Unable to locate element"}
	stale := &selenium.Error{Err: "stale element reference"}
	noAlert := &selenium.Error{Err: "no such alert"}
	other := &selenium.Error{Err: "invalid selector"}

	assert.True(t, isMissingElement(missing))
	assert.True(t, isMissingElement(fmt.Errorf("find: %w", missing)))
	assert.True(t, isMissingElement(stale))
	assert.False(t, isMissingElement(other))
	assert.False(t, isMissingElement(nil))
	assert.True(t, isMissingElement(errors.New("unknown error: no such element")))

	assert.True(t, isNoAlert(noAlert))
	assert.False(t, isNoAlert(other))
	assert.False(t, isNoAlert(nil))
}

func TestIsClosedErr(t *testing.T) {
	assert.True(t, isClosedErr(errors.New("target closed")))
	assert.True(t, isClosedErr(errors.New("browser has been closed")))
	assert.False(t, isClosedErr(errors.New("timeout")))
	assert.False(t, isClosedErr(nil))
}

func TestChromeArgs(t *testing.T) {
	cfg := testConfig(t, map[string]string{config.KeyResolution: "1280x720"})
	assert.Contains(t, chromeArgs(cfg), "--window-size=1280,720")
	assert.Contains(t, chromeArgs(cfg), "--headless=new")

	cfg.Headless = false
	assert.NotContains(t, chromeArgs(cfg), "--headless=new")
}

func TestFindChromeDriverPrefersConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromedriver")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

	found, err := findChromeDriver(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	assert.Equal(t, path, findChromeBinary(path))
}

func TestPollUntil(t *testing.T) {
	ctx := context.Background()

	calls := 0
	done, err := pollUntil(ctx, time.Second, time.Millisecond, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 3, calls)

	done, err = pollUntil(ctx, 20*time.Millisecond, 5*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, done)

	boom := errors.New("boom")
	_, err = pollUntil(ctx, time.Second, time.Millisecond, func() (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = pollUntil(cancelled, time.Second, 10*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
