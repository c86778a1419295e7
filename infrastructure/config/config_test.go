package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProperties(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.properties")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Parse(map[string]string{KeyBaseURL: "https://mira.test/login"})
	require.NoError(t, err)

	assert.Equal(t, DriverPlaywright, cfg.Driver)
	assert.Equal(t, "chromium", cfg.Browser)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 4*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.PageLoadTimeout)
	assert.Equal(t, "normal", cfg.PageLoadStrategy)
	assert.Equal(t, 10*time.Second, cfg.Wait.Timeout)
	assert.Equal(t, time.Second, cfg.Wait.Poll)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 9515, cfg.SeleniumPort)
}

func TestLoadPropertiesFile(t *testing.T) {
	path := writeProperties(t, `# Mira stand
web.url=https://mira.test/login
web.browser=firefox
web.resolution=1366x768
config.headless=false
config.timeout=6000
config.pageLoadTimeout=15000
config.pageLoadStrategy=eager
element.timeout=5s
element.poll=250ms
user.login=admin
user.password=" secret "
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://mira.test/login", cfg.BaseURL)
	assert.Equal(t, "firefox", cfg.Browser)
	assert.Equal(t, 1366, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 6*time.Second, cfg.Timeout)
	assert.Equal(t, 15*time.Second, cfg.PageLoadTimeout)
	assert.Equal(t, "eager", cfg.PageLoadStrategy)
	assert.Equal(t, 5*time.Second, cfg.Wait.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Wait.Poll)
	assert.Equal(t, "admin", cfg.UserLogin)
	assert.Equal(t, " secret ", cfg.UserPassword)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeProperties(t, "web.url=https://mira.test/login\nweb.driver=playwright\n")
	t.Setenv("WEB_DRIVER", "selenium")
	t.Setenv("WEB_BROWSER", "chrome")
	t.Setenv("USER_LOGIN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSelenium, cfg.Driver)
	assert.Equal(t, "chrome", cfg.Browser)
	assert.Equal(t, "from-env", cfg.UserLogin)
}

func TestMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("WEB_URL", "https://mira.test/login")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.properties"))
	require.NoError(t, err)
	assert.Equal(t, "https://mira.test/login", cfg.BaseURL)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()
	_, err := Parse(map[string]string{
		KeyDriver:           "cypress",
		KeyPageLoadStrategy: "lazy",
		KeyElementPoll:      "0s",
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "web.url is required")
	assert.Contains(t, msg, "web.driver")
	assert.Contains(t, msg, "config.pageLoadStrategy")
	assert.Contains(t, msg, "poll interval must be positive")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]map[string]string{
		"resolution": {KeyResolution: "wide"},
		"headless":   {KeyHeadless: "maybe"},
		"timeout":    {KeyTimeout: "4s"},
		"log level":  {KeyLogLevel: "loud"},
		"element":    {KeyElementTimeout: "ten"},
		"relative":   {KeyBaseURL: "/login"},
		"browser":    {KeyDriver: DriverSelenium, KeyBrowser: "webkit"},
	}
	for name, values := range tests {
		values := values
		t.Run(name, func(t *testing.T) {
			if _, ok := values[KeyBaseURL]; !ok {
				values[KeyBaseURL] = "https://mira.test"
			}
			_, err := Parse(values)
			require.Error(t, err)
		})
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "WEB_URL", EnvName(KeyBaseURL))
	assert.Equal(t, "CONFIG_PAGELOADTIMEOUT", EnvName(KeyPageLoadTimeout))
}
