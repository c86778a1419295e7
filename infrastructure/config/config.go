// Package config loads run settings from a properties file (key=value lines) with
// environment variable overrides. An environment variable overrides a key when its name is
// the key upper-cased with dots replaced by underscores: web.url -> WEB_URL.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"login_automation/domain/entities"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const DefaultPath = "config.properties"

// Property keys
const (
	KeyBaseURL          = "web.url"
	KeyDriver           = "web.driver"
	KeyBrowser          = "web.browser"
	KeyResolution       = "web.resolution"
	KeyHeadless         = "config.headless"
	KeyTimeout          = "config.timeout"
	KeyPageLoadTimeout  = "config.pageLoadTimeout"
	KeyPageLoadStrategy = "config.pageLoadStrategy"
	KeyElementTimeout   = "element.timeout"
	KeyElementPoll      = "element.poll"
	KeyUserLogin        = "user.login"
	KeyUserPassword     = "user.password"
	KeyLogLevel         = "log.level"
	KeyReportDir        = "report.dir"
	KeySeleniumDriver   = "selenium.driverPath"
	KeySeleniumPort     = "selenium.port"
	KeyChromeBinary     = "chrome.binary"
)

var knownKeys = []string{
	KeyBaseURL, KeyDriver, KeyBrowser, KeyResolution, KeyHeadless, KeyTimeout,
	KeyPageLoadTimeout, KeyPageLoadStrategy, KeyElementTimeout, KeyElementPoll,
	KeyUserLogin, KeyUserPassword, KeyLogLevel, KeyReportDir, KeySeleniumDriver,
	KeySeleniumPort, KeyChromeBinary,
}

const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
)

// Config holds everything needed to provision sessions and run scenarios
type Config struct {
	BaseURL          string
	Driver           string
	Browser          string
	Width            int
	Height           int
	Headless         bool
	Timeout          time.Duration // driver default timeout
	PageLoadTimeout  time.Duration
	PageLoadStrategy string // normal | eager | none
	Wait             entities.WaitPolicy

	UserLogin    string
	UserPassword string

	LogLevel  logrus.Level
	ReportDir string

	SeleniumDriverPath string
	SeleniumPort       int
	ChromeBinary       string
}

// Load - reads path (missing file is tolerated), applies env overrides and validates
func Load(path string) (*Config, error) {
	values := map[string]string{}
	if path != "" {
		read, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		default:
			values = read
		}
	}

	for _, key := range knownKeys {
		if v, ok := os.LookupEnv(EnvName(key)); ok {
			values[key] = v
		}
	}
	return Parse(values)
}

// EnvName - environment variable overriding key
func EnvName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Parse - builds a validated Config from raw key/value pairs
func Parse(values map[string]string) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := values[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	var errs []error
	cfg := &Config{
		BaseURL:            get(KeyBaseURL, ""),
		Driver:             strings.ToLower(get(KeyDriver, DriverPlaywright)),
		Browser:            strings.ToLower(get(KeyBrowser, "chromium")),
		PageLoadStrategy:   strings.ToLower(get(KeyPageLoadStrategy, "normal")),
		UserLogin:          values[KeyUserLogin],
		UserPassword:       values[KeyUserPassword],
		ReportDir:          get(KeyReportDir, ".login_automation"),
		SeleniumDriverPath: get(KeySeleniumDriver, ""),
		ChromeBinary:       get(KeyChromeBinary, ""),
	}

	var err error
	if cfg.Width, cfg.Height, err = parseResolution(get(KeyResolution, "1920x1080")); err != nil {
		errs = append(errs, err)
	}
	if cfg.Headless, err = strconv.ParseBool(get(KeyHeadless, "true")); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyHeadless, err))
	}
	if cfg.Timeout, err = parseMillis(KeyTimeout, get(KeyTimeout, "4000")); err != nil {
		errs = append(errs, err)
	}
	if cfg.PageLoadTimeout, err = parseMillis(KeyPageLoadTimeout, get(KeyPageLoadTimeout, "30000")); err != nil {
		errs = append(errs, err)
	}
	if cfg.SeleniumPort, err = strconv.Atoi(get(KeySeleniumPort, "9515")); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeySeleniumPort, err))
	}
	if cfg.LogLevel, err = logrus.ParseLevel(get(KeyLogLevel, "info")); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	cfg.Wait = entities.DefaultWaitPolicy()
	if cfg.Wait.Timeout, err = time.ParseDuration(get(KeyElementTimeout, entities.DefaultWaitTimeout.String())); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyElementTimeout, err))
	}
	if cfg.Wait.Poll, err = time.ParseDuration(get(KeyElementPoll, entities.DefaultPollEvery.String())); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyElementPoll, err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate - reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyBaseURL))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", KeyBaseURL, c.BaseURL))
	}

	switch c.Driver {
	case DriverPlaywright:
		switch c.Browser {
		case "chromium", "chrome", "firefox", "webkit":
		default:
			errs = append(errs, fmt.Errorf("%s %q is not supported by playwright", KeyBrowser, c.Browser))
		}
	case DriverSelenium:
		switch c.Browser {
		case "chromium", "chrome":
		default:
			errs = append(errs, fmt.Errorf("%s %q is not supported by selenium", KeyBrowser, c.Browser))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", KeyDriver, DriverPlaywright, DriverSelenium, c.Driver))
	}

	switch c.PageLoadStrategy {
	case "normal", "eager", "none":
	default:
		errs = append(errs, fmt.Errorf("%s must be normal, eager or none, got %q", KeyPageLoadStrategy, c.PageLoadStrategy))
	}

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyResolution))
	}
	if c.Timeout <= 0 || c.PageLoadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s and %s must be positive", KeyTimeout, KeyPageLoadTimeout))
	}
	if c.SeleniumPort <= 0 || c.SeleniumPort > 65535 {
		errs = append(errs, fmt.Errorf("%s out of range: %d", KeySeleniumPort, c.SeleniumPort))
	}
	if err := c.Wait.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// NewLogger - logrus logger configured the way every command uses it
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func parseResolution(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%s must look like 1920x1080, got %q", KeyResolution, s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("%s width: %w", KeyResolution, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("%s height: %w", KeyResolution, err)
	}
	return width, height, nil
}

func parseMillis(key, s string) (time.Duration, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be milliseconds: %w", key, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
