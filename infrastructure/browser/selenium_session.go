package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumLauncher starts chromedriver and one chrome session per Launch
type SeleniumLauncher struct {
	cfg    *config.Config
	logger *logrus.Logger
}

var _ interfaces.Launcher = (*SeleniumLauncher)(nil)

// NewSeleniumLauncher - creates new selenium launcher
func NewSeleniumLauncher(cfg *config.Config, logger *logrus.Logger) *SeleniumLauncher {
	return &SeleniumLauncher{cfg: cfg, logger: logger}
}

func (l *SeleniumLauncher) Name() string {
	return config.DriverSelenium + "/chrome"
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	for _, path := range []string{configured, os.Getenv("BROWSER_DRIVER_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set selenium.driverPath")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	for _, path := range []string{configured, os.Getenv("CHROME_BINARY_PATH")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// chromeArgs - command line switches for the configured window and headless mode
func chromeArgs(cfg *config.Config) []string {
	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--disable-notifications",
		fmt.Sprintf("--window-size=%d,%d", cfg.Width, cfg.Height),
	}
	if cfg.Headless {
		args = append(args, "--headless=new")
	}
	return args
}

// Launch - starts chromedriver and opens a webdriver session against it
func (l *SeleniumLauncher) Launch(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	driverPath, err := findChromeDriver(l.cfg.SeleniumDriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	l.logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, l.cfg.SeleniumPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName":      "chrome",
		"pageLoadStrategy": l.cfg.PageLoadStrategy,
	}
	chromeCaps := chrome.Capabilities{Args: chromeArgs(l.cfg)}
	if chromeBinary := findChromeBinary(l.cfg.ChromeBinary); chromeBinary != "" {
		l.logger.Infof("Using Chrome binary at: %s", chromeBinary)
		chromeCaps.Path = chromeBinary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", l.cfg.SeleniumPort))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set chrome.binary. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	// element waits are polled by the caller, an implicit wait would stretch every probe
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		l.logger.Warnf("Failed to reset implicit wait: %v", err)
	}
	if err := wd.SetPageLoadTimeout(l.cfg.PageLoadTimeout); err != nil {
		l.logger.Warnf("Failed to set page load timeout: %v", err)
	}

	l.logger.Infof("Launched %s (headless=%v, %dx%d)", l.Name(), l.cfg.Headless, l.cfg.Width, l.cfg.Height)
	return &seleniumSession{
		wd:           wd,
		service:      service,
		alertTimeout: l.cfg.Timeout,
		logger:       l.logger.WithField("driver", l.Name()),
	}, nil
}

type seleniumSession struct {
	wd           selenium.WebDriver
	service      *selenium.Service
	alertTimeout time.Duration
	logger       logrus.FieldLogger
}

// webdriverError - W3C error code carried by err, or "" when there is none
func webdriverError(err error) string {
	var serr *selenium.Error
	if errors.As(err, &serr) {
		return serr.Err
	}
	return ""
}

// isMissingElement - the node is not (or no longer) in the DOM
func isMissingElement(err error) bool {
	switch webdriverError(err) {
	case "no such element", "stale element reference":
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no such element")
}

func isNoAlert(err error) bool {
	return webdriverError(err) == "no such alert" ||
		(err != nil && strings.Contains(err.Error(), "no such alert"))
}

// seleniumKey - maps a named key onto the webdriver key code point
func seleniumKey(key entities.Key) (string, error) {
	switch key {
	case entities.KeyTab:
		return selenium.TabKey, nil
	case entities.KeyEnter:
		return selenium.EnterKey, nil
	default:
		return "", fmt.Errorf("unsupported key %q", key)
	}
}

func (s *seleniumSession) Locate(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	el, err := s.wd.FindElement(selenium.ByXPATH, loc.String())
	if err != nil {
		if isMissingElement(err) {
			return nil, entities.ErrElementNotFound
		}
		return nil, fmt.Errorf("failed to locate %s: %w", loc, err)
	}
	return &seleniumElement{el: el}, nil
}

func (s *seleniumSession) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return s.wd.Get(url)
}

func (s *seleniumSession) Reload(ctx context.Context) error {
	return s.wd.Refresh()
}

func (s *seleniumSession) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

func (s *seleniumSession) TypeText(ctx context.Context, text string) error {
	active, err := s.wd.ActiveElement()
	if err != nil {
		return fmt.Errorf("failed to get focused element: %w", err)
	}
	return active.SendKeys(text)
}

func (s *seleniumSession) PressKey(ctx context.Context, key entities.Key) error {
	code, err := seleniumKey(key)
	if err != nil {
		return err
	}
	return s.TypeText(ctx, code)
}

// AlertText - waits up to the driver timeout for an alert to open
func (s *seleniumSession) AlertText(ctx context.Context) (string, error) {
	var text string
	found, err := pollUntil(ctx, s.alertTimeout, alertPollInterval, func() (bool, error) {
		t, err := s.wd.AlertText()
		if isNoAlert(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		text = t
		return true, nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", entities.ErrNoAlert
	}
	return text, nil
}

func (s *seleniumSession) AcceptAlert(ctx context.Context) error {
	if _, err := s.AlertText(ctx); err != nil {
		return err
	}
	return s.wd.AcceptAlert()
}

// Close - quits the webdriver session and stops chromedriver
func (s *seleniumSession) Close() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return errors.Join(errs...)
}

type seleniumElement struct {
	el selenium.WebElement
}

// IsVisible - a node that went stale between locate and probe counts as missing
func (e *seleniumElement) IsVisible(ctx context.Context) (bool, error) {
	visible, err := e.el.IsDisplayed()
	if isMissingElement(err) {
		return false, entities.ErrElementNotFound
	}
	return visible, err
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) SetValue(ctx context.Context, value string) error {
	if err := e.el.Clear(); err != nil {
		return fmt.Errorf("failed to clear input: %w", err)
	}
	return e.el.SendKeys(value)
}

func (e *seleniumElement) Value(ctx context.Context) (string, error) {
	return e.el.GetAttribute("value")
}
