package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/config"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightLauncher starts one browser per session through playwright
type PlaywrightLauncher struct {
	cfg    *config.Config
	logger *logrus.Logger
}

var _ interfaces.Launcher = (*PlaywrightLauncher)(nil)

// NewPlaywrightLauncher - creates new playwright launcher
func NewPlaywrightLauncher(cfg *config.Config, logger *logrus.Logger) *PlaywrightLauncher {
	return &PlaywrightLauncher{cfg: cfg, logger: logger}
}

func (l *PlaywrightLauncher) Name() string {
	return config.DriverPlaywright + "/" + l.cfg.Browser
}

// Launch - starts playwright, a browser, a context and one page
func (l *PlaywrightLauncher) Launch(ctx context.Context) (interfaces.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, channel := l.browserType(pw)
	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.cfg.Headless),
		Channel:  channel,
		Args:     l.launchArgs(),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.Width,
			Height: l.cfg.Height,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserContext.NewPage()
	if err != nil {
		browserContext.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s := &playwrightSession{
		pw:           pw,
		browser:      browser,
		context:      browserContext,
		waitUntil:       waitUntilFor(l.cfg.PageLoadStrategy),
		alertTimeout:    l.cfg.Timeout,
		pageLoadTimeout: l.cfg.PageLoadTimeout,
		logger:       l.logger.WithField("driver", l.Name()),
	}
	s.adopt(page)

	browserContext.OnPage(func(newPage playwright.Page) {
		s.adopt(newPage)
	})

	l.logger.Infof("Launched %s (headless=%v, %dx%d)", l.Name(), l.cfg.Headless, l.cfg.Width, l.cfg.Height)
	return s, nil
}

func (l *PlaywrightLauncher) browserType(pw *playwright.Playwright) (playwright.BrowserType, *string) {
	switch l.cfg.Browser {
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	case "chrome":
		return pw.Chromium, playwright.String("chrome")
	default:
		return pw.Chromium, nil
	}
}

func (l *PlaywrightLauncher) launchArgs() []string {
	if l.cfg.Browser == "firefox" || l.cfg.Browser == "webkit" {
		return nil
	}
	return []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--disable-infobars",
		"--disable-notifications",
	}
}

// waitUntilFor - maps a webdriver page load strategy onto playwright load states
func waitUntilFor(strategy string) *playwright.WaitUntilState {
	switch strategy {
	case "eager":
		return playwright.WaitUntilStateDomcontentloaded
	case "none":
		return playwright.WaitUntilStateCommit
	default:
		return playwright.WaitUntilStateLoad
	}
}

type playwrightSession struct {
	pw           *playwright.Playwright
	browser      playwright.Browser
	context      playwright.BrowserContext
	waitUntil       *playwright.WaitUntilState
	alertTimeout    time.Duration // also the default for element actions
	pageLoadTimeout time.Duration
	logger          logrus.FieldLogger

	pagesMutex sync.Mutex
	page       playwright.Page
	pages      []playwright.Page
	alerts     []string // messages of dialogs not yet consumed by AcceptAlert
}

// adopt - makes newPage the active page and tracks its dialogs and closing
func (s *playwrightSession) adopt(newPage playwright.Page) {
	s.pagesMutex.Lock()
	s.pages = append(s.pages, newPage)
	s.page = newPage
	s.pagesMutex.Unlock()

	newPage.SetDefaultTimeout(float64(s.alertTimeout.Milliseconds()))
	newPage.SetDefaultNavigationTimeout(float64(s.pageLoadTimeout.Milliseconds()))

	// an unhandled dialog stalls every pending action, so it is accepted right away and
	// only its message is kept for AlertText
	newPage.OnDialog(func(dialog playwright.Dialog) {
		s.logger.Infof("dialog opened: %s", dialog.Message())
		s.pagesMutex.Lock()
		s.alerts = append(s.alerts, dialog.Message())
		s.pagesMutex.Unlock()
		if err := dialog.Accept(); err != nil {
			s.logger.Warnf("Failed to accept dialog: %v", err)
		}
	})

	newPage.OnClose(func(closedPage playwright.Page) {
		s.pagesMutex.Lock()
		defer s.pagesMutex.Unlock()

		for i, p := range s.pages {
			if p == closedPage {
				s.pages = append(s.pages[:i], s.pages[i+1:]...)
				break
			}
		}

		if s.page == closedPage && len(s.pages) > 0 {
			s.page = s.pages[0]
		}
	})
}

func (s *playwrightSession) currentPage() playwright.Page {
	s.pagesMutex.Lock()
	defer s.pagesMutex.Unlock()
	return s.page
}

func (s *playwrightSession) Locate(ctx context.Context, loc entities.Locator) (interfaces.ElementHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := s.currentPage().Locator(xpathSelector(loc))
	count, err := locator.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", loc, err)
	}
	if count == 0 {
		return nil, entities.ErrElementNotFound
	}
	return &playwrightElement{locator: locator.First()}, nil
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	s.logger.Infof("Navigating to: %s", url)
	_, err := s.currentPage().Goto(url, s.gotoOptions())
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Reload(ctx context.Context) error {
	_, err := s.currentPage().Reload(s.reloadOptions())
	return err
}

func (s *playwrightSession) gotoOptions() playwright.PageGotoOptions {
	return playwright.PageGotoOptions{
		WaitUntil: s.waitUntil,
		Timeout:   playwright.Float(float64(s.pageLoadTimeout.Milliseconds())),
	}
}

func (s *playwrightSession) reloadOptions() playwright.PageReloadOptions {
	return playwright.PageReloadOptions{
		WaitUntil: s.waitUntil,
		Timeout:   playwright.Float(float64(s.pageLoadTimeout.Milliseconds())),
	}
}

func (s *playwrightSession) CurrentURL(ctx context.Context) (string, error) {
	return s.currentPage().URL(), nil
}

func (s *playwrightSession) TypeText(ctx context.Context, text string) error {
	return s.currentPage().Keyboard().Type(text)
}

func (s *playwrightSession) PressKey(ctx context.Context, key entities.Key) error {
	return s.currentPage().Keyboard().Press(string(key))
}

// AlertText - waits up to the driver timeout for a dialog, like webdriver's switchTo().alert()
func (s *playwrightSession) AlertText(ctx context.Context) (string, error) {
	return s.waitAlert(ctx)
}

// AcceptAlert - consumes the oldest dialog message, the dialog itself is already accepted
func (s *playwrightSession) AcceptAlert(ctx context.Context) error {
	if _, err := s.waitAlert(ctx); err != nil {
		return err
	}

	s.pagesMutex.Lock()
	s.alerts = s.alerts[1:]
	s.pagesMutex.Unlock()
	return nil
}

func (s *playwrightSession) waitAlert(ctx context.Context) (string, error) {
	var message string
	found, err := pollUntil(ctx, s.alertTimeout, alertPollInterval, func() (bool, error) {
		s.pagesMutex.Lock()
		defer s.pagesMutex.Unlock()
		if len(s.alerts) == 0 {
			return false, nil
		}
		message = s.alerts[0]
		return true, nil
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", entities.ErrNoAlert
	}
	return message, nil
}

// Close - closes context, browser and the playwright driver
func (s *playwrightSession) Close() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		s.context = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		s.pw = nil
	}

	return errors.Join(errs...)
}

type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	return e.locator.IsVisible()
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.locator.Click()
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	return e.locator.InnerText()
}

func (e *playwrightElement) SetValue(ctx context.Context, value string) error {
	return e.locator.Fill(value)
}

func (e *playwrightElement) Value(ctx context.Context) (string, error) {
	return e.locator.InputValue()
}
