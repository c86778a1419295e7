package scenario

import (
	"context"
	"fmt"
	"time"

	"login_automation/application/element"
	"login_automation/application/page"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Settings are the per-run inputs every scenario shares
type Settings struct {
	BaseURL  string
	Login    string
	Password string
}

// Runner executes scenarios one at a time, each in its own session
type Runner struct {
	launcher    interfaces.Launcher
	settings    Settings
	scenarios   []Scenario
	factoryOpts []page.FactoryOption
	redactor    interfaces.Redactor
	clock       interfaces.Clock
	logger      logrus.FieldLogger
}

type RunnerOption func(*Runner)

// WithScenarios - replaces the login suite
func WithScenarios(scenarios ...Scenario) RunnerOption {
	return func(r *Runner) { r.scenarios = scenarios }
}

// WithFactoryOptions - options for the page factory built for every session
func WithFactoryOptions(opts ...page.FactoryOption) RunnerOption {
	return func(r *Runner) { r.factoryOpts = append(r.factoryOpts, opts...) }
}

// WithRedactor - scrubs failure messages before they land in results
func WithRedactor(redactor interfaces.Redactor) RunnerOption {
	return func(r *Runner) { r.redactor = redactor }
}

func WithRunnerClock(c interfaces.Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

func WithRunnerLogger(l logrus.FieldLogger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner - creates new runner over the login suite
func NewRunner(launcher interfaces.Launcher, settings Settings, opts ...RunnerOption) *Runner {
	r := &Runner{
		launcher:  launcher,
		settings:  settings,
		scenarios: LoginSuite(),
		clock:     element.SystemClock{},
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scenarios - everything the runner knows, in execution order
func (r *Runner) Scenarios() []Scenario {
	return append([]Scenario(nil), r.scenarios...)
}

func (r *Runner) selectScenarios(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return r.Scenarios(), nil
	}
	byName := make(map[string]Scenario, len(r.scenarios))
	for _, sc := range r.scenarios {
		byName[sc.Name] = sc
	}
	selected := make([]Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

// Run - executes the named scenarios (all when none are named) and reports each outcome.
// Unknown names fail before any browser is launched. Once ctx is done the remaining
// scenarios are reported as skipped.
func (r *Runner) Run(ctx context.Context, names ...string) (entities.RunReport, error) {
	selected, err := r.selectScenarios(names)
	if err != nil {
		return entities.RunReport{}, err
	}

	report := entities.RunReport{
		Driver:    r.launcher.Name(),
		BaseURL:   r.settings.BaseURL,
		StartedAt: r.clock.Now(),
		Results:   make([]entities.ScenarioResult, 0, len(selected)),
	}

	for _, sc := range selected {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, entities.ScenarioResult{
				Name:      sc.Name,
				Status:    entities.ScenarioSkipped,
				Error:     err.Error(),
				StartedAt: r.clock.Now(),
			})
			continue
		}
		report.Results = append(report.Results, r.runOne(ctx, sc))
	}

	return report, nil
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) entities.ScenarioResult {
	logger := r.logger.WithField("scenario", sc.Name)
	started := r.clock.Now()
	logger.Info("test starts")

	err := r.execute(ctx, sc, logger)

	result := entities.ScenarioResult{
		Name:      sc.Name,
		Status:    entities.ScenarioPassed,
		StartedAt: started,
		Duration:  r.clock.Now().Sub(started).Round(time.Millisecond),
	}
	if err != nil {
		result.Status = entities.ScenarioFailed
		result.Error = r.scrub(err.Error())
		logger.Errorf("test failed: %s", result.Error)
	} else {
		logger.Info("test passed")
	}
	return result
}

// execute - setup, scenario body and teardown; teardown runs even when setup fails halfway
func (r *Runner) execute(ctx context.Context, sc Scenario, logger logrus.FieldLogger) error {
	session, err := r.launcher.Launch(ctx)
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	defer func() {
		logger.Info("tear down")
		if err := session.Close(); err != nil {
			logger.Warnf("failed to close session: %v", err)
		}
	}()

	if err := session.Navigate(ctx, r.settings.BaseURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", r.settings.BaseURL, err)
	}
	logger.Info("test settings are set")

	opts := append([]page.FactoryOption{page.WithLogger(logger)}, r.factoryOpts...)
	env := &Env{
		Factory:  page.NewFactory(session, opts...),
		Session:  session,
		Login:    r.settings.Login,
		Password: r.settings.Password,
		Logger:   logger,
	}
	return sc.Run(ctx, env)
}

func (r *Runner) scrub(s string) string {
	if r.redactor == nil {
		return s
	}
	return r.redactor.Scrub(s)
}
