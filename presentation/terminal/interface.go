// Package terminal is the command line surface: run the login suite, list it, show the
// last saved report.
package terminal

import (
	"fmt"
	"io"
	"time"

	"login_automation/application/page"
	"login_automation/application/scenario"
	"login_automation/domain/entities"
	"login_automation/domain/interfaces"
	"login_automation/infrastructure/browser"
	"login_automation/infrastructure/config"
	"login_automation/infrastructure/security"
	"login_automation/infrastructure/storage"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	passColor  = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
	skipColor  = color.New(color.FgYellow)
	grayColor  = color.New(color.Faint)
	valueColor = color.New(color.FgCyan)
)

// LauncherFunc builds the session launcher for a loaded config
type LauncherFunc func(cfg *config.Config, logger *logrus.Logger) (interfaces.Launcher, error)

type TerminalInterface struct {
	stdOut      io.Writer
	stdErr      io.Writer
	newLauncher LauncherFunc
}

// NewTerminalInterface - creates the command line surface writing to stdOut/stdErr
func NewTerminalInterface(stdOut, stdErr io.Writer, newLauncher LauncherFunc) *TerminalInterface {
	if newLauncher == nil {
		newLauncher = browser.NewLauncher
	}
	return &TerminalInterface{stdOut: stdOut, stdErr: stdErr, newLauncher: newLauncher}
}

// RootCommand - builds the command tree
func (t *TerminalInterface) RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "login_automation",
		Short:         "Browser checks of the Mira login flow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(t.stdOut)
	rootCmd.SetErr(t.stdErr)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "properties file with run settings")

	rootCmd.AddCommand(
		t.getCmdRun(),
		t.getCmdList(),
		t.getCmdReport(),
	)
	return rootCmd
}

func (t *TerminalInterface) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (t *TerminalInterface) getCmdRun() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run login scenarios",
		Long: `Run login scenarios, each in a fresh browser opened on web.url.

  Without arguments the whole suite runs. Exits non-zero when any scenario fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := t.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("driver") {
				cfg.Driver, _ = cmd.Flags().GetString("driver")
			}
			if cmd.Flags().Changed("headless") {
				cfg.Headless, _ = cmd.Flags().GetBool("headless")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := cfg.NewLogger()
			logger.SetOutput(t.stdErr)

			launcher, err := t.newLauncher(cfg, logger)
			if err != nil {
				return err
			}
			state, err := storage.NewRunState(cfg.ReportDir, logger)
			if err != nil {
				return err
			}
			redactor := security.NewRedactor(cfg.UserPassword)

			runner := scenario.NewRunner(launcher,
				scenario.Settings{
					BaseURL:  cfg.BaseURL,
					Login:    cfg.UserLogin,
					Password: cfg.UserPassword,
				},
				scenario.WithRunnerLogger(logger),
				scenario.WithRedactor(redactor),
				scenario.WithFactoryOptions(
					page.WithWaitPolicy(cfg.Wait),
					page.WithRedactor(redactor),
					page.WithObserver(page.LogObserver(logger)),
					page.WithObserver(state.Record),
				),
			)

			report, err := runner.Run(cmd.Context(), args...)
			if err != nil {
				return err
			}

			t.printReport(report)
			if err := state.SaveReport(report); err != nil {
				logger.Warnf("failed to save report: %v", err)
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(report.Results))
			}
			return nil
		},
	}

	runCmd.Flags().String("driver", config.DriverPlaywright, "session driver: playwright or selenium")
	runCmd.Flags().Bool("headless", true, "run the browser without a window")
	return runCmd
}

func (t *TerminalInterface) getCmdList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suite := scenario.LoginSuite()
			width := 0
			for _, sc := range suite {
				width = max(width, len(sc.Name))
			}
			for _, sc := range suite {
				fmt.Fprintf(t.stdOut, "%s  %s\n", valueColor.Sprint(fmt.Sprintf("%-*s", width, sc.Name)), sc.Description)
			}
			return nil
		},
	}
}

func (t *TerminalInterface) getCmdReport() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the last saved run report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := t.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()
			logger.SetOutput(t.stdErr)

			state, err := storage.NewRunState(cfg.ReportDir, logger)
			if err != nil {
				return err
			}
			report, err := state.LoadReport()
			if err != nil {
				return err
			}
			if len(report.Results) == 0 {
				fmt.Fprintln(t.stdOut, "no saved report")
				return nil
			}
			t.printReport(report)
			return nil
		},
	}
}

func (t *TerminalInterface) printReport(report entities.RunReport) {
	fmt.Fprintf(t.stdOut, "%s %s %s\n\n",
		grayColor.Sprint("driver:"), valueColor.Sprint(report.Driver), grayColor.Sprint(report.BaseURL))

	var passed, failed, skipped int
	for _, res := range report.Results {
		switch res.Status {
		case entities.ScenarioPassed:
			passed++
			fmt.Fprintf(t.stdOut, "%s %s %s\n", passColor.Sprint("PASS"), res.Name, grayColor.Sprint(res.Duration.Round(time.Millisecond)))
		case entities.ScenarioFailed:
			failed++
			fmt.Fprintf(t.stdOut, "%s %s %s\n", failColor.Sprint("FAIL"), res.Name, grayColor.Sprint(res.Duration.Round(time.Millisecond)))
			fmt.Fprintf(t.stdOut, "     %s\n", res.Error)
		default:
			skipped++
			fmt.Fprintf(t.stdOut, "%s %s\n", skipColor.Sprint("SKIP"), res.Name)
		}
	}

	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if failed > 0 {
		summary = failColor.Sprint(summary)
	} else {
		summary = passColor.Sprint(summary)
	}
	fmt.Fprintf(t.stdOut, "\n%s\n", summary)
}

