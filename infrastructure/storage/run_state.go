package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"login_automation/domain/entities"
	"login_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	defaultStateDir = ".login_automation"
	journalFile     = "journal.json"
	reportFile      = "report.json"
)

// RunState stores the page journal and the last run report as JSON files
type RunState struct {
	journalPath string
	reportPath  string
	logger      logrus.FieldLogger

	mu     sync.Mutex
	events []entities.PageEvent
}

var _ interfaces.Storage = (*RunState)(nil)

// NewRunState - creates storage under dir, or ~/.login_automation when dir is empty
func NewRunState(dir string, logger logrus.FieldLogger) (*RunState, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		dir = filepath.Join(homeDir, defaultStateDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &RunState{
		journalPath: filepath.Join(dir, journalFile),
		reportPath:  filepath.Join(dir, reportFile),
		logger:      logger,
	}, nil
}

// Record - appends a page event and persists the journal. Usable as a page observer.
func (s *RunState) Record(ctx context.Context, event entities.PageEvent) {
	s.mu.Lock()
	s.events = append(s.events, event)
	events := append([]entities.PageEvent(nil), s.events...)
	s.mu.Unlock()

	if err := s.SaveEvents(events); err != nil {
		s.logger.Warnf("failed to save page journal: %v", err)
	}
}

// Reset - forgets the in-memory journal of the current run
func (s *RunState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// SaveEvents - saves the page journal to file
func (s *RunState) SaveEvents(events []entities.PageEvent) error {
	return writeJSON(s.journalPath, events)
}

// LoadEvents - loads the page journal from file
func (s *RunState) LoadEvents() ([]entities.PageEvent, error) {
	var events []entities.PageEvent
	found, err := readJSON(s.journalPath, &events)
	if err != nil {
		return nil, err
	}
	if !found {
		return []entities.PageEvent{}, nil
	}
	return events, nil
}

// SaveReport - saves the run report to file
func (s *RunState) SaveReport(report entities.RunReport) error {
	return writeJSON(s.reportPath, report)
}

// LoadReport - loads the last run report from file
func (s *RunState) LoadReport() (entities.RunReport, error) {
	var report entities.RunReport
	if _, err := readJSON(s.reportPath, &report); err != nil {
		return entities.RunReport{}, err
	}
	return report, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}
