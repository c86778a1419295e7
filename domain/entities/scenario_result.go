package entities

import "time"

// ScenarioStatus represents the outcome of a scenario
type ScenarioStatus string

const (
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

// ScenarioResult is the outcome of one scenario run
type ScenarioResult struct {
	Name      string         `json:"name"`
	Status    ScenarioStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
}

// Passed - reports whether the scenario succeeded
func (r ScenarioResult) Passed() bool {
	return r.Status == ScenarioPassed
}

// RunReport aggregates the results of one runner invocation
type RunReport struct {
	Driver    string           `json:"driver"`
	BaseURL   string           `json:"base_url"`
	StartedAt time.Time        `json:"started_at"`
	Results   []ScenarioResult `json:"results"`
}

// Failed - number of scenarios that did not pass
func (r RunReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == ScenarioFailed {
			n++
		}
	}
	return n
}
