package interfaces

import "login_automation/domain/entities"

// Storage persists the navigation journal and run reports
type Storage interface {
	// SaveEvents overwrites the stored page journal
	SaveEvents(events []entities.PageEvent) error

	// LoadEvents loads the page journal
	LoadEvents() ([]entities.PageEvent, error)

	// SaveReport stores the latest run report
	SaveReport(report entities.RunReport) error

	// LoadReport loads the latest run report
	LoadReport() (entities.RunReport, error)
}
