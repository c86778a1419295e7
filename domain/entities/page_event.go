package entities

import "time"

// PageEventKind describes why a page object was produced
type PageEventKind string

const (
	PageEventOpened    PageEventKind = "opened"
	PageEventRefreshed PageEventKind = "refreshed"
)

// PageEvent is one entry of the navigation audit trail
type PageEvent struct {
	Kind PageEventKind `json:"kind"`
	Page string        `json:"page"`
	URL  string        `json:"url,omitempty"`
	At   time.Time     `json:"at"`
}
