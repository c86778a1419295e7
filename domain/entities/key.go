package entities

// Key is a keyboard key understood by every session driver
type Key string

const (
	KeyTab   Key = "Tab"
	KeyEnter Key = "Enter"
)
