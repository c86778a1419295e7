package interfaces

// Redactor masks sensitive values before they are logged
type Redactor interface {
	// IsSensitive checks if a field name looks like it holds a secret
	IsSensitive(field string) bool

	// Value returns value, masked when field is sensitive
	Value(field, value string) string

	// Scrub masks every known secret occurring in s
	Scrub(s string) string
}
