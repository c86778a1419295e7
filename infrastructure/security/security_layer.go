package security

import (
	"sort"
	"strings"
	"sync"

	"login_automation/domain/interfaces"
)

const mask = "[REDACTED]"

// secrets shorter than this are not scrubbed from free text, they would mangle ordinary
// words. Field-based masking in Value still applies.
const minSecretLen = 4

var sensitiveKeywords = []string{
	"password", "passwd", "пароль",
	"secret", "token", "apikey",
	"cookie", "authorization",
}

// Redactor masks credentials before they reach the logs
type Redactor struct {
	mu      sync.RWMutex
	secrets []string
}

// NewRedactor - creates a redactor that also masks the given literal secrets
func NewRedactor(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		r.AddSecret(s)
	}
	return r
}

// AddSecret - masks s (and its trimmed form) wherever it appears in scrubbed text
func (r *Redactor) AddSecret(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range []string{s, strings.TrimSpace(s)} {
		if len([]rune(v)) < minSecretLen || contains(r.secrets, v) {
			continue
		}
		r.secrets = append(r.secrets, v)
	}
	// longest first so a secret containing another is masked whole
	sort.Slice(r.secrets, func(i, j int) bool { return len(r.secrets[i]) > len(r.secrets[j]) })
}

func (r *Redactor) IsSensitive(field string) bool {
	normalized := strings.ToLower(strings.TrimSpace(field))
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, ".", "")

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}

func (r *Redactor) Value(field, value string) string {
	if r.IsSensitive(field) {
		return mask
	}
	return r.Scrub(value)
}

func (r *Redactor) Scrub(s string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, mask)
	}
	return s
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Ensure Redactor implements Redactor interface
var _ interfaces.Redactor = (*Redactor)(nil)
