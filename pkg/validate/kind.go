package validate

import (
	"fmt"
	"strings"
)

// Kind identifies the value kind a field collects.
type Kind string

// Supported kinds.
const (
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindDate     Kind = "date"
	KindNumber   Kind = "number"
	KindText     Kind = "text"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindEmail, KindPassword, KindDate, KindNumber, KindText:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// ParseKind normalises raw into a Kind. Blank input resolves to KindText.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return KindText, nil
	}
	kind := Kind(trimmed)
	if !kind.Valid() {
		return "", fmt.Errorf("validate: unknown kind %q", raw)
	}
	return kind, nil
}

// Security selects the password policy tier.
type Security string

const (
	// SecurityLow rejects symbols. It is the default tier.
	SecurityLow Security = "low"
	// SecurityMax requires at least one symbol.
	SecurityMax Security = "max"
)

// ParseSecurity normalises raw into a Security tier. Blank input resolves to
// SecurityLow.
func ParseSecurity(raw string) (Security, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(SecurityLow):
		return SecurityLow, nil
	case string(SecurityMax):
		return SecurityMax, nil
	default:
		return "", fmt.Errorf("validate: unknown security tier %q", raw)
	}
}

// Title returns the kind with its first letter capitalised, e.g. "Email".
func (k Kind) Title() string {
	return capitalize(string(k))
}
