package validate

import (
	"regexp"
	"strings"
	"time"
)

// Messages reported by the built-in rules.
const (
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgPasswordRequired = "Password is required."
	MsgPasswordLength   = "At least 8 characters required."
	MsgPasswordUpper    = "Add at least one uppercase letter."
	MsgPasswordSymbol   = "Include one symbol."
	MsgPasswordNoSymbol = "Symbols are not allowed."
	MsgDateRequired     = "Date is required."
	MsgDateInvalid      = "Please enter a valid date."
	MsgNumberRequired   = "Number is required."
	MsgNumberInvalid    = "Please enter a valid number."
)

// PasswordMinLength is the minimum password length for every tier.
const PasswordMinLength = 8

// PasswordSymbols is the punctuation set the security tiers look for.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)

	decimalPattern = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	hexPattern     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	octalPattern   = regexp.MustCompile(`^0[oO][0-7]+$`)
	binaryPattern  = regexp.MustCompile(`^0[bB][01]+$`)
)

// dateLayouts is tried in order; the first successful parse wins.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Mon, 2 Jan 2006",
	"2006",
	"2006-01",
}

// Email reports whether value looks like local@domain.tld with a TLD of at
// least two letters.
func Email(value string) string {
	if value == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(value) {
		return MsgEmailInvalid
	}
	return ""
}

// Password checks length and an uppercase letter for every tier. SecurityMax
// then requires one symbol from PasswordSymbols while any other tier rejects
// them.
func Password(value string, tier Security) string {
	if value == "" {
		return MsgPasswordRequired
	}
	if textLength(value) < PasswordMinLength {
		return MsgPasswordLength
	}
	if !upperPattern.MatchString(value) {
		return MsgPasswordUpper
	}
	hasSymbol := strings.ContainsAny(value, PasswordSymbols)
	if tier == SecurityMax && !hasSymbol {
		return MsgPasswordSymbol
	}
	if tier != SecurityMax && hasSymbol {
		return MsgPasswordNoSymbol
	}
	return ""
}

// Date accepts anything ParseDate understands.
func Date(value string) string {
	if value == "" {
		return MsgDateRequired
	}
	if _, ok := ParseDate(value); !ok {
		return MsgDateInvalid
	}
	return ""
}

// ParseDate parses value against the supported layouts.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Number accepts numeric literals: signed decimals with optional exponent,
// 0x/0o/0b integers and Infinity. Surrounding whitespace is ignored and a
// whitespace-only value counts as zero.
func Number(value string) string {
	if value == "" {
		return MsgNumberRequired
	}
	if !IsNumeric(value) {
		return MsgNumberInvalid
	}
	return ""
}

// IsNumeric reports whether value is a numeric literal as described on
// Number.
func IsNumeric(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	switch trimmed {
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}
	return decimalPattern.MatchString(trimmed) ||
		hexPattern.MatchString(trimmed) ||
		octalPattern.MatchString(trimmed) ||
		binaryPattern.MatchString(trimmed)
}

// textLength counts UTF-16 code units, the unit browsers report for a
// string's length. Characters outside the basic plane count twice.
func textLength(value string) int {
	n := 0
	for _, r := range value {
		if r > 0xFFFF {
			n += 2
			continue
		}
		n++
	}
	return n
}
