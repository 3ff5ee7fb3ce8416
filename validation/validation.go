package validation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors collects validation messages per form field, in the order the
// validators ran. A field may carry several messages.
type Errors map[string][]string

func (e Errors) Empty() bool { return len(e) == 0 }

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Required adds msg when value is blank. Returns true when the value passed.
func Required(field, value, msg string, e Errors) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
		return false
	}
	return true
}

// UUID coerces value to a UUID. Blank or malformed input adds msg.
func UUID(field, value, msg string, e Errors) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		e.Add(field, msg)
		return uuid.Nil, false
	}
	return id, true
}

// PositiveAmount coerces value to a decimal and requires it to be strictly
// greater than zero. A value that does not parse fails the same way a
// non-positive one does.
func PositiveAmount(field, value, msg string, e Errors) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || !d.IsPositive() {
		e.Add(field, msg)
		return decimal.Zero, false
	}
	return d, true
}

// OneOf requires value to equal one of the allowed literals exactly.
func OneOf(field, value string, allowed []string, msg string, e Errors) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	e.Add(field, msg)
	return false
}
