// Package contact defines the validated field types of a contact and the
// Record that aggregates them.
package contact

import (
	"errors"
	"fmt"
	"time"
)

// BirthdayLayout is the only accepted birthday format (DD.MM.YYYY).
const BirthdayLayout = "02.01.2006"

// PhoneLength is the exact number of digits in a phone number.
const PhoneLength = 10

// Sentinel errors for caller-checkable conditions.
var (
	ErrValidation    = errors.New("contact: invalid value")
	ErrNotFound      = errors.New("contact: not found")
	ErrPhoneNotFound = fmt.Errorf("%w: phone", ErrNotFound)
)

// ValidationError reports raw text that could not be turned into a field value.
type ValidationError struct {
	Field  string // "name", "phone" or "birthday"
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Name identifies a contact. It is never empty.
type Name string

// ParseName validates text as a contact name.
func ParseName(text string) (Name, error) {
	if text == "" {
		return "", &ValidationError{Field: "name", Value: text, Reason: "must not be empty"}
	}
	return Name(text), nil
}

func (n Name) String() string { return string(n) }

// Phone is a phone number of exactly PhoneLength decimal digits.
type Phone string

// ParsePhone validates text as a phone number. No separators are stripped.
func ParsePhone(text string) (Phone, error) {
	if len(text) != PhoneLength {
		return "", &ValidationError{
			Field:  "phone",
			Value:  text,
			Reason: fmt.Sprintf("must be exactly %d digits", PhoneLength),
		}
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return "", &ValidationError{Field: "phone", Value: text, Reason: "must contain digits only"}
		}
	}
	return Phone(text), nil
}

func (p Phone) String() string { return string(p) }

// Birthday is a calendar date with no time of day, stored at midnight UTC.
type Birthday struct {
	t time.Time
}

// ParseBirthday validates text as a DD.MM.YYYY date.
func ParseBirthday(text string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, text)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: text, Reason: "use DD.MM.YYYY"}
	}
	return Birthday{t: t}, nil
}

// Month returns the month of the birthday.
func (b Birthday) Month() time.Month { return b.t.Month() }

// Day returns the day of the month of the birthday.
func (b Birthday) Day() int { return b.t.Day() }

// Time returns the birthday as midnight UTC.
func (b Birthday) Time() time.Time { return b.t }

func (b Birthday) String() string { return b.t.Format(BirthdayLayout) }
