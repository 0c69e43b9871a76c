package logdate

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Width is the number of bytes in a date prefix.
const Width = 10

// Layout is the time layout of a date prefix.
const Layout = "2006-01-02"

// ErrInvalidFormat is returned when a target date is not a valid YYYY-MM-DD date.
var ErrInvalidFormat = errors.New("invalid date format")

// Key is a YYYY-MM-DD date. Keys returned by Parse are validated; keys read
// back from log lines are taken as they appear.
type Key string

// Parse validates s and returns it as a Key. Both the shape and the calendar
// value are checked, so "20241201" and "2024-13-40" are rejected.
func Parse(s string) (Key, error) {
	if len(s) != Width {
		return "", fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidFormat, s)
	}
	if _, err := time.Parse(Layout, s); err != nil {
		return "", fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidFormat, s)
	}
	return Key(s), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Time returns midnight UTC of the key's day.
func (k Key) Time() time.Time {
	t, _ := time.Parse(Layout, string(k))
	return t
}

func (k Key) String() string { return string(k) }

// Matches reports whether line begins with k.
func (k Key) Matches(line []byte) bool {
	return bytes.HasPrefix(line, []byte(k))
}
