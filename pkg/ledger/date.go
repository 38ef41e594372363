package ledger

import (
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ValidDate reports whether s is a calendar date in strict YYYY-MM-DD form.
// Slash-separated and other non-ISO forms are rejected.
func ValidDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// ValidMonth reports whether s is a calendar month in strict YYYY-MM form.
func ValidMonth(s string) bool {
	if len(s) != len(monthLayout) {
		return false
	}
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

// MonthOf returns the YYYY-MM prefix of a YYYY-MM-DD date.
func MonthOf(date string) string {
	if len(date) < len(monthLayout) {
		return ""
	}
	return date[:len(monthLayout)]
}

// InMonth reports whether the date falls within the given YYYY-MM month.
func InMonth(date, month string) bool {
	return len(date) > len(month) && strings.HasPrefix(date, month) && date[len(month)] == '-'
}

// Today returns the current date in YYYY-MM-DD form.
func Today() string {
	return time.Now().Format(dateLayout)
}
