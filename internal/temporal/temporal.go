// Package temporal converts free-text time phrases into the assistant's
// fixed "YYYY-MM-DD HH:MM" lexical form.
//
// Resolution order:
//  1. "tomorrow" anywhere in the phrase;
//  2. "next <weekday>" checked Monday-first, never resolving to today;
//  3. fuzzy fallback: strict absolute formats, then natural-language
//     phrases relative to the reference instant.
//
// Branches 1 and 2 share one clock-token grammar: one or two digits,
// optional ":MM", optional am/pm, first match anywhere in the phrase,
// with a literal "9am" substituted when no token is present.
package temporal

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Layout is the fixed lexical form every interpreted phrase normalizes to.
const Layout = "2006-01-02 15:04"

// ErrUnparseable reports that no rule and no fallback recognised the phrase.
var ErrUnparseable = errors.New("temporal: unparseable phrase")

// clockToken matches "3", "3:30", "3pm", "3:30pm", "3 pm".
var clockToken = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s?(am|pm)?`)

const defaultClock = "9am"

// weekdays in the fixed Monday-first check order; the index doubles as
// the Monday-based weekday number used by daysAhead arithmetic.
var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var fuzzy = newFuzzy()

func newFuzzy() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse interprets text against the reference instant ref and returns
// the normalized timestamp string, or an error wrapping ErrUnparseable.
func Parse(text string, ref time.Time) (string, error) {
	t := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(t, "tomorrow") {
		return combine(ref.AddDate(0, 0, 1), t, text)
	}

	for target, day := range weekdays {
		if !strings.Contains(t, "next "+day) {
			continue
		}
		ahead := (target - mondayBased(ref.Weekday()) + 7) % 7
		if ahead == 0 {
			// Today is that weekday; "next" always means a week ahead.
			ahead = 7
		}
		return combine(ref.AddDate(0, 0, ahead), t, text)
	}

	// Fallback: strict absolute formats first, then casual phrases with
	// ref supplying defaults for unspecified fields.
	if at, err := dateparse.ParseIn(t, ref.Location()); err == nil {
		return at.Format(Layout), nil
	}
	if r, err := fuzzy.Parse(text, ref); err == nil && r != nil {
		return r.Time.Format(Layout), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnparseable, text)
}

// combine merges the base date with the phrase's clock token (or the
// 9am default) into the fixed layout.
func combine(base time.Time, lowered, original string) (string, error) {
	hour, minute, ok := extractClock(lowered)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnparseable, original)
	}
	at := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
	return at.Format(Layout), nil
}

// extractClock returns the hour and minute of the first clock token in
// t, defaulting to 9am when none is present. ok is false when the token
// is out of range (e.g. "99" or "10:75").
func extractClock(t string) (hour, minute int, ok bool) {
	m := clockToken.FindStringSubmatch(t)
	if m == nil {
		m = clockToken.FindStringSubmatch(defaultClock)
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch m[3] {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, minute, hour <= 23 && minute <= 59
}

// mondayBased converts Go's Sunday-based weekday to Monday=0.
func mondayBased(d time.Weekday) int {
	return (int(d) + 6) % 7
}
