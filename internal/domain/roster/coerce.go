package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts tried in order. Ordering matters: ambiguous text such as
// "01/02/2024" matches more than one layout and the day-first reading wins.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"2006/1/2",
	"2.1.2006",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05",
	"3:04",
}

// timeRangePattern spots two time-like tokens joined by a dash, tilde or
// the word "to", i.e. a start and end time crammed into one cell.
var timeRangePattern = regexp.MustCompile(`(?i)\d{1,2}[:\d]*\s*[-~～–—to]+\s*\d{1,2}`)

// coerceString stringifies any non-empty value and trims it. A value that
// is empty after trimming collapses to absent.
func coerceString(c Cell) (string, bool) {
	if c.Kind == CellEmpty {
		return "", false
	}
	s := strings.TrimSpace(c.DisplayString())
	if s == "" {
		return "", false
	}
	return s, true
}

// coerceDate converts a cell to a calendar date at midnight UTC. Typed
// temporal cells convert directly; text is tried against dateLayouts in
// order. The bool result reports presence; err is set when a present
// value cannot be read as a date.
func coerceDate(c Cell) (time.Time, bool, error) {
	switch c.Kind {
	case CellEmpty:
		return time.Time{}, false, nil
	case CellDateTime:
		t := c.Time
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true, nil
	case CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("unable to parse date: %s", s)
	default:
		return time.Time{}, false, fmt.Errorf("cannot read a date from a %s cell", c.Kind)
	}
}

// coerceTime converts a cell to a clock time on the zero date. Numeric
// cells follow the spreadsheet convention of a fraction of a 24-hour day
// (0.5 is noon), floored to whole seconds with the hour taken modulo 24.
// Text with a detected time range fails with a message directing the
// caller to separate start and end columns.
func coerceTime(c Cell) (time.Time, bool, error) {
	switch c.Kind {
	case CellEmpty:
		return time.Time{}, false, nil
	case CellTimeOfDay, CellDateTime:
		return clockTime(c.Time.Hour(), c.Time.Minute(), c.Time.Second()), true, nil
	case CellNumber:
		total := int(c.Number * 24 * 60 * 60)
		return clockTime((total/3600)%24, (total%3600)/60, total%60), true, nil
	case CellText:
		return coerceTimeText(c.Text)
	default:
		return time.Time{}, false, fmt.Errorf("cannot read a time from a %s cell", c.Kind)
	}
}

func coerceTimeText(raw string) (time.Time, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false, nil
	}

	if timeRangePattern.MatchString(s) {
		return time.Time{}, false, fmt.Errorf(
			"time range detected: %q; use separate start time and end time columns", s)
	}

	upper := strings.ToUpper(s)
	isPM := strings.Contains(upper, "PM")
	isAM := strings.Contains(upper, "AM")
	upper = strings.ReplaceAll(upper, "AM", "")
	upper = strings.ReplaceAll(upper, "PM", "")
	upper = strings.TrimSpace(upper)

	// Bare hour such as "9", "9AM" or "9 PM".
	if isDigits(upper) {
		hour, _ := strconv.Atoi(upper)
		if isPM && hour < 12 {
			hour += 12
		} else if isAM && hour == 12 {
			hour = 0
		}
		if hour >= 0 && hour <= 23 {
			return clockTime(hour, 0, 0), true, nil
		}
	}

	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, upper)
		if err != nil {
			continue
		}
		hour := parsed.Hour()
		if isPM && hour < 12 {
			hour += 12
		} else if isAM && hour == 12 {
			hour = 0
		}
		return clockTime(hour, parsed.Minute(), parsed.Second()), true, nil
	}

	return time.Time{}, false, fmt.Errorf("unable to parse time: %s", upper)
}

// coerceBool never fails: anything without a clear truthy signal is false.
func coerceBool(c Cell) bool {
	switch c.Kind {
	case CellNumber:
		return c.Number != 0
	case CellText:
		switch strings.ToLower(strings.TrimSpace(c.Text)) {
		case "true", "yes", "y", "1", "on":
			return true
		}
	}
	return false
}

// coerceInt truncates reals toward zero and parses text as a real before
// truncating. Unparsable or absent input yields absent, never an error.
func coerceInt(c Cell) (int, bool) {
	switch c.Kind {
	case CellNumber:
		return int(c.Number), true
	case CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// clockTime places a clock reading on the zero date so clock values
// compare and subtract directly.
func clockTime(hour, minute, second int) time.Time {
	return time.Date(1, time.January, 1, hour, minute, second, 0, time.UTC)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
