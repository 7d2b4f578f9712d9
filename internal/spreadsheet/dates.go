package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days from this epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Layouts tried for string dates, in priority order. Unpadded layout
// elements accept both "9/10/2025" and "09/10/2025", so one variant per
// format is enough. Day-first forms come before month-first.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
	"2006/1/2",
	"2-Jan-2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2/1/06",
	"1/2/06",
	"2.1.2006",
	"1.2.2006",
}

var (
	dayMonthOnly = regexp.MustCompile(`^\s*(\d{1,2})[/\-.\s](\d{1,2})\s*$`)
	separatorRun = regexp.MustCompile(`[,\s]+`)
)

// ParseFlexibleDate turns the many date representations found in real
// uploads into a calendar date (UTC midnight). Accepted, in order:
// spreadsheet serial numbers, ISO dates, common locale formats, and the
// words today/yesterday/tomorrow. now anchors the relative words so
// parsing stays deterministic under test.
func ParseFlexibleDate(value string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// 1. Spreadsheet serial date; the fractional time-of-day part is
	// dropped.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 0 {
			return time.Time{}, fmt.Errorf("negative serial date %q", value)
		}
		return serialEpoch.AddDate(0, 0, int(serial)), nil
	}

	// 2. ISO, tolerating a trailing time component.
	isoPart, _, _ := strings.Cut(s, "T")
	if t, err := time.ParseInLocation("2006-1-2", isoPart, time.UTC); err == nil {
		return t, nil
	}

	// 3. Common locale formats, on the raw string and on a cleaned copy
	// with commas and runs of whitespace collapsed.
	cleaned := strings.TrimSpace(separatorRun.ReplaceAllString(s, " "))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation(layout, cleaned, time.UTC); err == nil {
			return t, nil
		}
	}

	// 4. Natural words.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(s) {
	case "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	// Last resort: a bare day/month pair like "11/9" assumes the current
	// year, day-first, swapping only when day-first is impossible.
	if m := dayMonthOnly.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if t, ok := makeDate(now.Year(), b, a); ok {
			return t, nil
		}
		if t, ok := makeDate(now.Year(), a, b); ok {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid or unrecognized date format: %q", value)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
