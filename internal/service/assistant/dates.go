package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Natural-language date resolution. All results are midnight UTC dates;
// unparseable input reports ok=false so callers can ask a clarifying
// question instead of guessing.

// Ordered so a phrase naming several weekdays resolves the same way
// every time.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"sunday", time.Sunday},
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	monthDayRe = regexp.MustCompile(`\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	numericRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	rangeRe    = regexp.MustCompile(`\bfrom\s+(.+?)\s+(?:to|until|through)\s+(.+)`)
)

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate resolves one date expression relative to now.
func parseDate(text string, now time.Time) (time.Time, bool) {
	nextWeek := strings.Contains(strings.ToLower(text), "next week")
	return parseDateAt(text, now, nextWeek)
}

// parseDateAt is parseDate with the "next week" qualifier supplied by the
// caller. Range parsing extracts the qualifier from the whole phrase so
// it applies to both endpoints even when it trails the second one.
func parseDateAt(text string, now time.Time, nextWeek bool) (time.Time, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	base := dateOnly(now)

	if strings.Contains(t, "today") {
		return base, true
	}
	if strings.Contains(t, "tomorrow") {
		return base.AddDate(0, 0, 1), true
	}

	for _, entry := range weekdayNames {
		if !containsWord(t, entry.name) {
			continue
		}
		wd := entry.day
		search := base
		if nextWeek {
			// Advance to the following Monday, then take the weekday on
			// or after it.
			daysToMonday := (int(time.Monday) - int(search.Weekday()) + 7) % 7
			if daysToMonday == 0 {
				daysToMonday = 7
			}
			search = search.AddDate(0, 0, daysToMonday)
			offset := (int(wd) - int(search.Weekday()) + 7) % 7
			return search.AddDate(0, 0, offset), true
		}
		offset := (int(wd) - int(search.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		return search.AddDate(0, 0, offset), true
	}

	if nextWeek {
		return base.AddDate(0, 0, 7), true
	}
	if strings.Contains(t, "next month") {
		return base.AddDate(0, 1, 0), true
	}

	if m := monthDayRe.FindStringSubmatch(t); m != nil {
		month, ok := monthNames[strings.TrimSuffix(m[1], ".")]
		if !ok {
			return time.Time{}, false
		}
		day, err := strconv.Atoi(m[2])
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, false
		}
		d := time.Date(base.Year(), month, day, 0, 0, 0, 0, time.UTC)
		if d.Before(base) {
			d = d.AddDate(1, 0, 0)
		}
		return d, true
	}

	if m := numericRe.FindStringSubmatch(t); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, false
		}
		year := base.Year()
		explicit := false
		if m[3] != "" {
			y, err := strconv.Atoi(m[3])
			if err != nil {
				return time.Time{}, false
			}
			if y < 100 {
				y += 2000
			}
			year, explicit = y, true
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if !explicit && d.Before(base) {
			d = d.AddDate(1, 0, 0)
		}
		return d, true
	}

	return time.Time{}, false
}

// parseDateRange resolves "from X to Y" and "X and Y" phrases, parsing
// both endpoints independently and ordering them so start never follows
// end. A single date yields start == end.
func parseDateRange(text string, now time.Time) (start, end time.Time, ok bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	nextWeek := strings.Contains(t, "next week")

	var left, right string
	if m := rangeRe.FindStringSubmatch(t); m != nil {
		left, right = m[1], m[2]
	} else if i := strings.Index(t, " and "); i >= 0 {
		left, right = t[:i], t[i+5:]
	} else {
		d, ok := parseDateAt(t, now, nextWeek)
		return d, d, ok
	}

	a, okA := parseDateAt(left, now, nextWeek)
	b, okB := parseDateAt(right, now, nextWeek)
	if !okA || !okB {
		return time.Time{}, time.Time{}, false
	}
	if b.Before(a) {
		a, b = b, a
	}
	return a, b, true
}

func containsWord(s, word string) bool {
	i := strings.Index(s, word)
	for i >= 0 {
		before := i == 0 || !isLetter(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(s) || !isLetter(s[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(s[i+1:], word)
		if next < 0 {
			return false
		}
		i += 1 + next
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
