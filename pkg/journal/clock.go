package journal

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Language picks how the weekday is shown in the header.
type Language string

const (
	LangEnglish Language = "eng"
	LangHan     Language = "han"
)

var hanWeekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// ParseLanguage accepts "eng" or "han".
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangEnglish:
		return LangEnglish, nil
	case LangHan:
		return LangHan, nil
	}
	return "", fmt.Errorf("unknown language %q (want eng or han)", s)
}

// FormatDate renders "OCTOBER 16".
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format("January 2"))
}

// FormatWeekday renders "FRI" in English or a single character in Han.
func FormatWeekday(t time.Time, lang Language) string {
	if lang == LangHan {
		return hanWeekdays[t.Weekday()]
	}
	return strings.ToUpper(t.Format("Mon"))
}

// FormatTime renders a 24 hour clock with seconds.
func FormatTime(t time.Time) string {
	return t.Format("15:04:05")
}

// Today returns t's calendar date in loc as a log date.
func Today(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// LocalTimezone returns the IANA name of the machine's zone, falling back to
// the API default when it cannot be determined.
func LocalTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(target, "zoneinfo/"); i >= 0 {
			return target[i+len("zoneinfo/"):]
		}
	}
	return DefaultTimezone
}
