package journal

import (
	"sort"
	"time"
)

// SortByDateDesc returns the logs ordered most recent first. Logs with an
// unparsable date sort last. The input is not modified.
func SortByDateDesc(logs []DailyLog) []DailyLog {
	out := make([]DailyLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := time.Parse(DateLayout, out[i].LogDate)
		tj, errj := time.Parse(DateLayout, out[j].LogDate)
		switch {
		case erri != nil:
			return false
		case errj != nil:
			return true
		}
		return ti.After(tj)
	})
	return out
}

// ReadingLogs keeps logs that recorded something read, watched, or listened to.
func ReadingLogs(logs []DailyLog) []DailyLog {
	return filter(logs, func(l DailyLog) bool { return l.Reading != "" })
}

// LinkDumpLogs keeps logs with at least one saved link.
func LinkDumpLogs(logs []DailyLog) []DailyLog {
	return filter(logs, func(l DailyLog) bool { return len(l.LinkDumps) > 0 })
}

func filter(logs []DailyLog, keep func(DailyLog) bool) []DailyLog {
	out := []DailyLog{}
	for _, l := range logs {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// Views is the dashboard's three tables.
type Views struct {
	All       []DailyLog
	Reading   []DailyLog
	LinkDumps []DailyLog
}

// BuildViews sorts logs and derives the reading and link dump tables.
func BuildViews(logs []DailyLog) Views {
	sorted := SortByDateDesc(logs)
	return Views{
		All:       sorted,
		Reading:   ReadingLogs(sorted),
		LinkDumps: LinkDumpLogs(sorted),
	}
}
