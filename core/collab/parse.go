package collab

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/folioscope/folio/schema"
)

// reflogRe matches "<old> <new> Name <email> <unix> <tz>\t<message>" lines
// as found under .git/logs/. Timestamp, zone and message are optional.
var reflogRe = regexp.MustCompile(`^\S+\s+\S+\s+(.+?)\s+<(.*?)>\s*(\d+)?\s*([+-]\d{4})?\t?(.*)$`)

// coauthorRe matches commit message trailers.
var coauthorRe = regexp.MustCompile(`(?i)^co-authored-by:\s*(.+?)\s*(?:<[^>]*>)?\s*$`)

// commitHeaderPrefix starts a numstat commit header:
// "commit:<sha>|<author>|<email>|<unix>|<subject>".
const commitHeaderPrefix = "commit:"

// ParseLog converts log text into contribution events.
// It understands reflog lines and numstat exports; any other line is skipped.
func ParseLog(text string) []schema.ContributionEvent {
	var events []schema.ContributionEvent
	current := -1 // index of the numstat commit receiving stats and trailers

	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, commitHeaderPrefix) {
			if ev, ok := parseCommitHeader(trimmed); ok {
				events = append(events, ev)
				current = len(events) - 1
			} else {
				current = -1
			}
			continue
		}

		if current >= 0 {
			if m := coauthorRe.FindStringSubmatch(trimmed); m != nil {
				events[current].Coauthors = appendUnique(events[current].Coauthors, m[1])
				continue
			}
			if add, del, ok := parseFileStatsLine(trimmed); ok {
				events[current].Lines += add + del
				continue
			}
		}

		if ev, ok := parseReflogLine(l); ok {
			events = append(events, ev)
			current = -1
		}
	}
	return events
}

// parseReflogLine parses one reflog line into a single-commit event.
func parseReflogLine(line string) (schema.ContributionEvent, bool) {
	m := reflogRe.FindStringSubmatch(line)
	if m == nil {
		return schema.ContributionEvent{}, false
	}
	author := strings.TrimSpace(m[1])
	if author == "" {
		return schema.ContributionEvent{}, false
	}

	ev := schema.ContributionEvent{
		Author:  author,
		Email:   strings.TrimSpace(m[2]),
		Commits: 1,
	}
	if m[3] != "" {
		ev.Timestamp = parseUnix(m[3], m[4])
	}
	if isReviewMessage(m[5]) {
		ev.Reviews = 1
	}
	return ev, true
}

// parseCommitHeader extracts sha, author, email, date and subject from a numstat header.
func parseCommitHeader(line string) (schema.ContributionEvent, bool) {
	parts := strings.SplitN(strings.TrimPrefix(line, commitHeaderPrefix), "|", 5)
	if len(parts) < 3 {
		return schema.ContributionEvent{}, false
	}
	author := strings.TrimSpace(parts[1])
	if author == "" {
		return schema.ContributionEvent{}, false
	}

	ev := schema.ContributionEvent{
		SHA:     strings.TrimSpace(parts[0]),
		Author:  author,
		Email:   strings.TrimSpace(parts[2]),
		Commits: 1,
	}
	if len(parts) > 3 {
		ev.Timestamp = parseUnix(strings.TrimSpace(parts[3]), "")
	}
	if len(parts) > 4 && isReviewMessage(parts[4]) {
		ev.Reviews = 1
	}
	return ev, true
}

// CommitHeaderSHA reports whether line is a numstat commit header and returns its sha.
func CommitHeaderSHA(line string) (string, bool) {
	if !strings.HasPrefix(line, commitHeaderPrefix) {
		return "", false
	}
	ev, ok := parseCommitHeader(line)
	return ev.SHA, ok
}

// parseFileStatsLine parses an "adds\tdels\tpath" line.
func parseFileStatsLine(line string) (int, int, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return 0, 0, false
	}
	if !isChurnValue(parts[0]) || !isChurnValue(parts[1]) {
		return 0, 0, false
	}
	return parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// isChurnValue reports whether s is a numstat count or the binary marker "-".
func isChurnValue(s string) bool {
	if s == "-" {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// parseUnix turns unix seconds and an optional "+hhmm" zone into a time.
func parseUnix(secs string, zone string) time.Time {
	n, err := strconv.ParseInt(secs, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	t := time.Unix(n, 0).UTC()
	if loc, ok := parseZone(zone); ok {
		t = t.In(loc)
	}
	return t
}

// parseZone parses git's "+hhmm" offsets.
func parseZone(zone string) (*time.Location, bool) {
	if len(zone) != 5 {
		return nil, false
	}
	hours, err1 := strconv.Atoi(zone[1:3])
	minutes, err2 := strconv.Atoi(zone[3:5])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	offset := hours*3600 + minutes*60
	if zone[0] == '-' {
		offset = -offset
	}
	return time.FixedZone(zone, offset), true
}

func isReviewMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "review")
}
