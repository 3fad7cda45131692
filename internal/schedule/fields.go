package schedule

import (
	"regexp"
	"strings"
)

// The time must sit on word boundaries, and Cyrillic letters count as word
// characters here: Go's \b is ASCII-only and would accept "Посад08:45".
var departureTime = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(\d{2}:\d{2})(?:[^\p{L}\p{N}_]|$)`)

// FindDepartureTime returns the first HH:MM time found in the row fragments,
// or "" if none of them contains one. The matched substring is returned, not
// the whole fragment.
func FindDepartureTime(fragments []string) string {
	for _, part := range fragments {
		if match := departureTime.FindStringSubmatch(part); match != nil {
			return match[1]
		}
	}
	return ""
}

// FindDaysLabel returns the day-pattern label of the row, or "" if none is
// present. Fragments are scanned in row order and, within each fragment,
// labels are tried in their fixed order; the first hit wins. The nesting
// matters: a row saying "будни" in one cell and "ежедневно" in a later one
// is a "будни" row.
func FindDaysLabel(fragments []string) string {
	for _, part := range fragments {
		lowered := strings.ToLower(part)
		for _, label := range DayLabels {
			if strings.Contains(lowered, label) {
				return label
			}
		}
	}
	return ""
}

// FindRoute returns the simplified route of the first fragment that contains
// a dash between station names and survives simplification, or "" if no
// fragment yields a usable route.
func FindRoute(fragments []string) string {
	for _, part := range fragments {
		if !strings.ContainsAny(part, "—–-") {
			continue
		}
		if route := SimplifyRoute(part); route != "" {
			return route
		}
	}
	return ""
}
