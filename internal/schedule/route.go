// Package schedule turns the noisy cell texts of a station timetable into
// clean, deduplicated departure records. It never touches markup: rows of raw
// cell texts come in through RowSource, records come out.
package schedule

import (
	"regexp"
	"strings"
	"unicode"
)

// Labels as they appear on the tutu.ru station page.
var (
	// DayLabels is checked in this order; the first substring hit wins.
	DayLabels = []string{"ежедневно", "будни", "выходные"}

	// TrainKinds are possible route prefixes, checked in this order;
	// only the first matching kind is stripped.
	TrainKinds = []string{"Электричка", "Спутник", "Иволга", "Ласточка"}
)

var (
	spaceRun       = regexp.MustCompile(`\s+`)
	trailingNumber = regexp.MustCompile(`\d+\s*$`)
)

// dayLabelPatterns match each day label case-insensitively anywhere in a string.
var dayLabelPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(DayLabels))
	for i, label := range DayLabels {
		patterns[i] = regexp.MustCompile(`(?i)` + label)
	}
	return patterns
}()

// NormalizeSpaces collapses every whitespace run to a single space and trims
// the ends.
func NormalizeSpaces(text string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// SimplifyRoute reduces a raw route cell to the bare "Origin — Destination"
// form: parenthesized comments, the train kind, day labels and the trailing
// train number are all stripped. The result may be empty, which callers must
// treat as "no route here".
func SimplifyRoute(raw string) string {
	// everything from the first "(" on is a comment, e.g. "(обычно путь 1-6)"
	route, _, _ := strings.Cut(raw, "(")

	route = strings.TrimSpace(route)
	route = stripTrainKind(route)
	for _, pattern := range dayLabelPatterns {
		route = pattern.ReplaceAllString(route, "")
	}
	route = trailingNumber.ReplaceAllString(route, "")

	route = NormalizeSpaces(route)
	return strings.Trim(route, " ,")
}

func stripTrainKind(text string) string {
	for _, kind := range TrainKinds {
		if strings.HasPrefix(text, kind) {
			return strings.TrimLeftFunc(text[len(kind):], unicode.IsSpace)
		}
	}
	return text
}
