package schedule

import (
	"strings"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
)

// RowSource yields the raw cell texts of every table row, one slice of cell
// texts per row. Markup-tree walking stays behind this interface so the
// parser does not care which HTML library produced the rows.
type RowSource interface {
	Rows() [][]string
}

// Rows is a materialized RowSource.
type Rows [][]string

func (r Rows) Rows() [][]string { return r }

// Parse walks the table rows and assembles the departure list. A row must
// yield a departure time and a non-empty route to produce a record; rows that
// fail any step are dropped silently. dayFilter of "" keeps every day
// pattern, otherwise only rows whose day label matches it exactly survive.
// Duplicate (time, route, days) triples collapse to the first occurrence,
// and the result keeps the row order of the source table. The result is
// never nil: a table with no usable rows still serializes as a JSON array.
func Parse(rows RowSource, dayFilter string) []model.Train {
	result := []model.Train{}
	seen := make(map[model.Train]bool)

	for _, cells := range rows.Rows() {
		var texts []string
		for _, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			texts = append(texts, NormalizeSpaces(cell))
		}
		if len(texts) == 0 {
			continue
		}

		departure := FindDepartureTime(texts)
		if departure == "" {
			continue
		}

		days := FindDaysLabel(texts)
		if dayFilter != "" && days != dayFilter {
			continue
		}

		route := FindRoute(texts)
		if route == "" {
			continue
		}

		train := model.Train{Time: departure, Route: route, Days: days}
		if seen[train] {
			continue
		}
		seen[train] = true

		result = append(result, train)
	}

	return result
}
