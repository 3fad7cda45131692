package model

// Train represents a single suburban departure from the station page.
type Train struct {
	Time  string `json:"time"`  // departure time, e.g. "08:45"
	Route string `json:"route"` // "Москва Ярославская — Сергиев Посад"
	Days  string `json:"days"`  // "ежедневно", "будни", "выходные", or "" when the row carries no label
}
