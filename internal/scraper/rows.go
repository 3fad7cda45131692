package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/schedule"
)

// DocumentRows collects the raw cell texts of every table row in the
// document. Text nodes inside a cell are joined with spaces, so "Москва<br>
// Ярославская" stays two words.
func DocumentRows(doc *goquery.Document) schedule.Rows {
	var rows schedule.Rows

	doc.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		rows = append(rows, cells)
	})

	return rows
}

func cellText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// ParseHTML parses a station page held in memory and returns its departures.
func ParseHTML(page string, dayFilter string) ([]model.Train, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return schedule.Parse(DocumentRows(doc), dayFilter), nil
}
