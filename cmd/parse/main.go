// Parses a station page from stdin and writes the departures as JSON to
// stdout.
//
// Usage: cat page.html | go run ./cmd/parse [-days будни]
// Or:    go run ./cmd/fetch | go run ./cmd/parse
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/scraper"
)

func main() {
	days := flag.String("days", "", "filter by day pattern: будни or ежедневно")
	flag.Parse()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}

	page, err := scraper.DecodeHTML(input, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	trains, err := scraper.ParseHTML(page, *days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(trains); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
