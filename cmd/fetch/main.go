// Fetches the station page through headless Chrome and writes the rendered
// markup to stdout, for inspection or for piping into cmd/parse.
//
// Usage: CHROME_PATH=/path/to/chromium go run ./cmd/fetch | go run ./cmd/parse
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/scraper"
)

func main() {
	pageURL := flag.String("url", scraper.DefaultStationURL, "station page URL")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	page, err := scraper.RenderHTML(ctx, *pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(page)
}
