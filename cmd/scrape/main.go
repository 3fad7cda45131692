// Scrapes the tutu.ru station schedule page, prints the departures and
// writes them as a JSON array.
//
// Usage: go run ./cmd/scrape [-days будни] [-file page.html] [-output schedule.json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/cache"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/scraper"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/store"
)

func main() {
	days := flag.String("days", "", "filter by day pattern: будни or ежедневно (empty keeps all departures)")
	file := flag.String("file", "", "parse a local HTML file instead of fetching the station page")
	pageURL := flag.String("url", scraper.DefaultStationURL, "station page URL")
	render := flag.Bool("render", false, "fetch the page through headless Chrome")
	output := flag.String("output", "schedule.json", "JSON file to write the departures to")
	cacheDir := flag.String("cache-dir", "", "directory for cached pages and parse results (empty disables caching)")
	cacheTTL := flag.Duration("cache-ttl", 6*time.Hour, "how long cached pages stay fresh")
	gcsBucket := flag.String("gcs-bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for the parse-result cache (overrides the local one)")
	flag.Parse()

	switch *days {
	case "", "будни", "ежедневно":
	default:
		log.Fatalf("-days must be будни or ежедневно, got %q", *days)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var trains []model.Train
	if *file != "" {
		var err error
		trains, err = parseFile(*file, *days)
		if err != nil {
			log.Fatalf("parsing %s: %v", *file, err)
		}
	} else {
		var pages *cache.Cache
		var results store.Store

		if *cacheDir != "" {
			var err error
			pages, err = cache.New(*cacheDir, *cacheTTL)
			if err != nil {
				log.Fatalf("opening page cache: %v", err)
			}
			results, err = store.NewLocal(filepath.Join(*cacheDir, "results"))
			if err != nil {
				log.Fatalf("opening result store: %v", err)
			}
		}
		if *gcsBucket != "" {
			gcs, err := store.NewGCS(ctx, *gcsBucket)
			if err != nil {
				log.Fatalf("opening GCS store: %v", err)
			}
			defer gcs.Close()
			results = gcs
		}

		s := scraper.New(*pageURL, *render, pages, results)

		var err error
		trains, err = s.Fetch(ctx, *days)
		if err != nil {
			log.Fatalf("fetching schedule: %v", err)
		}
	}

	for _, t := range trains {
		fmt.Printf("%s | %s | %s\n", t.Time, t.Route, t.Days)
	}

	if err := writeJSON(*output, trains); err != nil {
		log.Fatalf("writing %s: %v", *output, err)
	}
	log.Printf("wrote %d departures to %s", len(trains), *output)
}

func parseFile(path string, dayFilter string) ([]model.Train, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// local copies of the page may still be windows-1251
	page, err := scraper.DecodeHTML(data, "")
	if err != nil {
		return nil, err
	}

	return scraper.ParseHTML(page, dayFilter)
}

func writeJSON(path string, trains []model.Train) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(trains); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
