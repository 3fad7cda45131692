package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/cache"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/store"
)

// TutuScraper fetches one station page and extracts its departures.
type TutuScraper struct {
	url     string
	render  bool
	pages   *cache.Cache // fetched-page cache, may be nil
	results store.Store  // parse results keyed by page checksum, may be nil
}

// New creates a scraper for the given station page URL. When render is set
// the page is loaded through headless Chrome instead of a plain GET. pages
// and results are optional caches; pass nil to always fetch and parse.
func New(url string, render bool, pages *cache.Cache, results store.Store) *TutuScraper {
	if url == "" {
		url = DefaultStationURL
	}
	return &TutuScraper{
		url:     url,
		render:  render,
		pages:   pages,
		results: results,
	}
}

// URL returns the station page URL this scraper fetches.
func (s *TutuScraper) URL() string {
	return s.url
}

// Fetch retrieves the station page and returns its departure list. dayFilter
// is passed through to the parser: "" keeps every day pattern. Cache failures
// are logged and ignored; only the fetch itself and unreadable markup are
// fatal.
func (s *TutuScraper) Fetch(ctx context.Context, dayFilter string) ([]model.Train, error) {
	page, err := s.pageHTML(ctx)
	if err != nil {
		return nil, err
	}

	checksum := sha256.Sum256([]byte(page))
	key := hex.EncodeToString(checksum[:])
	if dayFilter != "" {
		// filtered runs must not observe another run's unfiltered result
		key += "-" + dayFilter
	}

	if s.results != nil {
		var cached []model.Train
		if s.results.GetJSON(key, &cached) {
			return cached, nil
		}
	}

	trains, err := ParseHTML(page, dayFilter)
	if err != nil {
		return nil, err
	}

	if s.results != nil {
		if err := s.results.SetJSON(key, trains); err != nil {
			log.Printf("warning: failed to cache parse result: %v", err)
		}
	}

	return trains, nil
}

func (s *TutuScraper) pageHTML(ctx context.Context) (string, error) {
	if s.pages != nil {
		if page, ok := s.pages.Get(s.url); ok {
			return page, nil
		}
	}

	var (
		page string
		err  error
	)
	if s.render {
		page, err = RenderHTML(ctx, s.url)
	} else {
		page, err = FetchHTML(ctx, s.url)
	}
	if err != nil {
		return "", err
	}

	if s.pages != nil {
		if err := s.pages.Set(s.url, page); err != nil {
			log.Printf("warning: failed to cache page: %v", err)
		}
	}

	return page, nil
}
