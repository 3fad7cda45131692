// Package scraper fetches the tutu.ru station page and feeds it to the
// schedule parser. Everything that touches the network or the markup tree
// lives here, so the schedule package stays a pure text pipeline.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// DefaultStationURL is the station page this tool was written for.
const DefaultStationURL = "https://www.tutu.ru/station.php?nnst=45807&date=all"

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Status)
}

// FetchHTML fetches a URL once and returns the page decoded to UTF-8.
// A 4xx/5xx response is an error; there are no retries.
func FetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{URL: url, Status: resp.Status, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return DecodeHTML(body, resp.Header.Get("Content-Type"))
}

// DecodeHTML converts a fetched page to UTF-8. The charset comes from the
// Content-Type header or the meta tags in the markup; tutu.ru has served
// windows-1251 in the past, so this cannot just assume UTF-8.
func DecodeHTML(body []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("detecting charset: %w", err)
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}

	return string(decoded), nil
}
