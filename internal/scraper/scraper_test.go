package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/cache"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
	"github.com/kyamalvirdayev-oss/trains-parser/internal/store"
)

const stationPage = `<html><body>
<table>
<tr><th>Время</th><th>Маршрут</th><th>Дни</th></tr>
<tr><td>06:10</td><td>Электричка Москва Ярославская — Александров 6002</td><td>ежедневно</td></tr>
<tr><td>08:45</td><td>Электричка Москва Ярославская — Сергиев Посад (обычно путь 1-6) 6212</td><td>будни</td></tr>
<tr><td>08:45</td><td>Электричка Москва Ярославская — Сергиев Посад 6212</td><td>будни</td></tr>
<tr><td>09:30</td><td>Спутник Москва<br>Ярославская — Болшево 7012</td><td>выходные</td></tr>
<tr><td>реклама</td><td>купить билет</td></tr>
</table>
</body></html>`

func mustDocument(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestDocumentRows(t *testing.T) {
	rows := DocumentRows(mustDocument(t, stationPage)).Rows()

	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}

	// header row has th cells only
	if len(rows[0]) != 0 {
		t.Errorf("header row should have no td cells, got %v", rows[0])
	}

	if rows[1][0] != "06:10" {
		t.Errorf("first cell = %q, want %q", rows[1][0], "06:10")
	}

	// text nodes split by markup are joined with a space
	if got := rows[4][1]; !strings.HasPrefix(got, "Спутник Москва Ярославская") {
		t.Errorf("cell text across <br> = %q", got)
	}
}

func TestParseHTML(t *testing.T) {
	trains, err := ParseHTML(stationPage, "")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}

	want := []model.Train{
		{Time: "06:10", Route: "Москва Ярославская — Александров", Days: "ежедневно"},
		{Time: "08:45", Route: "Москва Ярославская — Сергиев Посад", Days: "будни"},
		{Time: "09:30", Route: "Москва Ярославская — Болшево", Days: "выходные"},
	}
	if !reflect.DeepEqual(trains, want) {
		t.Errorf("got %v, want %v", trains, want)
	}
}

func TestParseHTMLDayFilter(t *testing.T) {
	trains, err := ParseHTML(stationPage, "будни")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}

	if len(trains) != 1 {
		t.Fatalf("expected 1 train, got %d: %v", len(trains), trains)
	}
	if trains[0].Days != "будни" {
		t.Errorf("filter leaked record: %+v", trains[0])
	}
}

// windows1251 encodes ASCII as-is and looks up everything else in the
// windows-1251 table. Enough for the fixture strings used here.
func windows1251(t *testing.T, s string) []byte {
	t.Helper()
	table := map[rune]byte{
		'—': 0x97,
		'М': 0xCC, 'Т': 0xD2,
		'а': 0xE0, 'б': 0xE1, 'в': 0xE2, 'д': 0xE4, 'е': 0xE5,
		'и': 0xE8, 'к': 0xEA, 'н': 0xED, 'о': 0xEE, 'р': 0xF0,
		'с': 0xF1, 'у': 0xF3, 'ь': 0xFC,
	}

	var out []byte
	for _, r := range s {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		b, ok := table[r]
		if !ok {
			t.Fatalf("rune %q not in test encoding table", r)
		}
		out = append(out, b)
	}
	return out
}

func TestDecodeHTMLMetaCharset(t *testing.T) {
	body := windows1251(t, `<html><head><meta http-equiv="Content-Type" content="text/html; charset=windows-1251"></head>`+
		`<body><table><tr><td>08:45</td><td>Москва — Тверь</td><td>будни</td></tr></table></body></html>`)

	decoded, err := DecodeHTML(body, "")
	if err != nil {
		t.Fatalf("DecodeHTML: %v", err)
	}
	if !strings.Contains(decoded, "Москва — Тверь") {
		t.Errorf("decoded page lost the route: %q", decoded)
	}

	trains, err := ParseHTML(decoded, "")
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	want := []model.Train{{Time: "08:45", Route: "Москва — Тверь", Days: "будни"}}
	if !reflect.DeepEqual(trains, want) {
		t.Errorf("got %v, want %v", trains, want)
	}
}

func TestDecodeHTMLContentTypeHeader(t *testing.T) {
	body := windows1251(t, `<html><body>Москва — Тверь</body></html>`)

	decoded, err := DecodeHTML(body, "text/html; charset=windows-1251")
	if err != nil {
		t.Fatalf("DecodeHTML: %v", err)
	}
	if !strings.Contains(decoded, "Москва — Тверь") {
		t.Errorf("decoded page lost the route: %q", decoded)
	}
}

func TestFetchHTMLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchHTML(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusInternalServerError)
	}
}

func TestTutuScraperCaching(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(stationPage))
	}))
	defer server.Close()

	pages, err := cache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	results, err := store.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("store.NewLocal: %v", err)
	}

	s := New(server.URL, false, pages, results)

	first, err := s.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first Fetch returned no trains")
	}

	second, err := s.Fetch(context.Background(), "")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}

	if hits != 1 {
		t.Errorf("expected 1 page fetch, got %d", hits)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs:\n%v\n%v", first, second)
	}

	// a filtered run gets its own result key
	filtered, err := s.Fetch(context.Background(), "будни")
	if err != nil {
		t.Fatalf("filtered Fetch: %v", err)
	}
	for _, tr := range filtered {
		if tr.Days != "будни" {
			t.Errorf("filter leaked record: %+v", tr)
		}
	}
}
