package store

import (
	"reflect"
	"testing"

	"github.com/kyamalvirdayev-oss/trains-parser/internal/model"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get on empty store reported a hit")
	}

	if err := s.Set("raw", []byte(`{"n":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok := s.Get("raw")
	if !ok || string(data) != `{"n":1}` {
		t.Errorf("Get = %q, %v", data, ok)
	}
}

func TestLocalStoreJSON(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	trains := []model.Train{
		{Time: "08:45", Route: "Москва — Сергиев Посад", Days: "будни"},
		{Time: "09:30", Route: "Москва — Болшево", Days: ""},
	}

	key := "deadbeef-будни" // checksum plus filter suffix, as the scraper builds it
	if err := s.SetJSON(key, trains); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got []model.Train
	if !s.GetJSON(key, &got) {
		t.Fatal("GetJSON reported a miss")
	}
	if !reflect.DeepEqual(got, trains) {
		t.Errorf("round trip changed the data:\n%v\n%v", got, trains)
	}

	if s.GetJSON("deadbeef", &got) {
		t.Error("unfiltered key unexpectedly present")
	}
}
