package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleResponse = `{
	"location": {"name": "Beijing"},
	"current": {
		"condition": {"text": "Partly cloudy", "code": 1003},
		"temp_c": 18.5,
		"humidity": 45,
		"wind_kph": 12.3
	}
}`

func TestCurrent_ParsesProviderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	w, err := c.Current(context.Background(), 39.9042, 116.4074)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}

	if w.Condition != "Partly cloudy" || w.Code != 1003 {
		t.Errorf("condition %q code %d", w.Condition, w.Code)
	}
	if w.TempC != 18.5 || w.Humidity != 45 {
		t.Errorf("temp %v humidity %d", w.TempC, w.Humidity)
	}
	if w.Location != "Beijing" {
		t.Errorf("location %q", w.Location)
	}
}

func TestCurrent_ServesCacheWithoutRefetch(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL)
	for i := 0; i < 3; i++ {
		if _, err := c.Current(context.Background(), 39.9, 116.4); err != nil {
			t.Fatalf("Current failed: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("provider hit %d times, want 1", calls)
	}
}

func TestCurrent_FailureReturnsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL)
	w, err := c.Current(context.Background(), 39.9, 116.4)
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if w != DefaultWeather() {
		t.Errorf("got %+v, want default weather", w)
	}
}

func TestDefaultWeather(t *testing.T) {
	w := DefaultWeather()
	if w.Condition != "Sunny" || w.Code != 1000 || w.TempC != 22 {
		t.Errorf("unexpected defaults: %+v", w)
	}
	if w.Humidity != 60 || w.WindKph != 5 {
		t.Errorf("unexpected defaults: %+v", w)
	}
}

func TestEffectFor(t *testing.T) {
	cases := []struct {
		code       int
		preference string
		want       Effect
	}{
		{1000, "all", EffectNone},
		{1183, "all", EffectRain},
		{1183, "no-rain", EffectNone},
		{1183, "no-snow", EffectRain},
		{1225, "all", EffectSnow},
		{1225, "no-snow", EffectNone},
		{1225, "no-rain", EffectSnow},
		{1282, "all", EffectSnow},
	}

	for _, tc := range cases {
		w := Weather{Code: tc.code}
		if got := EffectFor(w, tc.preference); got != tc.want {
			t.Errorf("code %d pref %q: got %s, want %s", tc.code, tc.preference, got, tc.want)
		}
	}
}
