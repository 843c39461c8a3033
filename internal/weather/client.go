package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bloom-app/bloom/internal/config"
)

const defaultBaseURL = "https://api.weatherapi.com/v1/current.json"

// Weather is the subset of the provider response the app uses.
type Weather struct {
	Condition string  `json:"condition"`
	Code      int     `json:"code"`
	TempC     float64 `json:"temp_c"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	Location  string  `json:"location"`
}

// apiResponse mirrors the weatherapi.com current-conditions shape.
type apiResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		Condition struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
		TempC    float64 `json:"temp_c"`
		Humidity int     `json:"humidity"`
		WindKph  float64 `json:"wind_kph"`
	} `json:"current"`
}

// Client fetches current conditions with a short in-memory cache. A failed
// fetch degrades to the cached value, then to DefaultWeather; callers
// never see a hard failure.
type Client struct {
	mu         sync.Mutex
	httpClient *http.Client
	baseURL    string
	apiKey     string

	cached    *Weather
	lastFetch time.Time
	cacheTTL  time.Duration
}

// NewClient builds a client. An empty baseURL uses the public provider.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.WeatherTimeoutSec * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cacheTTL:   config.WeatherFreshnessSec * time.Second,
	}
}

// Current returns the weather at the given position, serving the cached
// value while it is fresh. On any failure the default weather is returned
// along with the error so callers can degrade silently.
func (c *Client) Current(ctx context.Context, lat, lon float64) (Weather, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.lastFetch) < c.cacheTTL {
		w := *c.cached
		c.mu.Unlock()
		return w, nil
	}
	c.mu.Unlock()

	w, err := c.fetch(ctx, lat, lon)
	if err != nil {
		return DefaultWeather(), fmt.Errorf("failed to fetch weather: %w", err)
	}

	c.mu.Lock()
	c.cached = &w
	c.lastFetch = time.Now()
	c.mu.Unlock()
	return w, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (Weather, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	q.Set("aqi", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Weather{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Weather{}, fmt.Errorf("failed to parse weather response: %w", err)
	}

	return Weather{
		Condition: parsed.Current.Condition.Text,
		Code:      parsed.Current.Condition.Code,
		TempC:     parsed.Current.TempC,
		Humidity:  parsed.Current.Humidity,
		WindKph:   parsed.Current.WindKph,
		Location:  parsed.Location.Name,
	}, nil
}

// DefaultWeather is the fallback when no live or cached data is available.
func DefaultWeather() Weather {
	return Weather{
		Condition: "Sunny",
		Code:      1000,
		TempC:     22,
		Humidity:  60,
		WindKph:   5,
		Location:  "Unknown",
	}
}

// DefaultPosition is used when no location is configured.
func DefaultPosition() (lat, lon float64) {
	return config.DefaultLatitude, config.DefaultLongitude
}

// Effect is the ambient greeting effect a condition maps to, filtered by
// the user's weather preference.
type Effect string

const (
	EffectNone Effect = "none"
	EffectRain Effect = "rain"
	EffectSnow Effect = "snow"
)

// EffectFor maps a provider condition code to an effect, honoring the
// "no-rain"/"no-snow" preferences.
func EffectFor(w Weather, preference string) Effect {
	switch {
	case w.Code >= 1180 && w.Code <= 1201:
		if preference == "no-rain" {
			return EffectNone
		}
		return EffectRain
	case w.Code >= 1210 && w.Code <= 1282:
		if preference == "no-snow" {
			return EffectNone
		}
		return EffectSnow
	}
	return EffectNone
}
