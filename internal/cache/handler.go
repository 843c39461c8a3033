package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bloom-app/bloom/internal/config"
)

// Fetcher performs a live network fetch. The production implementation
// wraps http.Client; tests substitute failures and canned responses.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// HTTPFetcher fetches over a real http.Client.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpResp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       body,
		FetchedAt:  time.Now(),
	}, nil
}

// Clock narrows the engine clock dependency; the cache layer is a second
// actor and never shares the engine's state.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Request is the slice of an HTTP request the handler needs. Navigation
// marks a top-level document request, which must always get a response.
type Request struct {
	Method     string
	URL        string
	Navigation bool
}

// DefaultWeatherBody is the synthesized weather payload returned when the
// live fetch fails and the cached copy is stale. Mirrors the provider's
// response shape.
const DefaultWeatherBody = `{"location":{"name":"Unknown"},"current":{"condition":{"text":"Sunny","code":1000},"temp_c":22,"humidity":60,"wind_kph":5}}`

// Handler executes the per-strategy policies over a primary (app-shell)
// cache and a runtime cache.
type Handler struct {
	selector *Selector
	primary  Store
	runtime  Store
	fetcher  Fetcher
	clock    Clock

	weatherFreshness time.Duration
}

// NewHandler wires a handler. A nil clock uses the system clock.
func NewHandler(selector *Selector, primary, runtime Store, fetcher Fetcher, clock Clock) *Handler {
	if clock == nil {
		clock = systemClock{}
	}
	return &Handler{
		selector:         selector,
		primary:          primary,
		runtime:          runtime,
		fetcher:          fetcher,
		clock:            clock,
		weatherFreshness: config.WeatherFreshnessSec * time.Second,
	}
}

// Handle resolves a request according to its strategy. A nil response with
// a nil error means the request was not intercepted (Bypass).
func (h *Handler) Handle(ctx context.Context, req Request) (*Response, error) {
	switch h.selector.Classify(req.Method, req.URL) {
	case Bypass:
		return nil, nil
	case CacheFirst:
		return h.cacheFirst(ctx, req)
	case NetworkFirst:
		return h.networkFirst(ctx, req)
	case WeatherNetworkFirst:
		return h.weatherFetch(ctx, req)
	default:
		return h.fetcher.Fetch(ctx, req.URL)
	}
}

func (h *Handler) cacheFirst(ctx context.Context, req Request) (*Response, error) {
	if cached, ok := h.primary.Match(req.URL); ok {
		return cached, nil
	}

	resp, err := h.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		// Navigation requests must always render something: fall back
		// to the cached app shell on the same origin.
		if req.Navigation {
			if shell, ok := h.primary.Match(shellURL(req.URL)); ok {
				return shell, nil
			}
		}
		return nil, fmt.Errorf("failed to fetch %s with empty cache: %w", req.URL, err)
	}

	if resp.StatusCode == http.StatusOK {
		h.primary.Put(req.URL, resp)
	}
	return resp, nil
}

func (h *Handler) networkFirst(ctx context.Context, req Request) (*Response, error) {
	resp, err := h.fetcher.Fetch(ctx, req.URL)
	if err == nil {
		if resp.StatusCode == http.StatusOK {
			h.runtime.Put(req.URL, resp)
		}
		return resp, nil
	}

	if cached, ok := h.runtime.Match(req.URL); ok {
		return cached, nil
	}
	return nil, fmt.Errorf("failed to fetch %s and no cached copy: %w", req.URL, err)
}

// weatherFetch never propagates an error: it serves the live response, a
// cached copy younger than the freshness window, or the default payload.
func (h *Handler) weatherFetch(ctx context.Context, req Request) (*Response, error) {
	resp, err := h.fetcher.Fetch(ctx, req.URL)
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.FetchedAt = h.clock.Now()
		h.runtime.Put(req.URL, resp)
		return resp, nil
	}

	if cached, ok := h.runtime.Match(req.URL); ok {
		if h.clock.Now().Sub(cached.FetchedAt) < h.weatherFreshness {
			return cached, nil
		}
	}

	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(DefaultWeatherBody),
		FetchedAt:  h.clock.Now(),
	}, nil
}

// Precache fills the primary cache with every core asset, like the
// service-worker install step. Individual fetch failures are returned
// joined so a partial install is visible.
func (h *Handler) Precache(ctx context.Context, baseURL string) error {
	var firstErr error
	for _, path := range CoreAssets {
		url := baseURL + path
		resp, err := h.fetcher.Fetch(ctx, url)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to precache %s: %w", url, err)
			}
			continue
		}
		if resp.StatusCode == http.StatusOK {
			h.primary.Put(url, resp)
		}
	}
	return firstErr
}

// shellURL rewrites a request URL to point at the app shell document on
// the same origin.
func shellURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return AppShell
	}
	u.Path = AppShell
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// ClearAll empties both caches.
func (h *Handler) ClearAll() {
	h.primary.Clear()
	h.runtime.Clear()
}
