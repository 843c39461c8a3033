package cache

import (
	"net/http"
	"net/url"
	"strings"
)

// Strategy is the request-handling policy chosen for a URL.
type Strategy int

const (
	// Bypass: non-GET or non-HTTP(S); the request is not intercepted.
	Bypass Strategy = iota
	// CacheFirst: app-shell assets; serve from the primary cache, fill on miss.
	CacheFirst
	// NetworkFirst: CDN/font assets; live fetch, refresh the runtime cache,
	// fall back to the cached copy on failure.
	NetworkFirst
	// WeatherNetworkFirst: weather endpoint; live fetch with a timed
	// freshness fallback and a synthesized default payload.
	WeatherNetworkFirst
	// PassThrough: everything else goes straight to the network, uncached.
	PassThrough
)

func (s Strategy) String() string {
	switch s {
	case Bypass:
		return "bypass"
	case CacheFirst:
		return "cache-first"
	case NetworkFirst:
		return "network-first"
	case WeatherNetworkFirst:
		return "weather-network-first"
	case PassThrough:
		return "pass-through"
	}
	return "unknown"
}

// CoreAssets is the fixed app-shell manifest served cache-first. AppShell
// is the navigation fallback document.
var (
	AppShell = "/index.html"

	CoreAssets = []string{
		"/",
		"/index.html",
		"/manifest.json",
		"/styles/app.css",
		"/scripts/app.js",
		"/scripts/storage.js",
		"/scripts/i18n.js",
		"/assets/icons/icon-192.png",
		"/assets/icons/icon-512.png",
	}

	// RuntimeHosts are CDN/font providers cached network-first.
	RuntimeHosts = []string{
		"fonts.googleapis.com",
		"fonts.gstatic.com",
		"cdn.jsdelivr.net",
	}

	// WeatherHost is the weather provider handled with the freshness
	// fallback; requests to it never surface an error.
	WeatherHost = "api.weatherapi.com"
)

// Selector classifies requests into strategies. The core-asset manifest
// only describes app-origin paths, so known external hosts are matched
// first; a CDN URL whose path happens to collide with an app-shell path
// keeps its host's strategy.
type Selector struct {
	coreAssets map[string]bool
}

func NewSelector() *Selector {
	core := make(map[string]bool, len(CoreAssets))
	for _, path := range CoreAssets {
		core[path] = true
	}
	return &Selector{coreAssets: core}
}

// Classify picks the strategy for a request.
func (s *Selector) Classify(method, rawURL string) Strategy {
	if method != http.MethodGet {
		return Bypass
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Bypass
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Bypass
	}

	host := u.Hostname()
	for _, runtime := range RuntimeHosts {
		if host == runtime || strings.HasSuffix(host, "."+runtime) {
			return NetworkFirst
		}
	}

	if host == WeatherHost {
		return WeatherNetworkFirst
	}

	if s.coreAssets[u.Path] {
		return CacheFirst
	}

	return PassThrough
}
