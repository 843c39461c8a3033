package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bloom-app/bloom/internal/cache"
	"github.com/bloom-app/bloom/internal/config"
)

type ServeCmd struct {
	Addr     string `help:"Listen address." default:"127.0.0.1:8780"`
	Upstream string `arg:"" help:"Upstream base URL to mirror, e.g. https://bloom.example.com"`
	Version  string `help:"Cache version; bumping it drops older caches on start." default:"v1"`
}

// Run serves the app shell offline-first: core assets are precached and
// served from cache, CDN assets are refreshed network-first, and the
// weather endpoint degrades to a stale copy or a default payload.
func (c *ServeCmd) Run(ctx *Context) error {
	upstream := strings.TrimSuffix(c.Upstream, "/")

	registry := cache.NewRegistry()
	primary := registry.Open("bloom-core-" + c.Version)
	runtime := registry.Open("bloom-runtime-" + c.Version)
	if deleted := registry.Activate(c.Version); len(deleted) > 0 {
		fmt.Printf("Dropped stale caches: %s\n", strings.Join(deleted, ", "))
	}

	fetcher := &cache.HTTPFetcher{
		Client: &http.Client{Timeout: config.WeatherTimeoutSec * time.Second},
	}
	handler := cache.NewHandler(cache.NewSelector(), primary, runtime, fetcher, nil)

	fmt.Printf("Precaching core assets from %s...\n", upstream)
	if err := handler.Precache(context.Background(), upstream); err != nil {
		fmt.Printf("⚠ Partial precache: %v\n", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		req := cache.Request{
			Method:     r.Method,
			URL:        upstream + r.URL.RequestURI(),
			Navigation: strings.Contains(r.Header.Get("Accept"), "text/html"),
		}

		resp, err := handler.Handle(r.Context(), req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if resp == nil {
			// Not intercepted; only GET traffic is proxied here.
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		for key, values := range resp.Header {
			for _, v := range values {
				w.Header().Add(key, v)
			}
		}
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	})

	fmt.Printf("Serving offline-first on http://%s\n", c.Addr)
	return http.ListenAndServe(c.Addr, mux)
}
