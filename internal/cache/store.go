package cache

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Response is a cached or fetched HTTP response body plus the instant it
// was fetched, used for the weather freshness window.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	FetchedAt  time.Time
}

// Clone returns an independent copy so callers can't mutate cached bytes.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	clone := &Response{
		StatusCode: r.StatusCode,
		Header:     r.Header.Clone(),
		Body:       append([]byte(nil), r.Body...),
		FetchedAt:  r.FetchedAt,
	}
	return clone
}

// Store is a named response cache. Writes always overwrite; there is no
// merge and no eviction beyond Clear.
type Store interface {
	Name() string
	Match(url string) (*Response, bool)
	Put(url string, resp *Response)
	Clear()
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	name    string
	entries map[string]*Response
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:    name,
		entries: make(map[string]*Response),
	}
}

func (s *MemoryStore) Name() string { return s.name }

func (s *MemoryStore) Match(url string) (*Response, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp, ok := s.entries[url]
	if !ok {
		return nil, false
	}
	return resp.Clone(), true
}

func (s *MemoryStore) Put(url string, resp *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[url] = resp.Clone()
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Response)
}

// Registry tracks versioned cache stores so activation can drop caches
// left over from prior versions, mirroring the service-worker lifecycle.
type Registry struct {
	mu     sync.Mutex
	stores map[string]Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]Store)}
}

// Open returns the store with the given versioned name, creating it if
// needed.
func (r *Registry) Open(name string) Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[name]; ok {
		return s
	}
	s := NewMemoryStore(name)
	r.stores[name] = s
	return s
}

// Names returns the registered cache names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate deletes every cache whose name does not carry the current
// version suffix.
func (r *Registry) Activate(version string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []string
	for name := range r.stores {
		if !strings.HasSuffix(name, "-"+version) {
			delete(r.stores, name)
			deleted = append(deleted, name)
		}
	}
	sort.Strings(deleted)
	return deleted
}
