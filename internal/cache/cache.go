package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/agrocampo/api/internal/logger"
	"github.com/agrocampo/api/internal/metrics"
)

// Defaults for the retry policy applied to every fetch.
const (
	DefaultMaxRetries   = 2
	DefaultRetryBackoff = 500 * time.Millisecond
)

// FetchFunc produces a fresh value for a key. It is only invoked on a
// miss or a stale entry, and concurrent callers for the same key share a
// single invocation.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Options control freshness and retry behaviour per resource type.
type Options struct {
	// TTL after which an entry is stale. Zero means entries never go
	// stale on a timer and are only refreshed via explicit invalidation.
	TTL time.Duration

	// MaxRetries bounds fetch retries before an error is surfaced.
	// Negative disables retries; zero uses DefaultMaxRetries.
	MaxRetries int

	// RetryBackoff is the initial backoff between retries, doubled on
	// each attempt. Zero uses DefaultRetryBackoff.
	RetryBackoff time.Duration
}

// Result is what a consumer observes for a key: the last known value,
// its freshness, and the fetch error if the value could not be obtained.
// Err can be set alongside a preserved Value: that means the most recent
// refresh exhausted its retries and the value shown is the last one that
// could be fetched.
type Result struct {
	Value     interface{}
	FetchedAt time.Time
	Stale     bool
	Err       error
}

// HasValue reports whether there has ever been a successful fetch.
func (r Result) HasValue() bool {
	return !r.FetchedAt.IsZero()
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
	hasValue  bool

	// lastErr records the outcome of the most recent refresh attempt.
	// Cleared by a successful fetch.
	lastErr error
}

type inflight struct {
	done  chan struct{}
	value interface{}
	err   error
}

// Store is the client-side query cache: values keyed by resource type and
// parameters, TTL-based staleness, background refresh on stale access,
// and de-duplication of concurrent identical fetches.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*inflight
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		entries:  make(map[string]*entry),
		inflight: make(map[string]*inflight),
	}
}

// Get returns the cached value for key, fetching it when missing or stale.
//
// Fresh hit: the cached value is returned without touching the network.
// Stale hit: the last value is returned immediately (Stale=true) and a
// background refresh is started. Miss: the caller waits for the shared
// in-flight fetch. A failed fetch after retries surfaces Err while
// preserving any previously fetched value.
func (s *Store) Get(ctx context.Context, key Key, opts Options, fetch FetchFunc) Result {
	k := key.String()

	s.mu.Lock()
	e, ok := s.entries[k]
	if ok && e.hasValue {
		age := time.Since(e.fetchedAt)
		if opts.TTL <= 0 || age < opts.TTL {
			s.mu.Unlock()
			metrics.CacheHits.WithLabelValues(key.Resource).Inc()
			return Result{Value: e.value, FetchedAt: e.fetchedAt, Err: e.lastErr}
		}

		// Stale: serve the old value and refresh in the background. A
		// failure recorded by an earlier refresh rides along so callers
		// can tell the value could not be brought up to date.
		res := Result{Value: e.value, FetchedAt: e.fetchedAt, Stale: true, Err: e.lastErr}
		s.startFetchLocked(k, key, opts, fetch, false)
		s.mu.Unlock()
		metrics.CacheStale.WithLabelValues(key.Resource).Inc()
		return res
	}

	// Miss: join or start the shared in-flight fetch.
	fl := s.startFetchLocked(k, key, opts, fetch, false)
	s.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(key.Resource).Inc()

	select {
	case <-fl.done:
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}

	if fl.err != nil {
		return Result{Err: fl.err}
	}
	return Result{Value: fl.value, FetchedAt: time.Now()}
}

// ForceRefresh discards any in-flight fetch for key and waits for a new
// one, so the result always reflects provider state from after the call.
// On failure the previously cached value is preserved and returned
// alongside the error.
func (s *Store) ForceRefresh(ctx context.Context, key Key, opts Options, fetch FetchFunc) Result {
	k := key.String()

	s.mu.Lock()
	fl := s.startFetchLocked(k, key, opts, fetch, true)
	s.mu.Unlock()

	select {
	case <-fl.done:
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}

	if fl.err != nil {
		s.mu.Lock()
		e, ok := s.entries[k]
		s.mu.Unlock()
		if ok && e.hasValue {
			return Result{Value: e.value, FetchedAt: e.fetchedAt, Stale: true, Err: fl.err}
		}
		return Result{Err: fl.err}
	}
	return Result{Value: fl.value, FetchedAt: time.Now()}
}

// startFetchLocked starts a fetch for key, joining an already in-flight
// one unless force is set. A forced fetch supersedes the current
// in-flight one and takes over its slot; the superseded result is
// discarded so a caller that explicitly refreshed never observes data
// fetched before it asked. Caller must hold s.mu.
func (s *Store) startFetchLocked(k string, key Key, opts Options, fetch FetchFunc, force bool) *inflight {
	if !force {
		if fl, ok := s.inflight[k]; ok {
			return fl
		}
	}

	fl := &inflight{done: make(chan struct{})}
	s.inflight[k] = fl

	go func() {
		// Detached from the requesting context: a consumer going away
		// must not cancel a refresh other consumers may be waiting on.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		value, err := fetchWithRetry(ctx, key, opts, fetch)

		s.mu.Lock()
		if s.inflight[k] == fl {
			delete(s.inflight, k)
			if err == nil {
				s.entries[k] = &entry{value: value, fetchedAt: time.Now(), hasValue: true}
			} else if e, ok := s.entries[k]; ok && e.hasValue {
				// Keep serving the old value but remember the failure
				// so readers see it on the next access.
				e.lastErr = err
			}
		}
		s.mu.Unlock()

		fl.value = value
		fl.err = err
		close(fl.done)
	}()

	return fl
}

func fetchWithRetry(ctx context.Context, key Key, opts Options, fetch FetchFunc) (interface{}, error) {
	retries := opts.MaxRetries
	if retries == 0 {
		retries = DefaultMaxRetries
	}
	if retries < 0 {
		retries = 0
	}
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}

	var value interface{}
	attempt := 0
	err := retry.Do(ctx, retry.WithMaxRetries(uint64(retries), retry.NewExponential(backoff)), func(ctx context.Context) error {
		attempt++
		var fetchErr error
		value, fetchErr = fetch(ctx)
		if fetchErr != nil {
			logger.FromContext(ctx).Warn("cache fetch attempt failed",
				"key", key.String(), "attempt", attempt, "error", fetchErr)
			return retry.RetryableError(fetchErr)
		}
		return nil
	})
	if err != nil {
		metrics.CacheFetchFailures.WithLabelValues(key.Resource).Inc()
		return nil, err
	}
	return value, nil
}

// Peek returns the cached value without triggering any fetch.
func (s *Store) Peek(key Key) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key.String()]
	if !ok || !e.hasValue {
		return Result{}, false
	}
	return Result{Value: e.value, FetchedAt: e.fetchedAt}, true
}

// Invalidate drops a single key. The next Get refetches.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key.String())
}

// InvalidateResource drops every key of a resource type. Mutating
// operations call this so list views never serve post-mutation stale data.
func (s *Store) InvalidateResource(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k == resource || strings.HasPrefix(k, resource+":") {
			delete(s.entries, k)
		}
	}
}
