package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/echoctl/echoctl/internal/logging"
)

// Loader resolves command names into implementations at most once per
// process lifetime per name, recording how long each construction took.
//
// Construct one Loader per entry point and pass it through call sites; there
// is no package-level instance. The Loader is meant for single-threaded use.
// Concurrent Resolve calls for the same uncached name may race and construct
// twice; the mutex only keeps the cache itself consistent (last writer
// wins), it is deliberately not held across factory invocation.
type Loader struct {
	registry *Registry
	log      zerolog.Logger

	mu     sync.Mutex
	cache  map[string]Command
	timing map[string]int64 // construction duration per name, milliseconds
}

// NewLoader creates a loader over registry.
func NewLoader(registry *Registry) *Loader {
	return &Loader{
		registry: registry,
		log:      logging.ForComponent("dispatch"),
		cache:    make(map[string]Command),
		timing:   make(map[string]int64),
	}
}

// Resolve returns the implementation for name, constructing it on first use.
//
// A cache hit returns the previously constructed implementation without
// re-running the factory or touching the recorded timing. An unknown name
// fails with NotFoundError; a failing or missing factory fails with
// LoadError or SymbolNotFoundError. On any failure the cache is left
// untouched.
func (l *Loader) Resolve(name string) (Command, error) {
	l.mu.Lock()
	cached, ok := l.cache[name]
	l.mu.Unlock()
	if ok {
		l.log.Debug().Str("command", name).Msg("cache hit")
		return cached, nil
	}

	desc, ok := l.registry.Lookup(name)
	if !ok {
		err := &NotFoundError{Name: name}
		l.log.Error().Str("command", name).Msg("unknown command")
		return nil, err
	}
	if desc.New == nil {
		err := &SymbolNotFoundError{Name: name, Locator: desc.Locator}
		l.log.Error().Str("command", name).Str("locator", desc.Locator).Msg("no factory registered")
		return nil, err
	}

	start := time.Now()
	cmd, err := desc.New()
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		l.log.Error().Err(err).Str("command", name).Str("locator", desc.Locator).Msg("command failed to load")
		return nil, &LoadError{Name: name, Locator: desc.Locator, Err: err}
	}
	if cmd == nil {
		err := &SymbolNotFoundError{Name: name, Locator: desc.Locator}
		l.log.Error().Str("command", name).Str("locator", desc.Locator).Msg("factory returned no implementation")
		return nil, err
	}

	l.mu.Lock()
	l.cache[name] = cmd
	l.timing[name] = elapsed
	l.mu.Unlock()

	l.log.Debug().Str("command", name).Int64("duration_ms", elapsed).Msg("command loaded")
	return cmd, nil
}

// Preload resolves each name in order, best effort: a failure is logged as a
// warning and does not stop the remaining names, and never propagates.
func (l *Loader) Preload(names []string) {
	for _, name := range names {
		if _, err := l.Resolve(name); err != nil {
			l.log.Warn().Err(err).Str("command", name).Msg("preload failed")
		}
	}
}

// LoadedNames returns the names currently cached, sorted.
func (l *Loader) LoadedNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.cache))
	for name := range l.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableNames returns all registry names regardless of cache state.
func (l *Loader) AvailableNames() []string {
	return l.registry.Names()
}

// Stats returns a copy of the recorded construction durations in
// milliseconds, keyed by command name. Cache hits never update timing.
func (l *Loader) Stats() map[string]int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make(map[string]int64, len(l.timing))
	for name, ms := range l.timing {
		stats[name] = ms
	}
	return stats
}

// Reset clears the cache and timing records. Subsequent Resolve calls behave
// as first-time loads.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache = make(map[string]Command)
	l.timing = make(map[string]int64)
}
