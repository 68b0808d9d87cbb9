package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	name string
}

func (f *fakeCommand) Name() string                                 { return f.name }
func (f *fakeCommand) Run(ctx context.Context, args []string) error { return nil }

// countingFactory returns a factory that counts invocations.
func countingFactory(name string, calls *int) Factory {
	return func() (Command, error) {
		*calls++
		return &fakeCommand{name: name}, nil
	}
}

func testRegistry(calls map[string]*int) *Registry {
	entries := map[string]Descriptor{}
	for _, name := range []string{"play", "pause", "devices"} {
		n := new(int)
		calls[name] = n
		entries[name] = Descriptor{Locator: "actions." + name, New: countingFactory(name, n)}
	}
	entries["broken"] = Descriptor{
		Locator: "actions.broken",
		New: func() (Command, error) {
			return nil, errors.New("bad wiring")
		},
	}
	entries["hollow"] = Descriptor{Locator: "actions.hollow"}
	return NewRegistry(entries)
}

func TestResolveSuccess(t *testing.T) {
	calls := map[string]*int{}
	loader := NewLoader(testRegistry(calls))

	cmd, err := loader.Resolve("play")
	require.NoError(t, err)
	assert.Equal(t, "play", cmd.Name())
	assert.Equal(t, 1, *calls["play"])
	assert.Equal(t, []string{"play"}, loader.LoadedNames())

	_, ok := loader.Stats()["play"]
	assert.True(t, ok, "successful load must record a duration")
}

func TestResolveCacheHit(t *testing.T) {
	calls := map[string]*int{}
	loader := NewLoader(testRegistry(calls))

	first, err := loader.Resolve("play")
	require.NoError(t, err)
	statsAfterFirst := loader.Stats()

	second, err := loader.Resolve("play")
	require.NoError(t, err)

	assert.Same(t, first, second, "cache hit must return the identical implementation")
	assert.Equal(t, 1, *calls["play"], "factory must run at most once")
	assert.Equal(t, statsAfterFirst, loader.Stats(), "cache hits must not update timing")
}

func TestResolveNotFound(t *testing.T) {
	loader := NewLoader(testRegistry(map[string]*int{}))

	_, err := loader.Resolve("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Name)

	assert.Empty(t, loader.LoadedNames(), "failed resolve must leave the cache untouched")
	assert.Empty(t, loader.Stats())
}

func TestResolveLoadError(t *testing.T) {
	loader := NewLoader(testRegistry(map[string]*int{}))

	_, err := loader.Resolve("broken")
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "broken", le.Name)
	assert.Equal(t, "actions.broken", le.Locator)
	assert.EqualError(t, errors.Unwrap(err), "bad wiring")

	assert.Empty(t, loader.LoadedNames())
	assert.Empty(t, loader.Stats())
}

func TestResolveSymbolNotFound(t *testing.T) {
	loader := NewLoader(testRegistry(map[string]*int{}))

	_, err := loader.Resolve("hollow")
	require.Error(t, err)

	var snf *SymbolNotFoundError
	require.ErrorAs(t, err, &snf)
	assert.Equal(t, "hollow", snf.Name)

	assert.Empty(t, loader.LoadedNames())
}

func TestPreloadBestEffort(t *testing.T) {
	calls := map[string]*int{}
	loader := NewLoader(testRegistry(calls))

	// The failing names in the middle must not stop the rest.
	loader.Preload([]string{"play", "broken", "nope", "pause"})

	assert.Equal(t, []string{"pause", "play"}, loader.LoadedNames())
	assert.Equal(t, 1, *calls["play"])
	assert.Equal(t, 1, *calls["pause"])
}

func TestAvailableNames(t *testing.T) {
	loader := NewLoader(testRegistry(map[string]*int{}))

	assert.Equal(t, []string{"broken", "devices", "hollow", "pause", "play"}, loader.AvailableNames())
	// Available is independent of cache state.
	assert.Empty(t, loader.LoadedNames())
}

func TestStatsReturnsCopy(t *testing.T) {
	loader := NewLoader(testRegistry(map[string]*int{}))

	_, err := loader.Resolve("play")
	require.NoError(t, err)

	stats := loader.Stats()
	stats["play"] = -1

	fresh := loader.Stats()
	assert.NotEqual(t, int64(-1), fresh["play"], "Stats must return a copy")
}

func TestReset(t *testing.T) {
	calls := map[string]*int{}
	loader := NewLoader(testRegistry(calls))

	_, err := loader.Resolve("play")
	require.NoError(t, err)

	loader.Reset()
	assert.Empty(t, loader.LoadedNames())
	assert.Empty(t, loader.Stats())

	// Next resolve behaves as a fresh load: factory runs and timing records.
	_, err = loader.Resolve("play")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls["play"])
	assert.Len(t, loader.Stats(), 1)
}

func TestConcurrentResolveKeepsCacheConsistent(t *testing.T) {
	var mu sync.Mutex
	count := 0
	registry := NewRegistry(map[string]Descriptor{
		"play": {
			Locator: "actions.play",
			New: func() (Command, error) {
				mu.Lock()
				count++
				mu.Unlock()
				return &fakeCommand{name: "play"}, nil
			},
		},
	})
	loader := NewLoader(registry)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := loader.Resolve("play")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Double-loading is allowed, a corrupted cache is not.
	assert.Equal(t, []string{"play"}, loader.LoadedNames())
	cmd, err := loader.Resolve("play")
	require.NoError(t, err)
	assert.Equal(t, "play", cmd.Name())
}

func TestRegistryImmutable(t *testing.T) {
	entries := map[string]Descriptor{
		"play": {Locator: "actions.play", New: countingFactory("play", new(int))},
	}
	registry := NewRegistry(entries)

	// Mutating the source map after construction must not affect the registry.
	entries["extra"] = Descriptor{Locator: "actions.extra"}
	delete(entries, "play")

	_, ok := registry.Lookup("play")
	assert.True(t, ok)
	_, ok = registry.Lookup("extra")
	assert.False(t, ok)
	assert.Equal(t, 1, registry.Len())
}
