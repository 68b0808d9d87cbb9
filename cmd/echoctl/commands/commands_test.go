package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoctl/echoctl/internal/actions"
	"github.com/echoctl/echoctl/pkg/types"
)

var dispatchNames = []string{
	"devices", "play", "pause", "next", "prev", "volume",
	"alarms", "timers", "reminders", "dnd", "groups",
	"bluetooth", "calendar", "speak",
}

func TestRegistryCoversAllCommands(t *testing.T) {
	deps := &actions.Deps{Config: &types.Config{Cookie: "session=x"}}
	registry := newRegistry(deps)

	assert.ElementsMatch(t, dispatchNames, registry.Names())
	for _, name := range dispatchNames {
		desc, ok := registry.Lookup(name)
		require.True(t, ok, name)
		assert.NotNil(t, desc.New, name)
		assert.NotEmpty(t, desc.Locator, name)
	}
}

func TestRegistryIsLazy(t *testing.T) {
	// Lookup must not construct anything; a nil client would panic if a
	// factory ran here.
	deps := &actions.Deps{Config: &types.Config{Cookie: "session=x"}}
	registry := newRegistry(deps)

	for _, name := range registry.Names() {
		_, ok := registry.Lookup(name)
		assert.True(t, ok)
	}
}

func TestCobraTreeMatchesRegistry(t *testing.T) {
	found := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range dispatchNames {
		assert.True(t, found[name], "missing cobra command %s", name)
	}
}

func TestSuggestNames(t *testing.T) {
	names := []string{"play", "pause", "devices"}

	assert.Equal(t, []string{"pause"}, suggestNames(names, "pasue"))
	assert.Equal(t, []string{"play"}, suggestNames(names, "PLAY"))
	assert.Empty(t, suggestNames(names, "bluetooth"))
}
