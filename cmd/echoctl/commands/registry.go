package commands

import (
	"github.com/echoctl/echoctl/internal/actions"
	"github.com/echoctl/echoctl/internal/alexa"
	"github.com/echoctl/echoctl/internal/dispatch"
	"github.com/echoctl/echoctl/pkg/types"
)

// newRegistry wires every action factory into the dispatch registry. The
// locator names the constructor for diagnostics; construction itself only
// happens when the loader resolves a name.
func newRegistry(deps *actions.Deps) *dispatch.Registry {
	playback := func(name, command string) dispatch.Descriptor {
		return dispatch.Descriptor{
			Locator: "actions.Playback",
			New: func() (dispatch.Command, error) {
				return actions.NewPlayback(deps, name, command)
			},
		}
	}
	notifications := func(name, kind string) dispatch.Descriptor {
		return dispatch.Descriptor{
			Locator: "actions.Notifications",
			New: func() (dispatch.Command, error) {
				return actions.NewNotifications(deps, name, kind)
			},
		}
	}

	return dispatch.NewRegistry(map[string]dispatch.Descriptor{
		"devices": {
			Locator: "actions.Devices",
			New:     func() (dispatch.Command, error) { return actions.NewDevices(deps) },
		},
		"play":  playback("play", alexa.CommandPlay),
		"pause": playback("pause", alexa.CommandPause),
		"next":  playback("next", alexa.CommandNext),
		"prev":  playback("prev", alexa.CommandPrevious),
		"volume": {
			Locator: "actions.Volume",
			New:     func() (dispatch.Command, error) { return actions.NewVolume(deps) },
		},
		"alarms":    notifications("alarms", types.NotificationAlarm),
		"timers":    notifications("timers", types.NotificationTimer),
		"reminders": notifications("reminders", types.NotificationReminder),
		"dnd": {
			Locator: "actions.DND",
			New:     func() (dispatch.Command, error) { return actions.NewDND(deps) },
		},
		"groups": {
			Locator: "actions.Groups",
			New:     func() (dispatch.Command, error) { return actions.NewGroups(deps) },
		},
		"bluetooth": {
			Locator: "actions.Bluetooth",
			New:     func() (dispatch.Command, error) { return actions.NewBluetooth(deps) },
		},
		"calendar": {
			Locator: "actions.Calendar",
			New:     func() (dispatch.Command, error) { return actions.NewCalendar(deps) },
		},
		"speak": {
			Locator: "actions.Speak",
			New:     func() (dispatch.Command, error) { return actions.NewSpeak(deps) },
		},
	})
}
