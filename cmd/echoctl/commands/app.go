package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/echoctl/echoctl/internal/actions"
	"github.com/echoctl/echoctl/internal/alexa"
	"github.com/echoctl/echoctl/internal/cache"
	"github.com/echoctl/echoctl/internal/config"
	"github.com/echoctl/echoctl/internal/dispatch"
	"github.com/echoctl/echoctl/internal/logging"
	"github.com/echoctl/echoctl/internal/render"
	"github.com/echoctl/echoctl/pkg/types"
)

// app holds the wired collaborators of one CLI invocation. It is built
// lazily on first use so flag parsing has already happened.
type app struct {
	cfg    *types.Config
	deps   *actions.Deps
	loader *dispatch.Loader
	out    *render.Renderer
}

var (
	appOnce sync.Once
	appVal  *app
	appErr  error
)

func getApp() (*app, error) {
	appOnce.Do(func() {
		appVal, appErr = newApp()
	})
	return appVal, appErr
}

func newApp() (*app, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}
	initLogging(cfg.LogLevel)

	if err := config.GetPaths().EnsurePaths(); err != nil {
		return nil, err
	}

	out := render.New(jsonFlag, noColorFlag || cfg.NoColor)
	deps := &actions.Deps{
		Config: cfg,
		Client: alexa.NewClient(cfg),
		Cache:  cache.New(config.GetPaths().DeviceCachePath()),
		Out:    out,
		Device: deviceFlag,
	}

	loader := dispatch.NewLoader(newRegistry(deps))
	if len(cfg.Preload) > 0 {
		loader.Preload(cfg.Preload)
	}

	return &app{cfg: cfg, deps: deps, loader: loader, out: out}, nil
}

// runAction resolves name through the dispatcher and runs it.
func runAction(cmd *cobra.Command, name string, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	action, err := a.loader.Resolve(name)
	if err != nil {
		return a.describeResolveError(name, err)
	}
	return action.Run(cmd.Context(), args)
}

// describeResolveError turns dispatcher errors into actionable messages.
func (a *app) describeResolveError(name string, err error) error {
	var notFound *dispatch.NotFoundError
	if errors.As(err, &notFound) {
		names := a.loader.AvailableNames()
		msg := fmt.Sprintf("unknown command %q", name)
		if hints := suggestNames(names, name); len(hints) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
		} else {
			msg += fmt.Sprintf(" (available: %s)", strings.Join(names, ", "))
		}
		return errors.New(msg)
	}

	var loadErr *dispatch.LoadError
	if errors.As(err, &loadErr) {
		// The cause goes to the debug log only; the terminal gets a short
		// actionable line.
		logging.Debug().Str("locator", loadErr.Locator).Err(loadErr.Err).Msg("command failed to load")
		return fmt.Errorf("command %q failed to load (run with --log-level debug for details)", name)
	}
	return err
}

// suggestNames returns known command names within a small edit distance of
// input, closest first.
func suggestNames(names []string, input string) []string {
	type scored struct {
		name string
		dist int
	}
	var near []scored
	for _, n := range names {
		d := levenshtein.ComputeDistance(strings.ToLower(input), n)
		if d <= 1+len(input)/3 {
			near = append(near, scored{name: n, dist: d})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].name < near[j].name
	})
	out := make([]string, 0, len(near))
	for _, s := range near {
		out = append(out, s.name)
	}
	return out
}

// actionCommands returns one thin cobra command per dispatchable action.
// Each just forwards to the loader, which constructs the action on first
// use.
func actionCommands() []*cobra.Command {
	specs := []struct {
		use   string
		short string
	}{
		{"devices [refresh]", "List Alexa devices on the account"},
		{"play", "Resume playback on the selected device"},
		{"pause", "Pause playback on the selected device"},
		{"next", "Skip to the next track"},
		{"prev", "Skip to the previous track"},
		{"volume <0-100>", "Set the speaker volume"},
		{"alarms [dismiss <id>]", "List or dismiss alarms"},
		{"timers [dismiss <id>]", "List or dismiss timers"},
		{"reminders [dismiss <id>|add <time> <label...>]", "List, dismiss or create reminders"},
		{"dnd [on|off]", "Show or set Do Not Disturb"},
		{"groups", "List multiroom audio groups"},
		{"bluetooth [connect <address>|disconnect]", "Manage Bluetooth peers"},
		{"calendar [days]", "List upcoming calendar events"},
		{"speak <text...>", "Make the selected device speak"},
	}

	cmds := make([]*cobra.Command, 0, len(specs))
	for _, s := range specs {
		name := strings.Fields(s.use)[0]
		cmds = append(cmds, &cobra.Command{
			Use:   s.use,
			Short: s.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAction(cmd, name, args)
			},
		})
	}
	return cmds
}
