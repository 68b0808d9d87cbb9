package actions

import (
	"context"
	"fmt"
	"strconv"
)

// Playback sends one player command (play, pause, next, prev) to the
// selected device. One Playback value is registered per command name.
type Playback struct {
	name    string
	command string
	deps    *Deps
}

// NewPlayback constructs a playback action for the given registry name and
// wire command.
func NewPlayback(deps *Deps, name, command string) (*Playback, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Playback{name: name, command: command, deps: deps}, nil
}

func (a *Playback) Name() string { return a.name }

func (a *Playback) Run(ctx context.Context, args []string) error {
	serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
	if err != nil {
		return err
	}

	if d, convErr := typedDevice(rec); convErr == nil && !d.SupportsMusic() {
		a.deps.Out.Hint(fmt.Sprintf("%s does not advertise audio playback; the command may be ignored", displayName(rec, serial)))
	}

	if err := a.deps.Client.SendPlayerCommand(ctx, serial, deviceType, a.command); err != nil {
		return err
	}
	a.deps.Out.OK("%s sent to %s", a.name, displayName(rec, serial))
	return nil
}

// Volume sets the speaker volume of the selected device.
type Volume struct {
	deps *Deps
}

// NewVolume constructs the volume action.
func NewVolume(deps *Deps) (*Volume, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Volume{deps: deps}, nil
}

func (a *Volume) Name() string { return "volume" }

func (a *Volume) Run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: volume <0-100>")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("volume must be a number: %w", err)
	}

	serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
	if err != nil {
		return err
	}

	if err := a.deps.Client.SetVolume(ctx, serial, deviceType, level); err != nil {
		return err
	}
	a.deps.Out.OK("volume %d on %s", level, displayName(rec, serial))
	return nil
}
