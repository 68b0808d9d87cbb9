package actions

import (
	"context"
	"fmt"

	"github.com/echoctl/echoctl/internal/device"
)

// DND shows or switches do-not-disturb state.
type DND struct {
	deps *Deps
}

// NewDND constructs the dnd action.
func NewDND(deps *Deps) (*DND, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &DND{deps: deps}, nil
}

func (a *DND) Name() string { return "dnd" }

func (a *DND) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.list(ctx)
	}

	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("usage: dnd [on|off]")
	}

	serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
	if err != nil {
		return err
	}
	if err := a.deps.Client.SetDoNotDisturb(ctx, serial, deviceType, enabled); err != nil {
		return err
	}
	a.deps.Out.OK("do-not-disturb %s on %s", args[0], displayName(rec, serial))
	return nil
}

func (a *DND) list(ctx context.Context) error {
	states, err := a.deps.Client.GetDoNotDisturb(ctx)
	if err != nil {
		return err
	}
	records, err := a.deps.DeviceRecords(ctx)
	if err != nil {
		return err
	}

	a.deps.Out.Result(states, func() {
		rows := make([][]string, 0, len(states))
		for _, s := range states {
			state := "off"
			if s.Enabled {
				state = "on"
			}
			name := device.FindNameByID(records, s.DeviceSerialNumber, nil, nil)
			rows = append(rows, []string{name, s.DeviceSerialNumber, state})
		}
		a.deps.Out.Table([]string{"DEVICE", "SERIAL", "DND"}, rows)
	})
	return nil
}
