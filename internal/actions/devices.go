package actions

import (
	"context"
	"fmt"

	"github.com/echoctl/echoctl/internal/alexa"
	"github.com/echoctl/echoctl/internal/device"
)

// Devices lists all Alexa-connected devices of the account.
type Devices struct {
	deps *Deps
}

// NewDevices constructs the devices action.
func NewDevices(deps *Deps) (*Devices, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Devices{deps: deps}, nil
}

func (a *Devices) Name() string { return "devices" }

func (a *Devices) Run(ctx context.Context, args []string) error {
	var (
		records []device.Record
		err     error
	)
	if len(args) > 0 && args[0] == "refresh" {
		records, err = a.deps.RefreshDevices(ctx)
	} else {
		records, err = a.deps.DeviceRecords(ctx)
	}
	if err != nil {
		return err
	}

	devices, err := alexa.TypedDevices(records)
	if err != nil {
		return err
	}

	a.deps.Out.Result(devices, func() {
		rows := make([][]string, 0, len(devices))
		for _, d := range devices {
			state := "offline"
			if d.Online {
				state = "online"
			}
			rows = append(rows, []string{d.AccountName, d.SerialNumber, d.DeviceFamily, state})
		}
		a.deps.Out.Table([]string{"NAME", "SERIAL", "FAMILY", "STATE"}, rows)
		a.deps.Out.Hint(fmt.Sprintf("%d device(s)", len(devices)))
	})
	return nil
}
