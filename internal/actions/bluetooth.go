package actions

import (
	"context"
	"fmt"

	"github.com/echoctl/echoctl/internal/device"
)

// Bluetooth lists, connects and disconnects Bluetooth peers.
type Bluetooth struct {
	deps *Deps
}

// NewBluetooth constructs the bluetooth action.
func NewBluetooth(deps *Deps) (*Bluetooth, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Bluetooth{deps: deps}, nil
}

func (a *Bluetooth) Name() string { return "bluetooth" }

func (a *Bluetooth) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.list(ctx)
	}

	switch args[0] {
	case "connect":
		if len(args) != 2 {
			return fmt.Errorf("usage: bluetooth connect <address>")
		}
		serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
		if err != nil {
			return err
		}
		if err := a.deps.Client.ConnectBluetooth(ctx, serial, deviceType, args[1]); err != nil {
			return err
		}
		a.deps.Out.OK("%s connecting to %s", displayName(rec, serial), args[1])
		return nil
	case "disconnect":
		serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
		if err != nil {
			return err
		}
		if err := a.deps.Client.DisconnectBluetooth(ctx, serial, deviceType); err != nil {
			return err
		}
		a.deps.Out.OK("%s disconnected", displayName(rec, serial))
		return nil
	default:
		return fmt.Errorf("unknown bluetooth subcommand %q", args[0])
	}
}

func (a *Bluetooth) list(ctx context.Context) error {
	states, err := a.deps.Client.GetBluetooth(ctx)
	if err != nil {
		return err
	}
	records, err := a.deps.DeviceRecords(ctx)
	if err != nil {
		return err
	}

	a.deps.Out.Result(states, func() {
		var rows [][]string
		for _, s := range states {
			name := device.FindNameByID(records, s.DeviceSerialNumber, nil, nil)
			for _, peer := range s.PairedDeviceList {
				state := "paired"
				if peer.Connected {
					state = "connected"
				}
				rows = append(rows, []string{name, peer.FriendlyName, peer.Address, state})
			}
		}
		a.deps.Out.Table([]string{"DEVICE", "PEER", "ADDRESS", "STATE"}, rows)
	})
	return nil
}
