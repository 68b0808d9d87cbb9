package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echoctl/echoctl/internal/device"
	"github.com/echoctl/echoctl/pkg/types"
)

// Notifications lists and dismisses alarms, timers or reminders, and
// creates reminders. One value is registered per notification kind.
type Notifications struct {
	name string
	kind string
	deps *Deps
}

// NewNotifications constructs a notifications action for one kind (see the
// types.Notification* constants).
func NewNotifications(deps *Deps, name, kind string) (*Notifications, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Notifications{name: name, kind: kind, deps: deps}, nil
}

func (a *Notifications) Name() string { return a.name }

func (a *Notifications) Run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "dismiss":
			if len(args) != 2 {
				return fmt.Errorf("usage: %s dismiss <id>", a.name)
			}
			return a.dismiss(ctx, args[1])
		case "add":
			if a.kind != types.NotificationReminder {
				return fmt.Errorf("%s does not support add", a.name)
			}
			return a.addReminder(ctx, args[1:])
		default:
			return fmt.Errorf("unknown %s subcommand %q", a.name, args[0])
		}
	}
	return a.list(ctx)
}

func (a *Notifications) list(ctx context.Context) error {
	all, err := a.deps.Client.GetNotifications(ctx)
	if err != nil {
		return err
	}

	records, err := a.deps.DeviceRecords(ctx)
	if err != nil {
		return err
	}

	var matching []types.Notification
	for _, n := range all {
		if n.Type == a.kind {
			matching = append(matching, n)
		}
	}

	a.deps.Out.Result(matching, func() {
		rows := make([][]string, 0, len(matching))
		for _, n := range matching {
			deviceName := device.FindNameByID(records, n.DeviceSerialNumber, nil, nil)
			rows = append(rows, []string{n.ID, deviceName, n.Status, describeWhen(n)})
		}
		a.deps.Out.Table([]string{"ID", "DEVICE", "STATUS", "WHEN"}, rows)
		a.deps.Out.Hint(fmt.Sprintf("%d %s(s)", len(matching), strings.ToLower(a.kind)))
	})
	return nil
}

func (a *Notifications) dismiss(ctx context.Context, id string) error {
	if err := a.deps.Client.DismissNotification(ctx, id); err != nil {
		return err
	}
	a.deps.Out.OK("%s %s dismissed", strings.ToLower(a.kind), id)
	return nil
}

func (a *Notifications) addReminder(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s add <RFC3339-time> <label...>", a.name)
	}
	when, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		return fmt.Errorf("invalid time %q, want RFC3339: %w", args[0], err)
	}
	label := strings.Join(args[1:], " ")

	serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
	if err != nil {
		return err
	}

	req := types.ReminderRequest{
		DeviceSerialNumber: serial,
		DeviceType:         deviceType,
		Label:              label,
		TriggerTimeMillis:  when.UnixMilli(),
		TimeZone:           when.Location().String(),
	}
	if err := a.deps.Client.CreateReminder(ctx, req); err != nil {
		return err
	}
	a.deps.Out.OK("reminder %q set for %s on %s", label, when.Format(time.RFC1123), displayName(rec, serial))
	return nil
}

// describeWhen renders the trigger moment of a notification: clock time for
// alarms and reminders, remaining duration for timers.
func describeWhen(n types.Notification) string {
	if n.Type == types.NotificationTimer {
		remaining := time.Duration(n.RemainingTimeMs) * time.Millisecond
		return remaining.Round(time.Second).String()
	}
	if n.OriginalDate != "" || n.OriginalTime != "" {
		return strings.TrimSpace(n.OriginalDate + " " + n.OriginalTime)
	}
	if n.TriggerTimeMillis > 0 {
		return time.UnixMilli(n.TriggerTimeMillis).Format("2006-01-02 15:04")
	}
	return ""
}
