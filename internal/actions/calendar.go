package actions

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const defaultCalendarDays = 7

// Calendar lists upcoming events from linked calendars.
type Calendar struct {
	deps *Deps
}

// NewCalendar constructs the calendar action.
func NewCalendar(deps *Deps) (*Calendar, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Calendar{deps: deps}, nil
}

func (a *Calendar) Name() string { return "calendar" }

func (a *Calendar) Run(ctx context.Context, args []string) error {
	days := defaultCalendarDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("usage: calendar [days]")
		}
		days = n
	}

	from := time.Now()
	to := from.AddDate(0, 0, days)
	events, err := a.deps.Client.GetCalendarEvents(ctx, from, to)
	if err != nil {
		return err
	}

	a.deps.Out.Result(events, func() {
		rows := make([][]string, 0, len(events))
		for _, e := range events {
			when := time.UnixMilli(e.StartTime).Format("Mon 2006-01-02 15:04")
			if e.AllDayEvent {
				when = time.UnixMilli(e.StartTime).Format("Mon 2006-01-02") + " (all day)"
			}
			rows = append(rows, []string{when, e.Summary})
		}
		a.deps.Out.Table([]string{"WHEN", "EVENT"}, rows)
		a.deps.Out.Hint(fmt.Sprintf("%d event(s) in the next %d day(s)", len(events), days))
	})
	return nil
}
