package actions

import (
	"context"
	"fmt"
	"strings"
)

// Speak makes the selected device speak the given text.
type Speak struct {
	deps *Deps
}

// NewSpeak constructs the speak action.
func NewSpeak(deps *Deps) (*Speak, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Speak{deps: deps}, nil
}

func (a *Speak) Name() string { return "speak" }

func (a *Speak) Run(ctx context.Context, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("usage: speak <text...>")
	}

	serial, deviceType, rec, err := a.deps.ResolveDevice(ctx)
	if err != nil {
		return err
	}

	customerID, _ := rec["deviceOwnerCustomerId"].(string)
	if err := a.deps.Client.Speak(ctx, serial, deviceType, customerID, text); err != nil {
		return err
	}
	a.deps.Out.OK("%s speaking", displayName(rec, serial))
	return nil
}
