package actions

import (
	"context"
	"fmt"
	"strconv"

	"github.com/echoctl/echoctl/internal/alexa"
	"github.com/echoctl/echoctl/internal/device"
)

// Groups lists multiroom (whole-home-audio) groups.
type Groups struct {
	deps *Deps
}

// NewGroups constructs the groups action.
func NewGroups(deps *Deps) (*Groups, error) {
	if err := deps.RequireAuth(); err != nil {
		return nil, err
	}
	return &Groups{deps: deps}, nil
}

func (a *Groups) Name() string { return "groups" }

func (a *Groups) Run(ctx context.Context, args []string) error {
	records, err := a.deps.Client.GetMultiroomGroups(ctx)
	if err != nil {
		return err
	}

	groups, err := alexa.TypedGroups(records)
	if err != nil {
		return err
	}
	memberCount := make(map[string]int, len(groups))
	for _, g := range groups {
		memberCount[g.ID] = len(g.MemberSerials)
	}

	pairs := device.ExtractMapping(records, "id", "name")
	a.deps.Out.Result(groups, func() {
		rows := make([][]string, 0, len(pairs))
		for _, p := range pairs {
			rows = append(rows, []string{p.Name, p.ID, strconv.Itoa(memberCount[p.ID])})
		}
		a.deps.Out.Table([]string{"GROUP", "ID", "MEMBERS"}, rows)
		a.deps.Out.Hint(fmt.Sprintf("%d group(s)", len(pairs)))
	})
	return nil
}
