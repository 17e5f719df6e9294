package query

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/calendar"
)

// ErrUnknownAction is returned for an action name outside Actions.
var ErrUnknownAction = errors.New("unknown action")

// Action is one of the queries the CLI can run.
type Action int

const (
	IsHoliday Action = iota
	IsHalfDay
	TPlusN
)

var actionNames = map[Action]string{
	IsHoliday: "is_holiday",
	IsHalfDay: "is_half_day",
	TPlusN:    "t_plus_n",
}

// Actions lists the actions in their canonical order.
var Actions = []Action{IsHoliday, IsHalfDay, TPlusN}

// ActionNames returns the CLI spelling of every action.
func ActionNames() []string {
	names := make([]string, 0, len(Actions))
	for _, a := range Actions {
		names = append(names, a.String())
	}
	return names
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction maps a CLI action name to an Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAction, "%q (valid: %s)", s, strings.Join(ActionNames(), ", "))
}

// DefaultVariant is the variant used when the caller picks none: settlement
// days for stepping, trading days for everything else.
func (a Action) DefaultVariant() calendar.Variant {
	if a == TPlusN {
		return calendar.Settlement
	}
	return calendar.Trading
}
