package query

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/utils/date"
)

// ErrInvalidStep is returned for a step argument that is not an integer.
var ErrInvalidStep = errors.New("invalid step, expected an integer")

// Request is a fully resolved query: the variant is always explicit here.
type Request struct {
	Date    date.Date
	Action  Action
	Variant calendar.Variant
	Steps   []int
}

// ParseSteps converts the STEP arguments.
func ParseSteps(args []string) ([]int, error) {
	steps := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidStep, "%q", a)
		}
		steps = append(steps, n)
	}
	return steps, nil
}

// ParseRequest builds a Request from its string form. An empty dateStr means
// today, an empty actionStr means is_holiday and an empty variantStr means
// the action's default variant.
func ParseRequest(dateStr, actionStr, variantStr string, stepArgs []string) (Request, error) {
	req := Request{Date: date.Today(), Action: IsHoliday}

	var err error
	if strings.TrimSpace(dateStr) != "" {
		if req.Date, err = date.ParseBasic(dateStr); err != nil {
			return Request{}, err
		}
	}
	if strings.TrimSpace(actionStr) != "" {
		if req.Action, err = ParseAction(actionStr); err != nil {
			return Request{}, err
		}
	}
	req.Variant = req.Action.DefaultVariant()
	if strings.TrimSpace(variantStr) != "" {
		if req.Variant, err = calendar.ParseVariant(variantStr); err != nil {
			return Request{}, err
		}
	}
	if req.Steps, err = ParseSteps(stepArgs); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r Request) stepStrings() []string {
	out := make([]string, 0, len(r.Steps))
	for _, n := range r.Steps {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
