package query

import (
	"time"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/metrics"
	"github.com/prerak-proof/holiday-calendar/utils/date"
	"github.com/prerak-proof/holiday-calendar/utils/log"
)

// Runner answers Requests. It holds no calendar: every query builds its own,
// so one Runner can be shared by concurrent callers.
type Runner struct {
	Policy calendar.WindowPolicy
	// QueryMargin is the half-width of the window for boolean queries.
	QueryMargin int
	Options     []calendar.Option
}

func NewRunner(policy calendar.WindowPolicy, queryMargin int, opts ...calendar.Option) *Runner {
	return &Runner{Policy: policy, QueryMargin: queryMargin, Options: opts}
}

type handler func(r *Runner, req Request) (*Result, error)

var handlers = map[Action]handler{
	IsHoliday: (*Runner).isHoliday,
	IsHalfDay: (*Runner).isHalfDay,
	TPlusN:    (*Runner).tPlusN,
}

// Run dispatches req to its action handler.
func (r *Runner) Run(req Request) (*Result, error) {
	h, ok := handlers[req.Action]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAction, "%d", int(req.Action))
	}

	start := time.Now()
	res, err := h(r, req)
	if err != nil {
		metrics.QueryErrorsTotal.WithLabelValues(req.Action.String(), reason(err)).Inc()
		return nil, errors.Wrapf(err, "%s for %s", req.Action, req.Date.Basic())
	}
	metrics.QueriesTotal.WithLabelValues(req.Action.String(), req.Variant.String()).Inc()
	metrics.QueryDuration.WithLabelValues(req.Action.String()).Observe(time.Since(start).Seconds())
	return res, nil
}

func reason(err error) string {
	switch errors.Cause(err) {
	case calendar.ErrOutOfWindow:
		return metrics.ReasonOutOfWindow
	case date.ErrInvalidFormat:
		return metrics.ReasonInvalidDate
	case calendar.ErrStepOutOfRange, ErrInvalidStep:
		return metrics.ReasonInvalidStep
	default:
		return metrics.ReasonOther
	}
}

func (r *Runner) isHoliday(req Request) (*Result, error) {
	// weekends need no calendar
	if calendar.IsWeekend(req.Date) {
		log.Debug("%s is a weekend, skipping calendar construction", req.Date)
		return &Result{Request: req, Answer: true}, nil
	}
	mc, err := calendar.NewAround(req.Variant, req.Date, r.QueryMargin, r.Options...)
	if err != nil {
		return nil, err
	}
	closed, err := mc.IsHoliday(req.Date)
	if err != nil {
		return nil, err
	}
	return &Result{Request: req, Answer: closed}, nil
}

func (r *Runner) isHalfDay(req Request) (*Result, error) {
	if calendar.IsWeekend(req.Date) {
		log.Debug("%s is a weekend, skipping calendar construction", req.Date)
		return &Result{Request: req, Answer: false}, nil
	}
	mc, err := calendar.NewAround(req.Variant, req.Date, r.QueryMargin, r.Options...)
	if err != nil {
		return nil, err
	}
	half, err := mc.IsHalfDay(req.Date)
	if err != nil {
		return nil, err
	}
	return &Result{Request: req, Answer: half}, nil
}

func (r *Runner) tPlusN(req Request) (*Result, error) {
	step := calendar.StepRequest{Reference: req.Date, Steps: req.Steps}.Normalized()
	req.Steps = step.Steps

	res, err := calendar.Step(step, req.Variant, r.Policy, r.Options...)
	if err != nil {
		return nil, err
	}
	metrics.WindowDays.Set(float64(res.Window.Days()))
	log.Debug("%s %v over %s: %v", req.Date, req.Steps, res.Window, res.Trail)
	return &Result{Request: req, Answer: true, Date: res.Date, Trail: res.Trail}, nil
}
