package calendar

import (
	"math"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/utils/date"
)

// MaxSteps bounds the sessions a single walk, and the total of a series,
// may cover (roughly four centuries).
const MaxSteps = 100000

// maxLookback caps Lookback so huge totals saturate instead of wrapping.
const maxLookback = math.MaxInt32

// DefaultSteps is used when a StepRequest carries no steps (T+2).
var DefaultSteps = []int{2}

// WindowPolicy sizes the calendar window for a stepping request:
// lookback = ceil(sum(|n|) * Multiplier) + Margin days on each side of the
// reference date. The defaults are empirical; dense holiday clusters or very
// large step counts can still walk out of the window, which is reported as
// ErrOutOfWindow rather than a wrong date.
type WindowPolicy struct {
	Multiplier float64
	Margin     int
}

// DefaultWindowPolicy is 1.5x the total step count plus five days.
var DefaultWindowPolicy = WindowPolicy{Multiplier: 1.5, Margin: 5}

func (p WindowPolicy) Validate() error {
	if p.Multiplier <= 0 || math.IsNaN(p.Multiplier) || math.IsInf(p.Multiplier, 0) {
		return errors.Errorf("window multiplier must be a finite positive number, got %v", p.Multiplier)
	}
	if p.Margin < 0 {
		return errors.Errorf("window margin must be >= 0, got %d", p.Margin)
	}
	return nil
}

// Lookback returns the half-width in days of the window needed for steps.
func (p WindowPolicy) Lookback(steps []int) int {
	lb := math.Ceil(float64(totalSteps(steps, maxLookback)) * p.Multiplier)
	if lb >= maxLookback {
		return maxLookback
	}
	if p.Margin > maxLookback-int(lb) {
		return maxLookback
	}
	return int(lb) + p.Margin
}

// totalSteps is sum(|n|), saturating at limit.
func totalSteps(steps []int, limit int) int {
	total := 0
	for _, n := range steps {
		if n < -limit || n > limit {
			return limit
		}
		if n < 0 {
			n = -n
		}
		if total += n; total >= limit {
			return limit
		}
	}
	return total
}

// checkSteps rejects a series walking more than MaxSteps sessions in total.
func checkSteps(steps []int) error {
	if total := totalSteps(steps, MaxSteps+1); total > MaxSteps {
		return errors.Wrapf(ErrStepOutOfRange, "%v walks more than %d sessions", steps, MaxSteps)
	}
	return nil
}

// Window returns the window centered on ref for steps.
func (p WindowPolicy) Window(ref date.Date, steps []int) date.Range {
	lb := p.Lookback(steps)
	return date.Range{Start: ref.AddDays(-lb), End: ref.AddDays(lb)}
}

// StepRequest is a reference date and an ordered N-series. Each step starts
// where the previous one ended.
type StepRequest struct {
	Reference date.Date
	Steps     []int
}

// Normalized returns the request with DefaultSteps filled in when empty.
func (r StepRequest) Normalized() StepRequest {
	if len(r.Steps) == 0 {
		r.Steps = append([]int(nil), DefaultSteps...)
	}
	return r
}

// StepResult is the outcome of a chained walk.
type StepResult struct {
	Date date.Date
	// Trail holds the cursor after each step, in order.
	Trail  []date.Date
	Window date.Range
}

// StepChain applies steps in order starting at ref:
// cursor[i+1] = StepSessions(cursor[i], steps[i]).
func (mc *MarketCalendar) StepChain(ref date.Date, steps []int) (*StepResult, error) {
	res := &StepResult{Date: ref, Trail: make([]date.Date, 0, len(steps)), Window: mc.window}
	for i, n := range steps {
		next, err := mc.StepSessions(res.Date, n)
		if err != nil {
			return nil, errors.Wrapf(err, "step #%d", i+1)
		}
		res.Date = next
		res.Trail = append(res.Trail, next)
	}
	return res, nil
}

// Step sizes a calendar for req with policy, builds it for v and walks the
// N-series.
func Step(req StepRequest, v Variant, policy WindowPolicy, opts ...Option) (*StepResult, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()
	if err := checkSteps(req.Steps); err != nil {
		return nil, err
	}
	mc, err := New(v, policy.Window(req.Reference, req.Steps), opts...)
	if err != nil {
		return nil, err
	}
	return mc.StepChain(req.Reference, req.Steps)
}
