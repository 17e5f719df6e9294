package calendar

import "github.com/pkg/errors"

var (
	// ErrOutOfWindow means a query or a stepping walk left the calendar's
	// window. The window was sized too small for the request.
	ErrOutOfWindow = errors.New("date is outside the calendar window")
	// ErrUnknownVariant means a variant other than Trading or Settlement.
	ErrUnknownVariant = errors.New("unknown calendar variant")
	// ErrInvalidWindow means a window whose start is after its end.
	ErrInvalidWindow = errors.New("invalid calendar window")
	// ErrStepOutOfRange means a step count, or the total of a series, above
	// MaxSteps sessions.
	ErrStepOutOfRange = errors.New("step count out of range")
)

// IsOutOfWindow reports whether err was caused by ErrOutOfWindow.
func IsOutOfWindow(err error) bool {
	return errors.Cause(err) == ErrOutOfWindow
}
