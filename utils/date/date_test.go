package date_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prerak-proof/holiday-calendar/utils/date"
)

func TestParseBasic(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    date.Date
		wantErr bool
	}{
		"ok/ plain":             {in: "20241224", want: date.New(2024, time.December, 24)},
		"ok/ surrounding space": {in: " 20240704 ", want: date.New(2024, time.July, 4)},
		"ng/ dashes":            {in: "2024-07-04", wantErr: true},
		"ng/ month 13":          {in: "20241304", wantErr: true},
		"ng/ empty":             {in: "", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := date.ParseBasic(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, date.ErrInvalidFormat, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAny(t *testing.T) {
	t.Parallel()

	d, err := date.ParseAny("2024-11-29")
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, time.November, 29), d)

	d, err = date.ParseAny("20241129")
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, time.November, 29), d)

	_, err = date.ParseAny("2024-11-31")
	assert.Equal(t, date.ErrInvalidFormat, errors.Cause(err))
}

func TestWeekend(t *testing.T) {
	t.Parallel()

	assert.True(t, date.New(2024, time.July, 6).IsWeekend())  // Saturday
	assert.True(t, date.New(2024, time.July, 7).IsWeekend())  // Sunday
	assert.False(t, date.New(2024, time.July, 8).IsWeekend()) // Monday
	assert.Equal(t, time.Thursday, date.New(2024, time.July, 4).Weekday())
}

func TestArithmeticAndFormat(t *testing.T) {
	t.Parallel()

	d := date.New(2024, time.December, 31)
	assert.Equal(t, date.New(2025, time.January, 1), d.AddDays(1))
	assert.Equal(t, date.New(2024, time.February, 29), date.New(2024, time.March, 1).AddDays(-1))
	assert.Equal(t, "20241231", d.Basic())
	assert.Equal(t, "2024-12-31", d.String())
	assert.Equal(t, 365, d.DaysSince(date.New(2024, time.January, 1)))

	r := date.Range{Start: date.New(2024, time.December, 20), End: date.New(2024, time.December, 31)}
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.AddDays(1)))
	assert.Equal(t, 12, r.Days())
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var d date.Date
	require.NoError(t, d.UnmarshalText([]byte("2025-01-09")))
	assert.Equal(t, date.New(2025, time.January, 9), d)
	assert.Error(t, d.UnmarshalText([]byte("yesterday")))
}
