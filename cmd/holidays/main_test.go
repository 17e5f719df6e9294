package holidays_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/cmd/holidays"
	"github.com/prerak-proof/holiday-calendar/utils/date"
)

func TestList(t *testing.T) {
	t.Parallel()

	mc, err := calendar.New(calendar.Trading, date.Range{
		Start: date.New(2024, time.November, 1),
		End:   date.New(2024, time.December, 31),
	})
	require.NoError(t, err)

	var lines []string
	for _, e := range holidays.List(mc) {
		lines = append(lines, e.String())
	}
	assert.Equal(t, []string{
		"20241128\tThanksgiving Day",
		"20241129\tearly close: Day After Thanksgiving",
		"20241224\tearly close: Christmas Eve",
		"20241225\tChristmas Day",
	}, lines)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	entries := []holidays.Entry{
		{Date: date.New(2024, time.July, 3), Name: "Independence Day Eve", EarlyClose: true},
		{Date: date.New(2024, time.July, 4), Name: "Independence Day"},
		{Date: date.New(2024, time.December, 25), Name: "Christmas Day"},
	}

	got, err := holidays.Filter(entries, "Independence*")
	require.NoError(t, err)
	assert.Equal(t, entries[:2], got)

	got, err = holidays.Filter(entries, "*Day")
	require.NoError(t, err)
	assert.Equal(t, []holidays.Entry{entries[1], entries[2]}, got)

	got, err = holidays.Filter(entries, "")
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	got, err = holidays.Filter(entries, "Good Friday")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = holidays.Filter(entries, "[Christmas")
	assert.Error(t, err)
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args      []string
		wantLines []string
		wantErr   bool
	}{
		"ok/ trading november": {
			args: []string{"--from", "20241101", "--to", "20241130"},
			wantLines: []string{
				"20241128\tThanksgiving Day",
				"20241129\tearly close: Day After Thanksgiving",
			},
		},
		"ok/ settlement adds bank holidays": {
			args: []string{"--from", "20241001", "--to", "20241130", "--settlement"},
			wantLines: []string{
				"20241014\tColumbus Day",
				"20241111\tVeterans Day",
				"20241128\tThanksgiving Day",
				"20241129\tearly close: Day After Thanksgiving",
			},
		},
		"ok/ nothing in the window": {
			args: []string{"--from", "20240801", "--to", "20240831"},
		},
		"ok/ name filter": {
			args: []string{"--from", "20200101", "--to", "20221231", "--name", "Christmas*"},
			wantLines: []string{
				"20201224\tearly close: Christmas Eve",
				"20201225\tChristmas Day",
				"20211224\tChristmas Day",
				"20221226\tChristmas Day",
			},
		},
		"ng/ bad name glob": {
			args:    []string{"--from", "20240101", "--to", "20241231", "--name", "[Christmas"},
			wantErr: true,
		},
		"ng/ bad date": {
			args:    []string{"--from", "2024-08-01", "--to", "20240831"},
			wantErr: true,
		},
		"ng/ reversed window": {
			args:    []string{"--from", "20240831", "--to", "20240801"},
			wantErr: true,
		},
		"ng/ missing --to": {
			args:    []string{"--from", "20240801"},
			wantErr: true,
		},
		"ng/ both variants": {
			args:    []string{"--from", "20240801", "--to", "20240831", "--trading", "--settlement"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			c := holidays.NewCommand(&out)
			c.SilenceErrors = true
			c.SilenceUsage = true
			c.SetArgs(tt.args)

			err := c.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var lines []string
			if s := strings.TrimSpace(out.String()); s != "" {
				lines = strings.Split(s, "\n")
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}
