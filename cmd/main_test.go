package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prerak-proof/holiday-calendar/utils/log"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.FATAL)
	m.Run()
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, strings.TrimSpace(stdout.String()), stderr.String()
}

func TestExecute(t *testing.T) {
	tests := map[string]struct {
		args     []string
		wantCode int
		wantOut  string
	}{
		"independence day is a holiday": {
			args:     []string{"20240704"},
			wantCode: ExitTrue,
			wantOut:  "is_holiday() for 2024-07-04: true",
		},
		"veterans day trades": {
			args:     []string{"20241111", "--trading"},
			wantCode: ExitFalse,
			wantOut:  "is_holiday() for 2024-11-11: false",
		},
		"veterans day does not settle": {
			args:     []string{"20241111", "--settlement"},
			wantCode: ExitTrue,
			wantOut:  "Settlement is_holiday() for 2024-11-11: true",
		},
		"day after thanksgiving is a half day": {
			args:     []string{"20241129", "--action", "is_half_day"},
			wantCode: ExitTrue,
			wantOut:  "is_half_day() for 2024-11-29: true",
		},
		"saturday is never a half day": {
			args:     []string{"--action=is_half_day", "20241130"},
			wantCode: ExitFalse,
			wantOut:  "is_half_day() for 2024-11-30: false",
		},
		"negative step before the flag": {
			args:     []string{"20241224", "-1", "2", "--action", "t_plus_n"},
			wantCode: ExitTrue,
			wantOut:  "20241226",
		},
		"flags first": {
			args:     []string{"--action", "t_plus_n", "20241224", "-1", "2"},
			wantCode: ExitTrue,
			wantOut:  "20241226",
		},
		"default T+2": {
			args:     []string{"20241224", "--action", "t_plus_n"},
			wantCode: ExitTrue,
			wantOut:  "20241227",
		},
		"explicit T+2": {
			args:     []string{"20241224", "2", "--action", "t_plus_n"},
			wantCode: ExitTrue,
			wantOut:  "20241227",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			code, out, stderr := execute(tt.args...)
			assert.Equal(t, tt.wantCode, code, stderr)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := map[string]struct {
		args    []string
		wantErr string
	}{
		"conflicting variants": {
			args:    []string{"20240704", "--settlement", "--trading"},
			wantErr: "none of the others can be",
		},
		"conflicting variants after steps": {
			args:    []string{"20241224", "-1", "--trading", "2", "--action", "t_plus_n", "--settlement"},
			wantErr: "[settlement trading]",
		},
		"bad date": {
			args:    []string{"2024-07-04"},
			wantErr: "2024-07-04",
		},
		"unknown action": {
			args:    []string{"20240704", "--action", "is_open"},
			wantErr: "unknown action",
		},
		"bad step": {
			args:    []string{"20240704", "x", "--action", "t_plus_n"},
			wantErr: "invalid step",
		},
		"step out of range": {
			args:    []string{"20240703", "-9223372036854775808", "--action", "t_plus_n"},
			wantErr: "step count out of range",
		},
		"bad output": {
			args:    []string{"20240704", "--output", "xml"},
			wantErr: "invalid output format",
		},
		"missing config file": {
			args:    []string{"20240704", "--config", "/nonexistent/holidaycal.yaml"},
			wantErr: "holidaycal.yaml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			code, out, stderr := execute(tt.args...)
			assert.Equal(t, ExitError, code)
			assert.Empty(t, out)
			assert.Contains(t, stderr, "Error: ")
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestExecuteJSON(t *testing.T) {
	code, out, _ := execute("20241224", "-1", "2", "--action", "t_plus_n", "-o", "json")
	require.Equal(t, ExitTrue, code)
	assert.JSONEq(t, `{
		"date": "20241224",
		"action": "t_plus_n",
		"variant": "settlement",
		"args": [-1, 2],
		"result": "20241226",
		"trail": ["20241223", "20241226"]
	}`, out)

	code, out, _ = execute("20241111", "--output", "json")
	require.Equal(t, ExitFalse, code)
	assert.JSONEq(t, `{
		"date": "20241111",
		"action": "is_holiday",
		"variant": "trading",
		"args": [],
		"result": false
	}`, out)
}

func TestExecuteSubcommands(t *testing.T) {
	code, out, stderr := execute("holidays", "--from", "20240701", "--to", "20240705")
	require.Equal(t, ExitTrue, code, stderr)
	assert.Equal(t, "20240703\tearly close: Independence Day Eve\n20240704\tIndependence Day", out)

	code, _, stderr = execute("holidays", "--from", "20240701")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "to")

	code, out, stderr = execute("help")
	require.Equal(t, ExitTrue, code, stderr)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "holidays")

	code, out, stderr = execute("help", "batch")
	require.Equal(t, ExitTrue, code, stderr)
	assert.Contains(t, out, "--metrics-file")

	code, out, stderr = execute("completion", "bash")
	require.Equal(t, ExitTrue, code, stderr)
	assert.NotEmpty(t, out)
}

func TestIntermix(t *testing.T) {
	root, _ := NewRootCommand(&bytes.Buffer{})

	tests := map[string]struct {
		args []string
		want []string
	}{
		"positionals only": {
			args: []string{"20241224", "-1", "2"},
			want: []string{"--", "20241224", "-1", "2"},
		},
		"flag with value after positionals": {
			args: []string{"20241224", "-1", "--action", "t_plus_n", "2"},
			want: []string{"--action", "t_plus_n", "--", "20241224", "-1", "2"},
		},
		"boolean flag does not take a value": {
			args: []string{"--settlement", "20241111"},
			want: []string{"--settlement", "--", "20241111"},
		},
		"shorthand with value": {
			args: []string{"20241111", "-o", "json"},
			want: []string{"-o", "json", "--", "20241111"},
		},
		"inline value": {
			args: []string{"20241224", "--action=t_plus_n", "-3"},
			want: []string{"--action=t_plus_n", "--", "20241224", "-3"},
		},
		"no positionals": {
			args: []string{"--trading"},
			want: []string{"--trading"},
		},
		"explicit terminator": {
			args: []string{"--action", "t_plus_n", "--", "20241224", "-1"},
			want: []string{"--action", "t_plus_n", "--", "20241224", "-1"},
		},
		"help untouched": {
			args: []string{"help", "holidays"},
			want: []string{"help", "holidays"},
		},
		"subcommand untouched": {
			args: []string{"holidays", "--from", "20240101", "--to", "20241231"},
			want: []string{"holidays", "--from", "20240101", "--to", "20241231"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, intermix(root, tt.args))
		})
	}
}
