package query

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/utils/date"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is the answer to a Request. Boolean actions fill Answer; stepping
// fills Date and Trail.
type Result struct {
	Request Request
	Answer  bool
	Date    date.Date
	Trail   []date.Date
}

// OK maps the result to the process outcome: the boolean answer, or always
// true for stepping.
func (r *Result) OK() bool {
	if r.Request.Action == TPlusN {
		return true
	}
	return r.Answer
}

// Value is the bare answer: "true"/"false" or the stepped date as YYYYMMDD.
func (r *Result) Value() string {
	if r.Request.Action == TPlusN {
		return r.Date.Basic()
	}
	return strconv.FormatBool(r.Answer)
}

// Text is the human readable line printed by the CLI.
func (r *Result) Text() string {
	if r.Request.Action == TPlusN {
		return r.Date.Basic()
	}
	prefix := ""
	if r.Request.Variant == calendar.Settlement {
		prefix = "Settlement "
	}
	return fmt.Sprintf("%s%s(%s) for %s: %t",
		prefix, r.Request.Action, strings.Join(r.Request.stepStrings(), ", "), r.Request.Date, r.Answer)
}

type jsonResult struct {
	Date    string      `json:"date"`
	Action  string      `json:"action"`
	Variant string      `json:"variant"`
	Args    []int       `json:"args"`
	Result  interface{} `json:"result"`
	Trail   []string    `json:"trail,omitempty"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	out := jsonResult{
		Date:    r.Request.Date.Basic(),
		Action:  r.Request.Action.String(),
		Variant: r.Request.Variant.String(),
		Args:    append([]int{}, r.Request.Steps...),
		Result:  r.Answer,
	}
	if r.Request.Action == TPlusN {
		out.Result = r.Date.Basic()
		for _, d := range r.Trail {
			out.Trail = append(out.Trail, d.Basic())
		}
	}
	return json.Marshal(out)
}
