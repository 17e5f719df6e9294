package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/cmd/batch"
	"github.com/prerak-proof/holiday-calendar/cmd/holidays"
	"github.com/prerak-proof/holiday-calendar/internal/di"
	"github.com/prerak-proof/holiday-calendar/internal/query"
	"github.com/prerak-proof/holiday-calendar/utils"
	"github.com/prerak-proof/holiday-calendar/utils/log"
)

const (
	usage   = "holidaycal [DATE] [STEP...]"
	short   = "Answer market calendar questions about a date"
	long    = "This command checks whether DATE (YYYYMMDD, default today) is a market holiday or a half day, " +
		"or walks the STEP series of sessions from it (T+N)."
	example = "holidaycal 20240704\n" +
		"holidaycal 20241111 --settlement\n" +
		"holidaycal 20241129 --action is_half_day\n" +
		"holidaycal 20241224 -1 2 --action t_plus_n"

	// Flag descriptions.
	actionDesc     = "action to perform"
	settlementDesc = "use settlement days"
	tradingDesc    = "use trading days"
	outputDesc     = "output format, text or json"
	configDesc     = "set the path for the YAML configuration file"
	logLevelDesc   = "override the log level (debug, info, warning, error)"

	defaultAction = "is_holiday"
	defaultOutput = "text"
)

// Exit codes.
const (
	ExitTrue  = 0
	ExitFalse = 1
	ExitError = 2
)

// ErrInvalidOutput is returned for an --output other than text or json.
var ErrInvalidOutput = errors.New("invalid output format, expected text or json")

type rootOptions struct {
	action     string
	settlement bool
	trading    bool
	output     string

	// result of the last RunE, nil for subcommands
	result *query.Result
}

// variant resolves the variant flags after parsing: an explicit flag wins,
// otherwise the action's default applies. cobra rejects both flags together.
func (o *rootOptions) variant(action query.Action) calendar.Variant {
	switch {
	case o.settlement:
		return calendar.Settlement
	case o.trading:
		return calendar.Trading
	default:
		return action.DefaultVariant()
	}
}

// NewRootCommand builds the command tree writing results to out.
func NewRootCommand(out io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	c := &cobra.Command{
		Use:          usage,
		Short:        short,
		Long:         long,
		Example:      example,
		SilenceUsage: true,
		// errors are reported by Execute together with the exit code
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args, out)
		},
	}

	c.Flags().StringVar(&opts.action, "action", defaultAction,
		actionDesc+" ("+strings.Join(query.ActionNames(), "|")+")")
	c.Flags().BoolVar(&opts.settlement, "settlement", false, settlementDesc)
	c.Flags().BoolVar(&opts.trading, "trading", false, tradingDesc)
	c.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, outputDesc)
	c.MarkFlagsMutuallyExclusive("settlement", "trading")

	c.PersistentFlags().StringP(utils.ConfigFlag, "c", "", configDesc)
	c.PersistentFlags().String(utils.LogLevelFlag, "", logLevelDesc)

	c.AddCommand(batch.NewCommand(out))
	c.AddCommand(holidays.NewCommand(out))
	// cobra adds these lazily in Execute; intermix needs to see them
	c.InitDefaultHelpCmd()
	c.InitDefaultCompletionCmd()

	return c, opts
}

func (o *rootOptions) run(cmd *cobra.Command, args []string, out io.Writer) error {
	if o.output != "text" && o.output != "json" {
		return errors.Wrapf(ErrInvalidOutput, "%q", o.output)
	}

	config, err := utils.LoadConfigFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	dateArg := ""
	var stepArgs []string
	if len(args) > 0 {
		dateArg, stepArgs = args[0], args[1:]
	}

	action, err := query.ParseAction(o.action)
	if err != nil {
		return err
	}
	req, err := query.ParseRequest(dateArg, action.String(), o.variant(action).String(), stepArgs)
	if err != nil {
		return err
	}
	log.Debug("request: date=%s action=%s variant=%s steps=%v", req.Date, req.Action, req.Variant, req.Steps)

	res, err := di.NewContainer(config).GetRunner().Run(req)
	if err != nil {
		return err
	}
	o.result = res

	if o.output == "json" {
		data, err := res.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err = fmt.Fprintln(out, res.Text())
	return err
}

// Execute runs the command line args and returns the process exit code:
// 0 when the answer is true (stepping always succeeds with a date), 1 when
// it is false and 2 on any error.
func Execute(args []string, stdout, stderr io.Writer) int {
	c, opts := NewRootCommand(stdout)
	c.SetOut(stdout)
	c.SetErr(stderr)
	c.SetArgs(intermix(c, args))

	if err := c.Execute(); err != nil {
		if calendar.IsOutOfWindow(err) {
			log.Error("window too small for the request, raise window.multiplier or window.margin: %v", err)
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	if opts.result != nil && !opts.result.OK() {
		return ExitFalse
	}
	return ExitTrue
}
