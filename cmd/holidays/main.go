package holidays

import (
	"fmt"
	"io"
	"sort"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/utils"
	"github.com/prerak-proof/holiday-calendar/utils/date"
)

const (
	usage   = "holidays"
	short   = "List holidays and early closes between two dates"
	long    = "This command prints every weekday holiday and every early close of the selected calendar in [from, to]"
	example = "holidaycal holidays --from 20240101 --to 20241231 --settlement\n" +
		"holidaycal holidays --from 20200101 --to 20251231 --name 'Christmas*'"

	// Flag descriptions.
	fromDesc       = "first date of the listing (YYYYMMDD)"
	toDesc         = "last date of the listing (YYYYMMDD)"
	settlementDesc = "use settlement days"
	tradingDesc    = "use trading days (default)"
	nameDesc       = "only list entries whose name matches this glob, e.g. 'Christmas*'"
)

type options struct {
	from       string
	to         string
	settlement bool
	trading    bool
	name       string
}

// Entry is one line of the listing.
type Entry struct {
	Date       date.Date
	Name       string
	EarlyClose bool
}

func (e Entry) String() string {
	if e.EarlyClose {
		return fmt.Sprintf("%s\tearly close: %s", e.Date.Basic(), e.Name)
	}
	return fmt.Sprintf("%s\t%s", e.Date.Basic(), e.Name)
}

// NewCommand builds the holidays command printing to out.
func NewCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	c := &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.execute(cmd, out)
		},
	}
	c.Flags().StringVar(&opts.from, "from", "", fromDesc)
	c.Flags().StringVar(&opts.to, "to", "", toDesc)
	c.Flags().BoolVar(&opts.settlement, "settlement", false, settlementDesc)
	c.Flags().BoolVar(&opts.trading, "trading", false, tradingDesc)
	c.Flags().StringVar(&opts.name, "name", "", nameDesc)
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	c.MarkFlagsMutuallyExclusive("settlement", "trading")
	return c
}

func (o *options) execute(cmd *cobra.Command, out io.Writer) error {
	config, err := utils.LoadConfigFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	from, err := date.ParseBasic(o.from)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	to, err := date.ParseBasic(o.to)
	if err != nil {
		return errors.Wrap(err, "--to")
	}
	v := calendar.Trading
	if o.settlement {
		v = calendar.Settlement
	}

	mc, err := calendar.New(v, date.Range{Start: from, End: to}, config.CalendarOptions()...)
	if err != nil {
		return err
	}
	entries, err := Filter(List(mc), o.name)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(out, e); err != nil {
			return err
		}
	}
	return nil
}

// List returns the holidays and early closes of mc's window in date order.
func List(mc *calendar.MarketCalendar) []Entry {
	var entries []Entry
	for _, d := range mc.Holidays() {
		name, _ := mc.HolidayName(d)
		entries = append(entries, Entry{Date: d, Name: name})
	}
	for _, d := range mc.HalfDays() {
		name, _ := mc.EarlyCloseName(d)
		entries = append(entries, Entry{Date: d, Name: name, EarlyClose: true})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

// Filter keeps the entries whose name matches the glob pattern. An empty
// pattern keeps everything.
func Filter(entries []Entry, pattern string) ([]Entry, error) {
	if pattern == "" {
		return entries, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "--name %q", pattern)
	}
	var out []Entry
	for _, e := range entries {
		if g.Match(e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}
