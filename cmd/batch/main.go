package batch

import (
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/prerak-proof/holiday-calendar/internal/di"
	"github.com/prerak-proof/holiday-calendar/internal/query"
	"github.com/prerak-proof/holiday-calendar/metrics"
	"github.com/prerak-proof/holiday-calendar/utils"
	"github.com/prerak-proof/holiday-calendar/utils/log"
	"github.com/prerak-proof/holiday-calendar/utils/pool"
)

const (
	usage   = "batch"
	short   = "Answer many calendar queries from a CSV file"
	long    = "This command reads queries (date,action,variant,steps) from CSV and writes one answer row per query"
	example = "holidaycal batch --input queries.csv --workers 8 --metrics-file /var/lib/node_exporter/holidaycal.prom"

	// Flag descriptions.
	inputDesc       = "set the path of the input CSV, - for stdin"
	outputDesc      = "set the path of the output CSV, - for stdout"
	workersDesc     = "number of queries answered concurrently, 0 uses the configured value"
	metricsFileDesc = "write prometheus metrics to this file after the run"
)

// ErrRowsFailed is returned when at least one row could not be answered.
// The output is still complete; failed rows carry their error.
var ErrRowsFailed = errors.New("some queries failed")

// Row is one query and, once answered, its result. Steps are separated by
// spaces, e.g. "-1 2". An empty variant selects the action's default.
type Row struct {
	Date    string `csv:"date"`
	Action  string `csv:"action"`
	Variant string `csv:"variant"`
	Steps   string `csv:"steps"`
	Result  string `csv:"result"`
	Error   string `csv:"error"`
}

type options struct {
	input       string
	output      string
	workers     int
	metricsFile string
}

// NewCommand builds the batch command; results go to out unless --output
// names a file.
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
	c.Flags().StringVarP(&opts.input, "input", "i", "-", inputDesc)
	c.Flags().StringVar(&opts.output, "out", "-", outputDesc)
	c.Flags().IntVarP(&opts.workers, "workers", "w", 0, workersDesc)
	c.Flags().StringVar(&opts.metricsFile, "metrics-file", "", metricsFileDesc)
	return c
}

func (o *options) execute(cmd *cobra.Command, stdout io.Writer) error {
	config, err := utils.LoadConfigFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	c := di.NewContainer(config)

	in := cmd.InOrStdin()
	if o.input != "-" {
		f, err := os.Open(o.input)
		if err != nil {
			return errors.Wrap(err, "open batch input")
		}
		defer f.Close()
		in = f
	}

	out := stdout
	if o.output != "-" {
		f, err := os.Create(o.output)
		if err != nil {
			return errors.Wrap(err, "create batch output")
		}
		defer f.Close()
		out = f
	}

	workers := o.workers
	if workers <= 0 {
		workers = c.GetBatchWorkers()
	}

	rows, err := Read(in)
	if err != nil {
		return err
	}
	failed := Process(c.GetRunner(), rows, workers)
	log.Info("answered %d queries with %d workers, %d failed", len(rows), workers, failed)

	if err := gocsv.Marshal(&rows, out); err != nil {
		return errors.Wrap(err, "write batch output")
	}
	if err := metrics.WriteTextfile(o.metricsFile, prometheus.DefaultGatherer); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Wrapf(ErrRowsFailed, "%d of %d", failed, len(rows))
	}
	return nil
}

// Read decodes the query rows of r.
func Read(r io.Reader) ([]*Row, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "read batch input")
	}
	return rows, nil
}

type job struct {
	row *Row
}

// Process answers every row in place using at most workers goroutines. Each
// query builds its own calendar, so rows share nothing but the runner's
// read-only settings. It returns the number of rows that failed.
func Process(runner *query.Runner, rows []*Row, workers int) int {
	failures := make(chan struct{}, len(rows))
	p := pool.NewPool(workers, func(input interface{}) {
		row := input.(job).row
		if err := answer(runner, row); err != nil {
			row.Error = err.Error()
			failures <- struct{}{}
		}
	})

	jobs := make(chan interface{})
	go func() {
		defer close(jobs)
		for _, row := range rows {
			jobs <- job{row: row}
		}
	}()
	p.Work(jobs)
	p.Wait()
	close(failures)

	failed := 0
	for range failures {
		failed++
	}
	return failed
}

func answer(runner *query.Runner, row *Row) error {
	row.Result, row.Error = "", ""
	req, err := query.ParseRequest(row.Date, row.Action, row.Variant, strings.Fields(row.Steps))
	if err != nil {
		return err
	}
	res, err := runner.Run(req)
	if err != nil {
		return err
	}
	row.Variant = req.Variant.String()
	row.Action = req.Action.String()
	row.Result = res.Value()
	return nil
}
