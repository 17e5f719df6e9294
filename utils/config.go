package utils

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/prerak-proof/holiday-calendar/calendar"
	"github.com/prerak-proof/holiday-calendar/utils/date"
	"github.com/prerak-proof/holiday-calendar/utils/log"
)

const (
	// DefaultQueryMargin is the half-width in days of the window built for
	// is_holiday and is_half_day queries.
	DefaultQueryMargin  = 5
	DefaultBatchWorkers = 4
	DefaultLogLevel     = log.WARNING
)

type HolidayCalConfig struct {
	LogLevel     log.Level
	Window       calendar.WindowPolicy
	QueryMargin  int
	BatchWorkers int
	EarlyCloses  []date.Date
	Closures     []date.Date
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *HolidayCalConfig {
	return &HolidayCalConfig{
		LogLevel:     DefaultLogLevel,
		Window:       calendar.DefaultWindowPolicy,
		QueryMargin:  DefaultQueryMargin,
		BatchWorkers: DefaultBatchWorkers,
	}
}

// LoadConfig reads the YAML file at path, or starts from the defaults when
// path is empty, then applies environment overrides.
func LoadConfig(path string) (*HolidayCalConfig, error) {
	config := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read configuration file %s", path)
		}
		if err := config.Parse(data); err != nil {
			return nil, errors.Wrapf(err, "failed to parse configuration file %s", path)
		}
	}
	if err := envOverride(config); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

// ParseConfig parses data on top of the defaults.
func ParseConfig(data []byte) (*HolidayCalConfig, error) {
	config := DefaultConfig()
	if err := config.Parse(data); err != nil {
		return nil, err
	}
	return config, config.Validate()
}

func (c *HolidayCalConfig) Parse(data []byte) error {
	var aux struct {
		LogLevel string `yaml:"log_level"`
		Window   struct {
			Multiplier  *float64 `yaml:"multiplier"`
			Margin      *int     `yaml:"margin"`
			QueryMargin *int     `yaml:"query_margin"`
		} `yaml:"window"`
		Batch struct {
			Workers int `yaml:"workers"`
		} `yaml:"batch"`
		EarlyCloses []string `yaml:"early_closes"`
		Closures    []string `yaml:"closures"`
	}

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.LogLevel != "" {
		level, err := log.ParseLevel(aux.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}

	if aux.Window.Multiplier != nil {
		c.Window.Multiplier = *aux.Window.Multiplier
	}
	if aux.Window.Margin != nil {
		c.Window.Margin = *aux.Window.Margin
	}
	if aux.Window.QueryMargin != nil {
		c.QueryMargin = *aux.Window.QueryMargin
	}

	if aux.Batch.Workers != 0 {
		c.BatchWorkers = aux.Batch.Workers
	}

	var err error
	if c.EarlyCloses, err = parseDates(aux.EarlyCloses); err != nil {
		return errors.Wrap(err, "early_closes")
	}
	if c.Closures, err = parseDates(aux.Closures); err != nil {
		return errors.Wrap(err, "closures")
	}
	return nil
}

func (c *HolidayCalConfig) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return err
	}
	if c.QueryMargin < 0 {
		return errors.Errorf("window query_margin must be >= 0, got %d", c.QueryMargin)
	}
	if c.BatchWorkers < 1 {
		return errors.Errorf("batch workers must be >= 1, got %d", c.BatchWorkers)
	}
	return nil
}

// CalendarOptions turns the configured extra dates into calendar options.
func (c *HolidayCalConfig) CalendarOptions() []calendar.Option {
	var opts []calendar.Option
	if len(c.Closures) > 0 {
		opts = append(opts, calendar.WithClosures(c.Closures...))
	}
	if len(c.EarlyCloses) > 0 {
		opts = append(opts, calendar.WithEarlyCloses(c.EarlyCloses...))
	}
	return opts
}

func parseDates(in []string) ([]date.Date, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]date.Date, 0, len(in))
	for _, s := range in {
		d, err := date.ParseAny(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Flag names shared by every command.
const (
	ConfigFlag   = "config"
	LogLevelFlag = "log-level"
)

// LoadConfigFromFlags loads the file named by --config and applies
// --log-level on top of it, then sets the process log level.
func LoadConfigFromFlags(fs *pflag.FlagSet) (*HolidayCalConfig, error) {
	path, _ := fs.GetString(ConfigFlag)
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := fs.GetString(LogLevelFlag); lvl != "" {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			return nil, err
		}
		config.LogLevel = level
	}
	log.SetLevel(config.LogLevel)
	if path != "" {
		log.Info("using %v for configuration", path)
	}
	return config, nil
}
