package utils

import (
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/utils/log"
)

// Window sizing and batch parallelism can be tuned per invocation through
// environment variables without editing the configuration file.

// envOverride updates some configs by environment variables.
func envOverride(config *HolidayCalConfig) error {
	// override LogLevel
	if v := os.Getenv("HOLIDAYCAL_LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return errors.Wrap(err, "HOLIDAYCAL_LOG_LEVEL")
		}
		config.LogLevel = level
	}

	// override the window multiplier / margin
	if v := os.Getenv("HOLIDAYCAL_WINDOW_MULTIPLIER"); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "HOLIDAYCAL_WINDOW_MULTIPLIER")
		}
		config.Window.Multiplier = m
	}
	if v := os.Getenv("HOLIDAYCAL_WINDOW_MARGIN"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "HOLIDAYCAL_WINDOW_MARGIN")
		}
		config.Window.Margin = m
	}

	// override batch workers
	if v := os.Getenv("HOLIDAYCAL_BATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "HOLIDAYCAL_BATCH_WORKERS")
		}
		config.BatchWorkers = n
	}

	return nil
}
