package di

import (
	"github.com/prerak-proof/holiday-calendar/internal/query"
	"github.com/prerak-proof/holiday-calendar/utils"
)

// Container lazily builds the objects every command needs from one config.
type Container struct {
	config *utils.HolidayCalConfig
	runner *query.Runner
}

func NewContainer(cfg *utils.HolidayCalConfig) *Container {
	if cfg == nil {
		cfg = utils.DefaultConfig()
	}
	return &Container{config: cfg}
}

func (c *Container) GetConfig() *utils.HolidayCalConfig {
	return c.config
}

func (c *Container) GetRunner() *query.Runner {
	if c.runner != nil {
		return c.runner
	}
	c.runner = query.NewRunner(c.config.Window, c.config.QueryMargin, c.config.CalendarOptions()...)
	return c.runner
}

func (c *Container) GetBatchWorkers() int {
	return c.config.BatchWorkers
}
