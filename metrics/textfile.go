package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prerak-proof/holiday-calendar/utils/log"
)

// WriteTextfile dumps every metric of g to path in the text exposition
// format, for node_exporter's textfile collector. Batch runs are too short
// lived to be scraped.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	log.Debug("wrote metrics to %s", path)
	return nil
}
