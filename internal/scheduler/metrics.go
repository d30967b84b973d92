package scheduler

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var scansTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bill_scans_total",
		Help: "How many bill notification scans have run.",
	},
)

var scanErrorsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bill_scan_errors_total",
		Help: "How many errors occurred during bill notification scans.",
	},
)

var emailsSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bill_emails_sent_total",
		Help: "How many bill notification emails have been sent, partitioned by notification type.",
	},
	[]string{"type"},
)

var metrics = []prometheus.Collector{
	scansTotal,
	scanErrorsTotal,
	emailsSentTotal,
}

// RegisterMetrics registers all scheduler metrics
// with the default Prometheus registry.
func RegisterMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			// Re-registering the same collectors is fine.
			var registered prometheus.AlreadyRegisteredError
			if errors.As(err, &registered) {
				continue
			}

			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterMetrics unregisters all scheduler metrics.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}
