// Package metrics exposes the process-wide Prometheus collectors the
// filters update as they run. Registration is eager and global, the
// same way a single localization run only ever has one estimator
// active: callers that want a scrape endpoint wire Registry into an
// http.Handler themselves; this package does not start a server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Registry is the collector registry every metric in this package
	// is registered against. Import this package for its side effects
	// to get the collectors; pass Registry to promhttp.HandlerFor to
	// expose them.
	Registry = prometheus.NewRegistry()

	// BeliefSize reports the current particle count for a running
	// filter, labeled by filter name (pf3dof, pf6dof).
	BeliefSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "localization_belief_size",
		Help: "Current particle count of a running particle filter.",
	}, []string{"filter"})

	// ResampleTotal counts observation updates that performed a
	// resample, labeled by whether the degenerate (all-zero-error)
	// branch was taken.
	ResampleTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "localization_resample_total",
		Help: "Observation updates that resampled the particle belief.",
	}, []string{"degenerate"})

	// UKFSingularInnovations counts measurement updates skipped
	// because the innovation covariance was singular.
	UKFSingularInnovations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "localization_ukf_singular_innovations_total",
		Help: "UKF measurement updates skipped due to a singular innovation covariance.",
	})
)

func init() {
	Registry.MustRegister(BeliefSize, ResampleTotal, UKFSingularInnovations)
}
