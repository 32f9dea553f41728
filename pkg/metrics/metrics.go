package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome values reported for a run.
const (
	OutcomeApplied    = "applied"
	OutcomeCustomized = "customized"
	OutcomeNoHardware = "no_hardware"
)

var (
	runResult = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chrony_cloud_setup_result",
			Help: "Outcome of the last chrony-cloud-setup run, 1 for the row matching the outcome.",
		}, []string{"outcome", "platform"})

	lastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chrony_cloud_setup_last_run_timestamp_seconds",
			Help: "Unix time of the last chrony-cloud-setup run.",
		})
)

// Write renders the run outcome to a node-exporter textfile-collector file.
// The process is one-shot, so a scrape endpoint makes no sense here; the
// textfile collector picks the result up on the exporter's schedule.
func Write(path, outcome, platform string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(runResult, lastRun)

	for _, o := range []string{OutcomeApplied, OutcomeCustomized, OutcomeNoHardware} {
		value := 0.0
		if o == outcome {
			value = 1.0
		}
		runResult.With(prometheus.Labels{"outcome": o, "platform": platform}).Set(value)
	}
	lastRun.SetToCurrentTime()

	return prometheus.WriteToTextfile(path, registry)
}
