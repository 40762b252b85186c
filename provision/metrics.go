package provision

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CaioVieiraF/olt-access/types"
)

// Metrics counts pushed commands by outcome.
type Metrics struct {
	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	lastRun  *prometheus.GaugeVec
}

// NewMetrics registers the push metrics with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olt_access",
			Name:      "commands_total",
			Help:      "Commands sent to the OLT by result.",
		}, []string{"equipment", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "olt_access",
			Name:      "command_duration_seconds",
			Help:      "Time between sending a command and reading its reply.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"equipment"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olt_access",
			Name:      "runs_total",
			Help:      "Push runs by outcome.",
		}, []string{"equipment", "result"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "olt_access",
			Name:      "last_run_timestamp_seconds",
			Help:      "Completion time of the last push run.",
		}, []string{"equipment"}),
	}
	registry.MustRegister(m.commands, m.duration, m.runs, m.lastRun)
	return m
}

func (m *Metrics) observeCommand(equipment string, r types.CommandResult) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(equipment, outcome(r.OK())).Inc()
	m.duration.WithLabelValues(equipment).Observe(r.Duration.Seconds())
}

func (m *Metrics) observeRun(equipment string, report *Report) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(equipment, outcome(report.OK())).Inc()
	m.lastRun.WithLabelValues(equipment).SetToCurrentTime()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// WriteTextfile writes everything gathered by g in the node_exporter
// textfile collector format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return types.Wrap(types.KindIO, "write metrics", prometheus.WriteToTextfile(path, g))
}
