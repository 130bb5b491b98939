package importer

import "github.com/prometheus/client_golang/prometheus"

// Outcomes of a single transaction in an import.
const (
	outcomeCreated    = "created"
	outcomeDuplicate  = "duplicate"
	outcomeUnmappable = "unmappable"
	outcomeInvalid    = "invalid"
)

var transactionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "import_transactions_total",
		Help: "How many upstream transactions were processed, partitioned by outcome.",
	},
	[]string{"outcome"},
)

var syncDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "import_sync_duration_seconds",
		Help: "The latencies of linked account syncs in seconds, partitioned by result.",
	},
	[]string{"result"},
)

// Collectors are the Prometheus metrics of the importer.
var Collectors = []prometheus.Collector{
	transactionsTotal,
	syncDuration,
}
