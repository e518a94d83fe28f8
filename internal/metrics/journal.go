package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Journal Metrics
//
// These metrics track the request journal, the per-request store context
// that is flushed before response streaming begins.

var (
	// JournalEntriesTotal counts flushed journal entries by outcome.
	// Labels: outcome (ok, not_found, invalid)
	JournalEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitemapd_journal_entries_total",
			Help: "Total number of journal entries written",
		},
		[]string{"outcome"},
	)

	// JournalFlushErrors counts failed journal writes. Flushing is
	// best-effort; a failure never blocks the delivery.
	JournalFlushErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitemapd_journal_flush_errors_total",
			Help: "Total number of failed journal writes",
		},
	)
)
