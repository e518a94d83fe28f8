package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery Metrics
//
// These metrics track sitemap file deliveries to crawlers and browsers.
// Use these metrics to monitor delivery performance, success rates, and
// how often clients resume downloads or abort mid-transfer.

var (
	// DeliveryDuration tracks the time taken to complete file deliveries.
	// Labels: file_ext (e.g., "html", "xml", "gz")
	DeliveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitemapd_delivery_duration_seconds",
			Help:    "Delivery duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"file_ext"},
	)

	// DeliverySize tracks the size of delivered files in bytes.
	// Labels: file_ext
	DeliverySize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitemapd_delivery_size_bytes",
			Help:    "Delivery size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 16), // 1KB to ~64MB
		},
		[]string{"file_ext"},
	)

	// DeliveriesTotal counts deliveries by outcome.
	// Labels: file_ext, status (success, not_found, aborted)
	// Use this to track delivery success rate and broken sitemap links.
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitemapd_deliveries_total",
			Help: "Total number of sitemap deliveries",
		},
		[]string{"file_ext", "status"},
	)

	// RangeDeliveriesTotal counts partial-content responses to Range
	// requests, typically crawlers resuming an aborted transfer.
	RangeDeliveriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitemapd_range_deliveries_total",
			Help: "Total number of partial-content (resumed) deliveries",
		},
	)

	// ClientAborts counts transfers the client dropped mid-stream.
	// A high rate usually just means crawlers switching to Range requests.
	ClientAborts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitemapd_client_aborts_total",
			Help: "Total number of client-aborted transfers",
		},
	)

	// ActiveDeliveries tracks deliveries currently in progress.
	// Use this to monitor concurrent load on the server.
	ActiveDeliveries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sitemapd_active_deliveries",
			Help: "Number of active deliveries",
		},
	)
)
