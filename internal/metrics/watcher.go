package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Watcher Metrics
//
// These metrics track the sitemap directory watcher, which observes the
// external generator refreshing the sitemap files.

var (
	// SitemapFiles is the number of regular files currently present in
	// the sitemap directory. Zero usually means the generator never ran.
	SitemapFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sitemapd_sitemap_files",
			Help: "Number of sitemap files in the output directory",
		},
	)

	// RegenerationEvents counts filesystem change events in the sitemap
	// directory. A burst of events indicates a generator run.
	RegenerationEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sitemapd_regeneration_events_total",
			Help: "Total number of sitemap directory change events",
		},
	)
)
