package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
//
// These metrics track HTTP request performance and rate limiting.

var (
	// HTTPRequestsTotal counts HTTP requests by endpoint and status.
	// Labels: method, path, status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitemapd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RateLimitedRequests counts requests served through a bandwidth
	// limiter. Labels: client_ip
	// Use this to identify heavy crawlers and tune the rate limit.
	RateLimitedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitemapd_rate_limited_requests_total",
			Help: "Total number of rate limited requests",
		},
		[]string{"client_ip"},
	)
)
