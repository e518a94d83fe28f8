// Package metrics provides Prometheus metrics for monitoring sitemap delivery.
//
// The metrics package is organized into logical modules:
//
//   - delivery.go: Sitemap file delivery performance and outcome metrics
//   - http.go: HTTP request performance and rate limiting metrics
//   - watcher.go: Sitemap directory watcher metrics
//   - journal.go: Request journal persistence metrics
//
// Usage Examples:
//
// Recording a delivery:
//
//	start := time.Now()
//	metrics.ActiveDeliveries.Inc()
//	defer metrics.ActiveDeliveries.Dec()
//	// ... stream the file ...
//	metrics.DeliveryDuration.WithLabelValues("html").Observe(time.Since(start).Seconds())
//	metrics.DeliveriesTotal.WithLabelValues("html", "success").Inc()
//
// All metrics are automatically registered with Prometheus and exposed
// via the /metrics endpoint when the server starts.
package metrics
