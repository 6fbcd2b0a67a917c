// Package instrumentation provides OpenTelemetry metrics for inboxd.
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of cached inbox sessions
//
// Mail Provider Metrics:
//   - provider_api_operations_total: Counter of provider API operations by operation and status
//   - provider_api_operation_duration_seconds: Histogram of provider API operation durations
//   - normalize_failures_total: Counter of messages that degraded to the error record
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, stdout, default: prometheus)
//   - PROMETHEUS_ENDPOINT: Path for the metrics endpoint (default: /metrics)
//   - OTEL_SERVICE_NAME: Service name (default: inboxd)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "inboxd",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordHTTPRequest(ctx, "GET", "/api/v1/messages", 200, time.Since(start))
//	recorder.RecordProviderOperation(ctx, instrumentation.OperationList, instrumentation.StatusSuccess, time.Since(start))
package instrumentation
