// Package instrumentation provides OpenTelemetry instrumentation for
// gdrive-upload.
//
// Instrumentation is off by default; a CI step usually has nowhere to send
// telemetry. When enabled it provides:
//   - OpenTelemetry metrics for Drive API calls and uploads
//   - Distributed tracing for the upload run and each Drive API call
//   - A Prometheus textfile written on shutdown, for runners with a
//     node_exporter textfile collector
//   - OTLP export support for observability platforms
//
// # Metrics
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Drive API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Drive API operation durations
//
// Upload Metrics:
//   - drive_files_uploaded_total: Counter of uploaded files by mode (create, update) and status
//   - drive_upload_bytes_total: Counter of bytes uploaded by mode
//   - drive_folders_resolved_total: Counter of child folder segments by result (created, reused)
//
// # Tracing
//
// Spans are created for:
//   - The upload run (upload.run), folder resolution and each file (upload.file)
//   - Drive API calls (google.drive.<operation>)
//
// # Audit Logging
//
// Every folder or file created and every file overwritten is recorded by the
// AuditLogger. The impersonated owner is reduced to its domain unless
// AUDIT_LOGGING_INCLUDE_PII is set.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - OTEL_SERVICE_NAME: Service name (default: gdrive-upload)
//   - PROMETHEUS_TEXTFILE: Path of the textfile written on shutdown
//   - AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_PII: Audit log controls
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordFileUpload(ctx, instrumentation.UploadModeCreate, instrumentation.StatusSuccess, size)
package instrumentation
