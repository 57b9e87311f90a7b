package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrMode      = "mode"
)

// Metrics provides methods for recording observability metrics.
// The zero value records nothing.
type Metrics struct {
	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// Upload metrics
	filesUploadedTotal   metric.Int64Counter
	uploadBytesTotal     metric.Int64Counter
	foldersResolvedTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	// Google API Metrics
	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	// Upload Metrics
	m.filesUploadedTotal, err = meter.Int64Counter(
		"drive_files_uploaded_total",
		metric.WithDescription("Total number of files uploaded to Drive by mode and status"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_files_uploaded_total counter: %w", err)
	}

	m.uploadBytesTotal, err = meter.Int64Counter(
		"drive_upload_bytes_total",
		metric.WithDescription("Total number of bytes uploaded to Drive"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_upload_bytes_total counter: %w", err)
	}

	m.foldersResolvedTotal, err = meter.Int64Counter(
		"drive_folders_resolved_total",
		metric.WithDescription("Total number of child folder segments resolved, by whether they were created or reused"),
		metric.WithUnit("{folder}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive_folders_resolved_total counter: %w", err)
	}

	return m, nil
}

// RecordGoogleAPIOperation records a Google API operation with service, operation,
// status, and duration.
//
// Parameters:
//   - service: Google service name (drive)
//   - operation: Operation type (list, create, update)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordFileUpload records a file upload. Mode is "create" or "update";
// bytes is only added to the byte counter for successful uploads.
func (m *Metrics) RecordFileUpload(ctx context.Context, mode, status string, bytes int64) {
	if m.filesUploadedTotal == nil || m.uploadBytesTotal == nil {
		return // Instrumentation not initialized
	}

	m.filesUploadedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrMode, mode),
		attribute.String(attrStatus, status),
	))
	if status == StatusSuccess && bytes > 0 {
		m.uploadBytesTotal.Add(ctx, bytes, metric.WithAttributes(
			attribute.String(attrMode, mode),
		))
	}
}

// RecordFolderResolution records one resolved child folder segment.
// Result should be one of: "created", "reused"
func (m *Metrics) RecordFolderResolution(ctx context.Context, result string) {
	if m.foldersResolvedTotal == nil {
		return // Instrumentation not initialized
	}

	m.foldersResolvedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}
