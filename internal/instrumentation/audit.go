package instrumentation

import (
	"context"
	"log/slog"
	"time"
)

// Mutation kinds recorded by the audit log.
const (
	MutationCreateFolder = "create_folder"
	MutationCreateFile   = "create_file"
	MutationUpdateFile   = "update_file"
)

// Mutation captures a single change made to Drive for audit logging.
//
// # Privacy Considerations
//
// The Owner field holds the impersonated user's email address, which is PII.
// LogAttrs only exposes its domain; LogAuditAttrs exposes the full address.
type Mutation struct {
	// Operation is one of the Mutation* constants
	Operation string

	// Name of the file or folder, and the folder it was placed in
	Name     string
	ParentID string

	// Owner is the impersonated user, if any
	Owner string

	// ResourceID is the ID of the created or updated entry
	ResourceID string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewMutation creates a new Mutation with timing started.
// Call CompleteSuccess or CompleteWithError when the remote call returns.
func NewMutation(operation string) *Mutation {
	return &Mutation{
		Operation: operation,
		StartTime: time.Now(),
	}
}

// WithTarget sets the entry name and its parent folder.
func (m *Mutation) WithTarget(name, parentID string) *Mutation {
	m.Name = name
	m.ParentID = parentID
	return m
}

// WithOwner sets the impersonated owner.
func (m *Mutation) WithOwner(owner string) *Mutation {
	m.Owner = owner
	return m
}

// WithSpanContext extracts trace context from the current span.
func (m *Mutation) WithSpanContext(ctx context.Context) *Mutation {
	m.TraceID = GetTraceID(ctx)
	m.SpanID = GetSpanID(ctx)
	return m
}

// OwnerDomain returns the domain portion of the owner's email, or "" when
// there is no owner.
func (m *Mutation) OwnerDomain() string {
	if m.Owner == "" {
		return ""
	}
	return ExtractUserDomain(m.Owner)
}

// Status returns "success" or "error" based on the Success field.
func (m *Mutation) Status() string {
	if m.Success {
		return StatusSuccess
	}
	return StatusError
}

// CompleteSuccess marks the mutation as successful.
func (m *Mutation) CompleteSuccess(resourceID string) *Mutation {
	m.Duration = time.Since(m.StartTime)
	m.Success = true
	m.ResourceID = resourceID
	return m
}

// CompleteWithError marks the mutation as failed with the given error.
func (m *Mutation) CompleteWithError(err error) *Mutation {
	m.Duration = time.Since(m.StartTime)
	m.Success = false
	if err != nil {
		m.Error = err.Error()
	}
	return m
}

// LogAttrs returns slog attributes with the owner reduced to its domain.
func (m *Mutation) LogAttrs() []slog.Attr {
	attrs := m.baseAttrs()
	if domain := m.OwnerDomain(); domain != "" {
		attrs = append(attrs, slog.String("owner_domain", domain))
	}
	return m.appendOptional(attrs)
}

// LogAuditAttrs returns slog attributes including the full owner address.
func (m *Mutation) LogAuditAttrs() []slog.Attr {
	attrs := m.baseAttrs()
	if m.Owner != "" {
		attrs = append(attrs, slog.String("owner", m.Owner))
	}
	return m.appendOptional(attrs)
}

func (m *Mutation) baseAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("operation", m.Operation),
		slog.String("name", m.Name),
		slog.String("parent_id", m.ParentID),
		slog.Duration("duration", m.Duration),
		slog.Bool("success", m.Success),
	}
}

func (m *Mutation) appendOptional(attrs []slog.Attr) []slog.Attr {
	if m.ResourceID != "" {
		attrs = append(attrs, slog.String("resource_id", m.ResourceID))
	}
	if m.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", m.TraceID))
	}
	if m.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", m.SpanID))
	}
	if m.Error != "" {
		attrs = append(attrs, slog.String("error", m.Error))
	}
	return attrs
}

// AuditLogger provides structured audit logging for Drive mutations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
// PII is only included when config.IncludePII is set.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogMutation logs a Drive mutation. The owner's full address is only
// included when the logger was configured with IncludePII.
func (al *AuditLogger) LogMutation(m *Mutation) {
	if al == nil || !al.enabled || m == nil {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = m.LogAuditAttrs()
	} else {
		attrs = m.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if m.Success {
		al.logger.Info("drive_mutation", args...)
	} else {
		al.logger.Warn("drive_mutation_failed", args...)
	}
}
