package uploader

import (
	"context"
	"io"
	"os"

	"github.com/teemow/gdrive-upload/internal/drive"
	"github.com/teemow/gdrive-upload/internal/instrumentation"
	"github.com/teemow/gdrive-upload/internal/logging"
)

// Store is the subset of the Drive API the upload flow needs.
type Store interface {
	// FindFolders lists non-trashed entries named name directly under parentID,
	// across all shared drives.
	FindFolders(ctx context.Context, name, parentID string) ([]*drive.FileInfo, error)

	// FindFiles lists entries named name directly under folderID. Trashed
	// entries are included unless excludeTrashed is set.
	FindFiles(ctx context.Context, name, folderID string, excludeTrashed bool) ([]*drive.FileInfo, error)

	// CreateFolder creates a folder named name under the given parents.
	CreateFolder(ctx context.Context, name string, parentFolders []string) (*drive.FileInfo, error)

	// UploadFile creates a new file from content with the given metadata.
	UploadFile(ctx context.Context, name string, content io.Reader, options *drive.UploadOptions) (*drive.FileInfo, error)

	// UpdateFileContent replaces the content of an existing file, leaving its
	// metadata untouched.
	UpdateFileContent(ctx context.Context, fileID string, content io.Reader) (*drive.FileInfo, error)
}

// Uploader drives folder resolution and file uploads against a Store.
type Uploader struct {
	store   Store
	logger  logging.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger

	owner               string
	overwrite           bool
	excludeTrashedFiles bool
	concurrency         int
	enumerationPolicy   FailurePolicy

	readDir func(name string) ([]os.DirEntry, error)
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithLogger sets the logger for progress lines.
func WithLogger(logger logging.Logger) Option {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithOverwrite enables updating an existing same-named file in place.
func WithOverwrite(overwrite bool) Option {
	return func(u *Uploader) {
		u.overwrite = overwrite
	}
}

// WithExcludeTrashedFiles makes the file lookup ignore trashed entries.
func WithExcludeTrashedFiles(exclude bool) Option {
	return func(u *Uploader) {
		u.excludeTrashedFiles = exclude
	}
}

// WithConcurrency sets how many directory entries are uploaded at once.
// Values below 1 mean sequential.
func WithConcurrency(n int) Option {
	return func(u *Uploader) {
		if n < 1 {
			n = 1
		}
		u.concurrency = n
	}
}

// WithEnumerationPolicy sets how local directory read failures are handled.
func WithEnumerationPolicy(p FailurePolicy) Option {
	return func(u *Uploader) {
		u.enumerationPolicy = p
	}
}

// WithMetrics records upload counters on m.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(u *Uploader) {
		if m != nil {
			u.metrics = m
		}
	}
}

// WithAuditLogger records every remote mutation on al.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(u *Uploader) {
		u.audit = al
	}
}

// WithOwner records the impersonated owner in audit entries.
func WithOwner(owner string) Option {
	return func(u *Uploader) {
		u.owner = owner
	}
}

// New creates an Uploader over store.
func New(store Store, opts ...Option) *Uploader {
	u := &Uploader{
		store:             store,
		logger:            logging.DefaultLogger(),
		metrics:           &instrumentation.Metrics{},
		concurrency:       1,
		enumerationPolicy: SoftFail,
		readDir:           os.ReadDir,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// auditMutation logs m if an audit logger is configured.
func (u *Uploader) auditMutation(m *instrumentation.Mutation) {
	if u.audit != nil {
		u.audit.LogMutation(m)
	}
}
