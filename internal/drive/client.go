package drive

import (
	"context"
	"fmt"
	"io"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/gdrive-upload/internal/instrumentation"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	fileFields     = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, trashed"
	fileListFields = "nextPageToken, files(" + fileFields + ")"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
	metrics *instrumentation.Metrics
}

// NewClient creates a Drive client. The authenticated HTTP client is passed in
// opts, typically with option.WithHTTPClient.
func NewClient(ctx context.Context, metrics *instrumentation.Metrics, opts ...option.ClientOption) (*Client, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	return &Client{
		service: driveService,
		metrics: metrics,
	}, nil
}

// observe runs fn inside a Drive API span and records its outcome. The error
// from fn is returned as it is, so callers see the *googleapi.Error.
func (c *Client) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceDrive, operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	}
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceDrive, operation, status, time.Since(start))
	return err
}

// FindFolders lists the non-trashed entries called name directly under
// parentID, searching all drives the caller can reach.
func (c *Client) FindFolders(ctx context.Context, name, parentID string) ([]*FileInfo, error) {
	return c.list(ctx, folderQuery(name, parentID))
}

// FindFiles lists the entries called name directly under folderID. Trashed
// entries are part of the result unless excludeTrashed is set.
func (c *Client) FindFiles(ctx context.Context, name, folderID string, excludeTrashed bool) ([]*FileInfo, error) {
	return c.list(ctx, fileQuery(name, folderID, excludeTrashed))
}

// list runs a Drive query and collects every page of results.
func (c *Client) list(ctx context.Context, query string) ([]*FileInfo, error) {
	var files []*FileInfo
	err := c.observe(ctx, instrumentation.OperationList, func(ctx context.Context) error {
		return c.service.Files.List().
			Q(query).
			Fields(fileListFields).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Pages(ctx, func(page *drive.FileList) error {
				for _, f := range page.Files {
					files = append(files, convertToFileInfo(f))
				}
				return nil
			})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// CreateFolder creates a new folder in Google Drive
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}

	if len(parentFolders) > 0 {
		file.Parents = parentFolders
	}

	var created *drive.File
	err := c.observe(ctx, instrumentation.OperationCreate, func(ctx context.Context) error {
		var err error
		created, err = c.service.Files.Create(file).
			Context(ctx).
			SupportsAllDrives(true).
			Fields(fileFields).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	return convertToFileInfo(created), nil
}

// UploadFile uploads a file to Google Drive. Metadata and content travel in a
// single multipart request; content is streamed, not buffered.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, options *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{
		Name: name,
	}

	if options != nil {
		if len(options.ParentFolders) > 0 {
			file.Parents = options.ParentFolders
		}
		if options.Description != "" {
			file.Description = options.Description
		}
		if options.MimeType != "" {
			file.MimeType = options.MimeType
		}
	}

	var created *drive.File
	err := c.observe(ctx, instrumentation.OperationCreate, func(ctx context.Context) error {
		var err error
		created, err = c.service.Files.Create(file).
			Context(ctx).
			Media(content, mediaOptions(file.MimeType)...).
			SupportsAllDrives(true).
			Fields(fileFields).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	return convertToFileInfo(created), nil
}

// UpdateFileContent replaces the content of fileID. The file's metadata,
// including its name and parents, is left as it is.
func (c *Client) UpdateFileContent(ctx context.Context, fileID string, content io.Reader) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	var updated *drive.File
	err := c.observe(ctx, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		updated, err = c.service.Files.Update(fileID, &drive.File{}).
			Context(ctx).
			Media(content, mediaOptions("")...).
			SupportsAllDrives(true).
			Fields(fileFields).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	return convertToFileInfo(updated), nil
}

// mediaOptions disables chunking so the upload is a single multipart request.
func mediaOptions(mimeType string) []googleapi.MediaOption {
	opts := []googleapi.MediaOption{googleapi.ChunkSize(0)}
	if mimeType != "" {
		opts = append(opts, googleapi.ContentType(mimeType))
	}
	return opts
}

// convertToFileInfo converts a Drive API File to our FileInfo type
func convertToFileInfo(f *drive.File) *FileInfo {
	fileInfo := &FileInfo{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
		Trashed:     f.Trashed,
	}

	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			fileInfo.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			fileInfo.ModifiedTime = t
		}
	}

	return fileInfo
}
