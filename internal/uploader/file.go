package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/teemow/gdrive-upload/internal/drive"
	"github.com/teemow/gdrive-upload/internal/instrumentation"
	"github.com/teemow/gdrive-upload/internal/logging"
)

// LocateFile returns the ID of the file named name in folderID, or "" when
// there is none.
func (u *Uploader) LocateFile(ctx context.Context, name, folderID string) (string, error) {
	files, err := u.store.FindFiles(ctx, name, folderID, u.excludeTrashedFiles)
	if err != nil {
		return "", err
	}

	switch len(files) {
	case 0:
		return "", nil
	case 1:
		return files[0].ID, nil
	default:
		return "", newAmbiguityError(EntryFile, name, folderID, len(files))
	}
}

// UploadFile uploads the file at localPath into folderID under name, or under
// the base name of localPath when name is empty. With overwrite enabled an
// existing file of the same name gets its content replaced; otherwise a new
// file is always created.
func (u *Uploader) UploadFile(ctx context.Context, localPath, folderID, name string) (_ Result, err error) {
	if name == "" {
		name = filepath.Base(localPath)
	}

	ctx, span := instrumentation.StartSpan(ctx, "upload.file",
		instrumentation.NewSpanAttributeBuilder().
			WithService(instrumentation.ServiceDrive).
			WithResource(instrumentation.ResourceTypeFile, name).
			WithParent(folderID).
			Build()...)
	defer func() {
		instrumentation.SetSpanError(span, err)
		span.End()
	}()

	existingID := ""
	if u.overwrite {
		id, err := u.LocateFile(ctx, name, folderID)
		if err != nil {
			return Result{}, err
		}
		existingID = id
	}

	f, err := os.Open(localPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	var (
		file     *drive.FileInfo
		mode     string
		mutation *instrumentation.Mutation
	)
	if existingID == "" {
		if u.overwrite {
			u.logger.Info("file does not exist yet, creating it", logging.Name(name))
		} else {
			u.logger.Info("creating file", logging.Name(name))
		}
		mode = instrumentation.UploadModeCreate
		mutation = instrumentation.NewMutation(instrumentation.MutationCreateFile).
			WithTarget(name, folderID)
		file, err = u.store.UploadFile(ctx, name, f, &drive.UploadOptions{
			ParentFolders: []string{folderID},
			MimeType:      u.detectMimeType(f, name),
		})
	} else {
		u.logger.Info("file already exists, overriding it", logging.Name(name), logging.FileID(existingID))
		mode = instrumentation.UploadModeUpdate
		mutation = instrumentation.NewMutation(instrumentation.MutationUpdateFile).
			WithTarget(name, folderID)
		file, err = u.store.UpdateFileContent(ctx, existingID, f)
	}
	mutation.WithOwner(u.owner).WithSpanContext(ctx)
	if err != nil {
		u.auditMutation(mutation.CompleteWithError(err))
		u.metrics.RecordFileUpload(ctx, mode, instrumentation.StatusError, 0)
		return Result{}, err
	}

	u.auditMutation(mutation.CompleteSuccess(file.ID))
	u.metrics.RecordFileUpload(ctx, mode, instrumentation.StatusSuccess, size)

	result := newResult(file.ID)
	u.logger.Info("uploaded file", logging.Name(name), logging.FileID(result.ID), logging.URL(result.URL))
	return result, nil
}

// detectMimeType sniffs the content type from the head of f and rewinds it.
// An empty result leaves the type to Drive.
func (u *Uploader) detectMimeType(f *os.File, name string) string {
	mtype, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		err = seekErr
	}
	if err != nil {
		u.logger.Debug("could not detect content type", logging.Name(name), logging.Err(err))
		return ""
	}
	return mtype.String()
}
