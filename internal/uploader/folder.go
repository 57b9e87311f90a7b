package uploader

import (
	"context"
	"log/slog"
	"strings"

	"github.com/teemow/gdrive-upload/internal/instrumentation"
	"github.com/teemow/gdrive-upload/internal/logging"
)

// SplitFolderPath splits a slash-separated folder path into its segments,
// trimming whitespace and dropping empty segments.
func SplitFolderPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// ResolveFolder makes sure every segment of childPath exists under parentID,
// creating the missing ones, and returns the deepest folder's ID. An empty
// childPath returns parentID without any remote call.
func (u *Uploader) ResolveFolder(ctx context.Context, parentID, childPath string) (_ string, err error) {
	segments := SplitFolderPath(childPath)
	if len(segments) == 0 {
		return parentID, nil
	}

	ctx, span := instrumentation.StartSpan(ctx, "upload.resolve_folder",
		instrumentation.NewSpanAttributeBuilder().
			WithService(instrumentation.ServiceDrive).
			WithResource(instrumentation.ResourceTypeFolder, childPath).
			WithParent(parentID).
			Build()...)
	defer func() {
		instrumentation.SetSpanError(span, err)
		span.End()
	}()

	current := parentID
	for _, name := range segments {
		folders, err := u.store.FindFolders(ctx, name, current)
		if err != nil {
			return "", err
		}

		switch len(folders) {
		case 0:
			mutation := instrumentation.NewMutation(instrumentation.MutationCreateFolder).
				WithTarget(name, current).
				WithOwner(u.owner).
				WithSpanContext(ctx)
			folder, err := u.store.CreateFolder(ctx, name, []string{current})
			if err != nil {
				u.auditMutation(mutation.CompleteWithError(err))
				return "", err
			}
			u.auditMutation(mutation.CompleteSuccess(folder.ID))
			u.metrics.RecordFolderResolution(ctx, instrumentation.FolderCreated)
			u.logger.Info("created new folder", logging.Name(name), logging.FolderID(folder.ID))
			current = folder.ID
		case 1:
			if !folders[0].IsFolder() {
				u.logger.Debug("reusing entry that is not a folder",
					logging.Name(name), logging.FolderID(folders[0].ID), slog.String("mime_type", folders[0].MimeType))
			}
			u.metrics.RecordFolderResolution(ctx, instrumentation.FolderReused)
			u.logger.Info("using existing folder", logging.Name(name), logging.FolderID(folders[0].ID))
			current = folders[0].ID
		default:
			return "", newAmbiguityError(EntryFolder, name, current, len(folders))
		}
	}

	return current, nil
}
