package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/teemow/gdrive-upload/internal/instrumentation"
	"github.com/teemow/gdrive-upload/internal/logging"
)

// Run resolves the destination folder and uploads req.Target into it.
//
// Without a target only the folder is resolved. A file target is uploaded
// once, honouring req.Name. A directory target has each of its direct regular
// files uploaded under its own base name; subdirectories are not descended.
// Results keep the directory's enumeration order.
//
// Once the folder is resolved, failures still return the Report, holding
// FolderID and no Results, next to the error.
func (u *Uploader) Run(ctx context.Context, req Request) (report *Report, err error) {
	ctx, span := instrumentation.StartSpan(ctx, "upload.run")
	defer func() {
		instrumentation.SetSpanError(span, err)
		span.End()
	}()

	folderID, err := u.ResolveFolder(ctx, req.ParentFolderID, req.ChildFolder)
	if err != nil {
		return nil, err
	}
	report = &Report{FolderID: folderID, Target: TargetNone}

	if req.Target == "" {
		u.logger.Info("no target specified, skipping upload", logging.FolderID(folderID))
		return report, nil
	}

	info, err := os.Stat(req.Target)
	if err != nil {
		return report, fmt.Errorf("failed to stat target %s: %w", req.Target, err)
	}

	if !info.IsDir() {
		report.Target = TargetFile
		result, err := u.UploadFile(ctx, req.Target, folderID, req.Name)
		if err != nil {
			return report, err
		}
		report.Results = []Result{result}
		return report, nil
	}

	report.Target = TargetDirectory
	if req.Name != "" {
		u.logger.Debug("name override is ignored for directory uploads", logging.Name(req.Name))
	}

	files, err := u.listFiles(req.Target)
	if err != nil {
		return report, err
	}
	if len(files) == 0 {
		u.logger.Info("no files found in directory", logging.Path(req.Target))
		return report, nil
	}

	u.logger.Info("uploading directory", logging.Path(req.Target), logging.Count(len(files)))
	results, err := u.uploadAll(ctx, files, folderID)
	if err != nil {
		return report, err
	}
	report.Results = results
	return report, nil
}

// listFiles returns the paths of the regular files directly inside dir, in
// lexical order. Symlinks count when they resolve to a regular file. Read
// failures are handled by the enumeration policy.
func (u *Uploader) listFiles(dir string) ([]string, error) {
	entries, err := u.readDir(dir)
	if err != nil {
		if u.PolicyFor(KindEnumeration) == HardFail {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		u.logger.Warn("failed to read directory, treating it as empty", logging.Path(dir), logging.Err(err))
		return nil, nil
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				u.logger.Debug("skipping unresolvable symlink", logging.Path(path), logging.Err(err))
				continue
			}
			mode = info.Mode()
		}
		if !mode.IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// uploadAll uploads files into folderID, at most u.concurrency at a time, and
// returns their results in the order of files.
func (u *Uploader) uploadAll(ctx context.Context, files []string, folderID string) ([]Result, error) {
	results := make([]Result, len(files))

	if u.concurrency <= 1 {
		for i, path := range files {
			result, err := u.UploadFile(ctx, path, folderID, "")
			if err != nil {
				return nil, err
			}
			results[i] = result
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for i, path := range files {
		g.Go(func() error {
			result, err := u.UploadFile(gctx, path, folderID, "")
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
