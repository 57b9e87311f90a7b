package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/teemow/gdrive-upload/internal/logging"
)

func TestRunWithoutTarget(t *testing.T) {
	store := newFakeStore()
	logger := &recordingLogger{}
	u := New(store, WithLogger(logger))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", ChildFolder: "a"})
	require.NoError(t, err)

	assert.Equal(t, TargetNone, report.Target)
	assert.Equal(t, store.children("root")[0].id, report.FolderID)
	assert.Empty(t, report.Results)
	assert.Empty(t, store.callsOf("upload"))
	assert.Contains(t, logger.messages, "no target specified, skipping upload")
}

func TestRunWithoutTargetOrChildFolder(t *testing.T) {
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root"})
	require.NoError(t, err)
	assert.Equal(t, "root", report.FolderID)
	assert.Empty(t, store.calls)
}

func TestRunSingleFile(t *testing.T) {
	dir := writeLocal(t, map[string]string{"report.pdf": "pdf"})
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{
		ParentFolderID: "root",
		Target:         filepath.Join(dir, "report.pdf"),
		Name:           "latest.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, TargetFile, report.Target)
	assert.Equal(t, "root", report.FolderID)
	require.Len(t, report.Results, 1)
	assert.Equal(t, []string{"latest.pdf"}, store.callsOf("upload"))

	first, ok := report.First()
	require.True(t, ok)
	assert.Equal(t, report.Results[0], first)
}

func TestRunDirectory(t *testing.T) {
	dir := writeLocal(t, map[string]string{
		"x.txt":      "x",
		"y.txt":      "y",
		"z/":         "",
		"z/deep.txt": "deep",
	})
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{
		ParentFolderID: "root",
		ChildFolder:    "builds",
		Target:         dir,
		Name:           "ignored.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, TargetDirectory, report.Target)
	assert.Equal(t, []string{"x.txt", "y.txt"}, store.callsOf("upload"))
	assert.Equal(t, []string{"builds"}, store.callsOf("create_folder"))
	require.Len(t, report.Results, 2)
	assert.Equal(t, "x", store.byID(report.Results[0].ID).content)
	assert.Equal(t, "y", store.byID(report.Results[1].ID).content)

	first, ok := report.First()
	require.True(t, ok)
	assert.Equal(t, report.Results[0].ID, first.ID)
	assert.Equal(t, ViewURL(first.ID), first.URL)

	for _, r := range report.Results {
		assert.Equal(t, report.FolderID, store.byID(r.ID).parent)
	}
}

func TestRunDirectoryFollowsFileSymlinks(t *testing.T) {
	dir := writeLocal(t, map[string]string{"a.txt": "a"})
	outside := writeLocal(t, map[string]string{"shared.txt": "s", "nested/": ""})
	if err := os.Symlink(filepath.Join(outside, "shared.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "nested"), filepath.Join(dir, "dir-link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone.txt"), filepath.Join(dir, "broken.txt")))
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "link.txt"}, store.callsOf("upload"))
	require.Len(t, report.Results, 2)
	assert.Equal(t, "s", store.byID(report.Results[1].ID).content)
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := writeLocal(t, map[string]string{"only-a-dir/": ""})
	store := newFakeStore()
	logger := &recordingLogger{}
	u := New(store, WithLogger(logger))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	_, ok := report.First()
	assert.False(t, ok)
	assert.Empty(t, store.callsOf("upload"))
	assert.Contains(t, logger.messages, "no files found in directory")
}

func TestRunMissingTarget(t *testing.T) {
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{
		ParentFolderID: "root",
		ChildFolder:    "builds",
		Target:         filepath.Join(t.TempDir(), "nope"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NotNil(t, report, "resolved folder is still reported")
	builds := store.children("root")
	require.Len(t, builds, 1)
	assert.Equal(t, builds[0].id, report.FolderID)
	assert.Empty(t, report.Results)
}

func TestRunFolderFailureHasNoReport(t *testing.T) {
	remoteErr := errors.New("backend unavailable")
	store := newFakeStore()
	store.errs["create_folder"] = remoteErr
	u := New(store, WithLogger(logging.Discard()))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", ChildFolder: "a"})
	assert.ErrorIs(t, err, remoteErr)
	assert.Nil(t, report)
}

func TestRunEnumerationFailure(t *testing.T) {
	readErr := errors.New("permission denied")

	t.Run("soft fail", func(t *testing.T) {
		dir := writeLocal(t, map[string]string{"a.txt": "a"})
		store := newFakeStore()
		logger := &recordingLogger{}
		u := New(store, WithLogger(logger))
		u.readDir = func(string) ([]os.DirEntry, error) { return nil, readErr }

		report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
		require.NoError(t, err)
		assert.Empty(t, report.Results)
		assert.Empty(t, store.callsOf("upload"))
		assert.Contains(t, logger.messages, "failed to read directory, treating it as empty")
	})

	t.Run("hard fail", func(t *testing.T) {
		dir := writeLocal(t, map[string]string{"a.txt": "a"})
		store := newFakeStore()
		u := New(store, WithLogger(logging.Discard()), WithEnumerationPolicy(HardFail))
		u.readDir = func(string) ([]os.DirEntry, error) { return nil, readErr }

		_, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
		assert.Empty(t, store.callsOf("upload"))
	})
}

func TestRunDirectoryStopsAtFirstFailure(t *testing.T) {
	dir := writeLocal(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	store := newFakeStore()
	store.addFile("a.txt", "root", "old")
	store.addFile("a.txt", "root", "older")
	u := New(store, WithLogger(logging.Discard()), WithOverwrite(true))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguous)
	require.NotNil(t, report)
	assert.Equal(t, "root", report.FolderID)
	assert.Empty(t, report.Results)
	assert.Empty(t, store.callsOf("upload"))
	assert.Equal(t, []string{"a.txt"}, store.callsOf("find_files"))
}

func TestRunConcurrentKeepsOrder(t *testing.T) {
	files := map[string]string{}
	var names []string
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("file-%02d.txt", i)
		files[name] = name
		names = append(names, name)
	}
	dir := writeLocal(t, files)
	store := newFakeStore()
	u := New(store, WithLogger(logging.Discard()), WithConcurrency(4))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
	require.NoError(t, err)
	require.Len(t, report.Results, len(names))

	for i, r := range report.Results {
		assert.Equal(t, names[i], store.byID(r.ID).name)
	}
	assert.ElementsMatch(t, names, store.callsOf("upload"))
}

func TestRunConcurrentFailure(t *testing.T) {
	dir := writeLocal(t, map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})
	remoteErr := errors.New("quota exceeded")
	store := newFakeStore()
	store.errs["upload"] = remoteErr
	u := New(store, WithLogger(logging.Discard()), WithConcurrency(2))

	report, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: dir})
	assert.ErrorIs(t, err, remoteErr)
	require.NotNil(t, report)
	assert.Equal(t, "root", report.FolderID)
	assert.Empty(t, report.Results)
}

// recordSpans installs an in-memory tracer provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func spanStatuses(recorder *tracetest.SpanRecorder) map[string]codes.Code {
	statuses := make(map[string]codes.Code)
	for _, span := range recorder.Ended() {
		statuses[span.Name()] = span.Status().Code
	}
	return statuses
}

func TestRunMarksSpansFailed(t *testing.T) {
	remoteErr := errors.New("quota exceeded")

	t.Run("folder creation", func(t *testing.T) {
		recorder := recordSpans(t)
		store := newFakeStore()
		store.errs["create_folder"] = remoteErr
		u := New(store, WithLogger(logging.Discard()))

		_, err := u.Run(context.Background(), Request{ParentFolderID: "root", ChildFolder: "a"})
		require.Error(t, err)

		statuses := spanStatuses(recorder)
		assert.Equal(t, codes.Error, statuses["upload.resolve_folder"])
		assert.Equal(t, codes.Error, statuses["upload.run"])
	})

	t.Run("file upload", func(t *testing.T) {
		recorder := recordSpans(t)
		dir := writeLocal(t, map[string]string{"a.txt": "a"})
		store := newFakeStore()
		store.errs["upload"] = remoteErr
		u := New(store, WithLogger(logging.Discard()))

		_, err := u.Run(context.Background(), Request{ParentFolderID: "root", Target: filepath.Join(dir, "a.txt")})
		require.Error(t, err)

		statuses := spanStatuses(recorder)
		assert.Equal(t, codes.Error, statuses["upload.file"])
		assert.Equal(t, codes.Error, statuses["upload.run"])
	})

	t.Run("success", func(t *testing.T) {
		recorder := recordSpans(t)
		dir := writeLocal(t, map[string]string{"a.txt": "a"})
		u := New(newFakeStore(), WithLogger(logging.Discard()))

		_, err := u.Run(context.Background(), Request{ParentFolderID: "root", ChildFolder: "a", Target: dir})
		require.NoError(t, err)

		statuses := spanStatuses(recorder)
		assert.Equal(t, codes.Unset, statuses["upload.resolve_folder"])
		assert.Equal(t, codes.Unset, statuses["upload.file"])
		assert.Equal(t, codes.Unset, statuses["upload.run"])
	})
}
