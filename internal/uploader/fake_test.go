package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teemow/gdrive-upload/internal/drive"
)

type fakeEntry struct {
	id       string
	name     string
	parent   string
	mimeType string
	content  string
	trashed  bool
}

// fakeStore is an in-memory Store that records every call.
type fakeStore struct {
	mu      sync.Mutex
	entries []*fakeEntry
	nextID  int
	calls   []string

	// errs fails the named call kind with the given error
	errs map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{errs: map[string]error{}}
}

func (s *fakeStore) add(e *fakeEntry) *fakeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.id == "" {
		s.nextID++
		e.id = fmt.Sprintf("seed-%d", s.nextID)
	}
	s.entries = append(s.entries, e)
	return e
}

func (s *fakeStore) addFolder(name, parent string) *fakeEntry {
	return s.add(&fakeEntry{name: name, parent: parent, mimeType: drive.FolderMimeType})
}

func (s *fakeStore) addFile(name, parent, content string) *fakeEntry {
	return s.add(&fakeEntry{name: name, parent: parent, content: content})
}

func (s *fakeStore) record(call string) error {
	s.calls = append(s.calls, call)
	kind := call
	for i, c := range call {
		if c == ':' {
			kind = call[:i]
			break
		}
	}
	return s.errs[kind]
}

func (s *fakeStore) callsOf(kind string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.calls {
		if len(c) > len(kind) && c[:len(kind)+1] == kind+":" {
			out = append(out, c[len(kind)+1:])
		}
	}
	return out
}

func (s *fakeStore) byID(id string) *fakeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (s *fakeStore) children(parent string) []*fakeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeEntry
	for _, e := range s.entries {
		if e.parent == parent {
			out = append(out, e)
		}
	}
	return out
}

func (s *fakeStore) info(e *fakeEntry) *drive.FileInfo {
	return &drive.FileInfo{
		ID:       e.id,
		Name:     e.name,
		MimeType: e.mimeType,
		Parents:  []string{e.parent},
		Trashed:  e.trashed,
	}
}

func (s *fakeStore) FindFolders(_ context.Context, name, parentID string) ([]*drive.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("find_folders:" + name); err != nil {
		return nil, err
	}
	var out []*drive.FileInfo
	for _, e := range s.entries {
		if e.name == name && e.parent == parentID && !e.trashed {
			out = append(out, s.info(e))
		}
	}
	return out, nil
}

func (s *fakeStore) FindFiles(_ context.Context, name, folderID string, excludeTrashed bool) ([]*drive.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("find_files:" + name); err != nil {
		return nil, err
	}
	var out []*drive.FileInfo
	for _, e := range s.entries {
		if e.name != name || e.parent != folderID {
			continue
		}
		if excludeTrashed && e.trashed {
			continue
		}
		out = append(out, s.info(e))
	}
	return out, nil
}

func (s *fakeStore) CreateFolder(_ context.Context, name string, parentFolders []string) (*drive.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("create_folder:" + name); err != nil {
		return nil, err
	}
	s.nextID++
	e := &fakeEntry{
		id:       fmt.Sprintf("folder-%d", s.nextID),
		name:     name,
		parent:   parentFolders[0],
		mimeType: drive.FolderMimeType,
	}
	s.entries = append(s.entries, e)
	return s.info(e), nil
}

func (s *fakeStore) UploadFile(_ context.Context, name string, content io.Reader, options *drive.UploadOptions) (*drive.FileInfo, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("upload:" + name); err != nil {
		return nil, err
	}
	s.nextID++
	e := &fakeEntry{
		id:       fmt.Sprintf("file-%d", s.nextID),
		name:     name,
		parent:   options.ParentFolders[0],
		mimeType: options.MimeType,
		content:  string(data),
	}
	s.entries = append(s.entries, e)
	return s.info(e), nil
}

func (s *fakeStore) UpdateFileContent(_ context.Context, fileID string, content io.Reader) (*drive.FileInfo, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("update:" + fileID); err != nil {
		return nil, err
	}
	for _, e := range s.entries {
		if e.id == fileID {
			e.content = string(data)
			return s.info(e), nil
		}
	}
	return nil, fmt.Errorf("file %s not found", fileID)
}

// recordingLogger keeps every message it is given.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.log(msg) }

// writeLocal creates files (name -> content) and directories (name ending
// in "/") below a fresh temporary directory and returns its path.
func writeLocal(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}
