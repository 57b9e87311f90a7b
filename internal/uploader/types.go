package uploader

import "fmt"

const viewURLFormat = "https://drive.google.com/file/d/%s/view"

// ViewURL returns the browser URL for a Drive file identifier.
func ViewURL(id string) string {
	return fmt.Sprintf(viewURLFormat, id)
}

// Result identifies one uploaded file.
type Result struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// newResult builds the Result for a Drive file identifier.
func newResult(id string) Result {
	return Result{ID: id, URL: ViewURL(id)}
}

// TargetKind describes what Run found at the target path.
type TargetKind string

const (
	// TargetNone means no target was given; only the folder was resolved.
	TargetNone TargetKind = "none"
	// TargetFile means a single file was uploaded.
	TargetFile TargetKind = "file"
	// TargetDirectory means the direct children of a directory were uploaded.
	TargetDirectory TargetKind = "directory"
)

// Request describes one run of the upload flow.
type Request struct {
	// ParentFolderID is the Drive folder everything happens under.
	ParentFolderID string

	// ChildFolder is an optional slash-separated path resolved under the parent.
	ChildFolder string

	// Target is the local file or directory to upload. Empty means folder
	// resolution only.
	Target string

	// Name overrides the remote file name for single-file uploads.
	// It is ignored for directory uploads.
	Name string
}

// Report is the outcome of Run.
type Report struct {
	// FolderID is the resolved destination folder.
	FolderID string `json:"folder_id"`

	// Target is what was found at the target path.
	Target TargetKind `json:"target"`

	// Results lists uploaded files in enumeration order.
	Results []Result `json:"uploaded_files"`
}

// First returns the first uploaded file, if any.
func (r *Report) First() (Result, bool) {
	if r == nil || len(r.Results) == 0 {
		return Result{}, false
	}
	return r.Results[0], true
}
