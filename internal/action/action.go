package action

import (
	"encoding/json"
	"fmt"

	"github.com/sethvargo/go-githubactions"

	"github.com/teemow/gdrive-upload/internal/uploader"
)

// Step output names.
const (
	OutputFolderID      = "folder_id"
	OutputFileID        = "file_id"
	OutputFileURL       = "file_url"
	OutputUploadedFiles = "uploaded_files"
)

// Output describes a step output.
type Output struct {
	Name        string
	Description string
}

// Outputs lists every step output in the order PublishReport sets them.
var Outputs = []Output{
	{Name: OutputFolderID, Description: "ID of the resolved destination folder"},
	{Name: OutputFileID, Description: "ID of the first uploaded file"},
	{Name: OutputFileURL, Description: "Web view URL of the first uploaded file"},
	{Name: OutputUploadedFiles, Description: "JSON array of {id, url} objects, one per uploaded file"},
}

// Reporter writes step outputs and annotations.
type Reporter struct {
	action *githubactions.Action
}

// NewReporter creates a Reporter on top of a githubactions.Action.
func NewReporter(action *githubactions.Action) *Reporter {
	if action == nil {
		action = githubactions.New()
	}
	return &Reporter{action: action}
}

// PublishReport sets folder_id, and when at least one file was uploaded,
// file_id and file_url of the first upload plus uploaded_files holding every
// upload as a JSON array of {id, url} objects.
func (r *Reporter) PublishReport(report *uploader.Report) error {
	if report == nil {
		return fmt.Errorf("no report to publish")
	}

	r.PublishFolder(report.FolderID)

	first, ok := report.First()
	if !ok {
		return nil
	}
	r.action.SetOutput(OutputFileID, first.ID)
	r.action.SetOutput(OutputFileURL, first.URL)

	files, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", OutputUploadedFiles, err)
	}
	r.action.SetOutput(OutputUploadedFiles, string(files))
	return nil
}

// PublishFolder sets only folder_id, for runs that fail after the folder was
// resolved.
func (r *Reporter) PublishFolder(folderID string) {
	r.action.SetOutput(OutputFolderID, folderID)
}

// Fail annotates the run with err.
func (r *Reporter) Fail(err error) {
	if err == nil {
		return
	}
	r.action.Errorf("%s", err)
}
