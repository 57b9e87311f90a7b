package google

import drive "google.golang.org/api/drive/v3"

// DefaultScopes are the OAuth scopes requested for the service account.
//
// drive.file only reaches files and folders the service account created or
// that were shared with it (or with the impersonated owner).
var DefaultScopes = []string{
	drive.DriveFileScope,
}
