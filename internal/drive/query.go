package drive

import (
	"fmt"
	"strings"
)

// escapeQuery escapes a value for use inside a single-quoted string of the
// Drive query language.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

// childQuery matches entries called name directly under parentID.
func childQuery(name, parentID string) string {
	return fmt.Sprintf("name = '%s' and '%s' in parents", escapeQuery(name), escapeQuery(parentID))
}

// folderQuery is childQuery restricted to entries that are not in the trash.
func folderQuery(name, parentID string) string {
	return childQuery(name, parentID) + " and trashed = false"
}

// fileQuery is childQuery, optionally restricted to entries not in the trash.
func fileQuery(name, folderID string, excludeTrashed bool) string {
	if excludeTrashed {
		return folderQuery(name, folderID)
	}
	return childQuery(name, folderID)
}
