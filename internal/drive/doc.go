// Package drive provides a client for the parts of the Google Drive API that
// gdrive-upload needs.
//
// The client supports:
//   - Looking up entries by exact name under a parent folder
//   - Creating folders
//   - Creating files from streamed content (single multipart request)
//   - Replacing the content of an existing file without touching its metadata
//
// Every request sets supportsAllDrives, and lookups set includeItemsFromAllDrives,
// so parent folders may live on shared drives. Lookups follow every result page.
//
// Each call is wrapped in a google.drive.<operation> span and counted in the
// google_api_operations_total metric.
//
// Example usage:
//
//	httpClient, err := google.NewHTTPClient(ctx, account, owner)
//	if err != nil {
//	    return err
//	}
//	client, err := drive.NewClient(ctx, metrics, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//
//	folders, err := client.FindFolders(ctx, "reports", parentID)
package drive
