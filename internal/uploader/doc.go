// Package uploader implements the upload flow of gdrive-upload.
//
// An Uploader resolves (and creates, when missing) a nested destination folder
// under a parent Drive folder, then uploads either a single local file or the
// direct children of a local directory into it. With overwrite enabled, a file
// that already exists under the same name is updated in place instead of
// duplicated.
//
// The remote store is reached through the Store interface, implemented by
// *drive.Client in production and by in-memory fakes in tests.
//
// Error handling follows an explicit per-kind policy:
//   - ambiguity (more than one entry for a name and parent): always fatal
//   - remote call failures: always fatal, returned unchanged, never retried
//   - local directory enumeration failures: SoftFail by default, the directory
//     is treated as empty and a warning is logged
package uploader
