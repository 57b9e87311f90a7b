// Package cmd implements the command-line interface for gdrive-upload.
//
// This package provides the following commands:
//   - upload: Upload a file or directory to a Google Drive folder
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for the action inputs and outputs
//
// The upload command is the default command when no subcommand is specified.
package cmd
