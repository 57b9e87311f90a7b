// Package logging provides structured logging utilities for gdrive-upload.
//
// This package centralizes logging patterns so every component emits the same
// attribute names, using the standard library's slog package.
//
// # Key Features
//
//   - Handler construction for CI runners (text on stderr, debug via RUNNER_DEBUG)
//   - Consistent attribute naming for Drive identifiers and local paths
//   - PII sanitization for the impersonated owner address
//   - Logger adapter interface so the uploader can be tested with any sink
//
// # Usage Patterns
//
//	logger := logging.WithOperation(slog.Default(), "drive.resolve_folder")
//	logger.Info("created new folder",
//	    logging.Name("reports"),
//	    logging.FolderID(id))
//
// The owner address is hashed before it reaches a log line:
//
//	logger.Info("impersonating owner", logging.UserHash(owner))
package logging
