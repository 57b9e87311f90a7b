// Package google authenticates gdrive-upload against Google APIs with a
// service-account key.
//
// Tokens come from the two-legged JWT flow of golang.org/x/oauth2/jwt, signed
// with the key's private key and limited to the drive.file scope. When an
// owner is configured it becomes the JWT subject, so uploads are made on
// behalf of that user through domain-wide delegation.
package google
