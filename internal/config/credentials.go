package config

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/teemow/gdrive-upload/internal/google"
)

// DecodeCredentials decodes the base64-encoded service-account key.
// Padded and unpadded standard base64 are both accepted.
func DecodeCredentials(encoded string) (*google.ServiceAccount, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, missing(InputCredentials)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64: %w", ErrInvalidConfig, InputCredentials, err)
	}

	sa, err := google.ParseServiceAccount(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, InputCredentials, err)
	}
	return sa, nil
}

// ServiceAccount decodes the configured credentials.
func (c *Config) ServiceAccount() (*google.ServiceAccount, error) {
	return DecodeCredentials(c.Credentials)
}
