package instrumentation

import "strings"

// ExtractUserDomain extracts the domain part from an email address.
// This reduces cardinality by using the domain instead of the full email.
//
// Example:
//
//	ExtractUserDomain("ci@example.com")  // "example.com"
//	ExtractUserDomain("invalid")         // "unknown"
//	ExtractUserDomain("")                // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Operation types for Google API metrics.
// Status and service constants are defined in config.go.
const (
	OperationList   = "list"
	OperationCreate = "create"
	OperationUpdate = "update"
)
