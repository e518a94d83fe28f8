package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error with user-friendly message and suggestions
type UserError struct {
	Message     string   // User-friendly error message
	Suggestions []string // Possible solutions
	Err         error    // Underlying error (can be nil)
}

// Error implements the error interface
func (e *UserError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n\nPossible solutions:")
		for _, suggestion := range e.Suggestions {
			sb.WriteString("\n  - ")
			sb.WriteString(suggestion)
		}
	}

	if e.Err != nil {
		sb.WriteString("\n\nTechnical details: ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error
func NewUserError(message string, suggestions []string, err error) *UserError {
	return &UserError{
		Message:     message,
		Suggestions: suggestions,
		Err:         err,
	}
}

// IsUserError checks if an error is a UserError
func IsUserError(err error) bool {
	var userErr *UserError
	return errors.As(err, &userErr)
}

// Common error constructors for typical scenarios

// SitemapDirError creates an error for a missing or unusable sitemap directory
func SitemapDirError(path string, err error) error {
	return NewUserError(
		fmt.Sprintf("Sitemap directory not usable: %s", path),
		[]string{
			"Check that the sitemap generator has run at least once",
			"Verify sitemap_dir in the config points at the generator output",
			"Ensure the daemon has read permission on the directory",
		},
		err,
	)
}

// PermissionError creates an error for permission issues
func PermissionError(operation, path string, err error) error {
	return NewUserError(
		fmt.Sprintf("Permission denied: cannot %s %s", operation, path),
		[]string{
			"Check file/directory permissions",
			"Try running with appropriate privileges",
		},
		err,
	)
}

// ListenError creates an error for socket binding failures
func ListenError(addr string, err error) error {
	return NewUserError(
		fmt.Sprintf("Failed to listen on %s", addr),
		[]string{
			"Check that no other process is bound to the address",
			"Verify listen_addr in the config",
			"Ports below 1024 require elevated privileges",
		},
		err,
	)
}

// JournalError creates an error for request journal failures
func JournalError(path string, err error) error {
	return NewUserError(
		fmt.Sprintf("Failed to open request journal at %s", path),
		[]string{
			"Check that the journal directory is writable",
			"Remove a stale LOCK file if a previous run crashed",
			"Set journal_path to \"\" to run without a journal",
		},
		err,
	)
}

// ConfigError creates an error for configuration issues
func ConfigError(message string, err error) error {
	return NewUserError(
		message,
		[]string{
			"Check your config file at ~/.config/sitemapd/sitemapd.yaml",
			"Verify the YAML syntax is correct",
			"Try running 'sitemapd config show' to see current settings",
			"Delete the config file to reset to defaults",
		},
		err,
	)
}
