package contract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors raised by the consent collaborator.
var (
	ErrConsentRequired  = errors.New("consent required")
	ErrPermissionDenied = errors.New("external permission denied")
)

// InvalidArchiveError reports an archive that cannot be analyzed.
type InvalidArchiveError struct {
	Path   string
	Detail string
	Err    error
}

func (e *InvalidArchiveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid archive: %s", e.Detail)
	}
	return fmt.Sprintf("invalid archive %s: %s", e.Path, e.Detail)
}

func (e *InvalidArchiveError) Unwrap() error { return e.Err }

// Payload returns the structured error document written for callers.
func (e *InvalidArchiveError) Payload() map[string]string {
	return map[string]string{"error": "InvalidInput", "detail": e.Detail}
}

// PayloadJSON renders Payload as JSON.
func (e *InvalidArchiveError) PayloadJSON() string {
	data, _ := json.Marshal(e.Payload())
	return string(data)
}

// StorageIntegrityError is raised when a written snapshot row does not match its payload.
type StorageIntegrityError struct {
	ProjectID string
	Field     string
	Expected  string
	Actual    string
}

func (e *StorageIntegrityError) Error() string {
	return fmt.Sprintf("snapshot integrity check failed for project %q: %s expected %q, got %q",
		e.ProjectID, e.Field, e.Expected, e.Actual)
}

// AsInvalidArchive returns the InvalidArchiveError wrapped in err, if any.
func AsInvalidArchive(err error) (*InvalidArchiveError, bool) {
	var target *InvalidArchiveError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
