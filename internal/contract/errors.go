package contract

import "errors"

// Error categories for request-terminating failures. The opinion fallback
// path means AI errors never reach this taxonomy.
var (
	// ErrInput marks a malformed or missing repository URL, rejected
	// before any collaborator call.
	ErrInput = errors.New("input error")

	// ErrCollaborator marks a repository or commit fetch failure. Fatal
	// for the run; the collaborator's status and message are attached.
	ErrCollaborator = errors.New("collaborator error")

	// ErrConfig marks a setup problem such as a missing credential or an
	// invalid backend, surfaced distinctly from data errors.
	ErrConfig = errors.New("config error")
)

// ErrorCategory returns the short category code for a terminating error.
func ErrorCategory(err error) string {
	switch {
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrCollaborator):
		return "collaborator"
	case errors.Is(err, ErrConfig):
		return "config"
	default:
		return "internal"
	}
}
