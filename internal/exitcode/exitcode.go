// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error: bad args, failed validation, a task
	// that does not exist, a username that is taken.
	UserError = 1

	// AuthError indicates a missing credential or one the backend rejected.
	AuthError = 2

	// BackendError indicates a server or network failure.
	BackendError = 3
)
