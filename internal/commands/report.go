package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

// report prints err as a single "error: ..." line and returns its exit code.
// msg is what the user sees; the error value only decides the code.
func report(errOut io.Writer, msg string, err error) int {
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return classify(err)
}

// classify maps an error to an exit code.
func classify(err error) int {
	var (
		validationErr *service.ValidationError
		conflictErr   *service.ConflictError
		authErr       *service.AuthError
		serverErr     *service.ServerError
	)
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, service.ErrNotFound),
		errors.As(err, &validationErr),
		errors.As(err, &conflictErr):
		return exitcode.UserError
	case errors.As(err, &authErr):
		return exitcode.AuthError
	case errors.As(err, &serverErr):
		if serverErr.Status == http.StatusUnauthorized || serverErr.Status == http.StatusForbidden {
			return exitcode.AuthError
		}
		return exitcode.BackendError
	default:
		return exitcode.BackendError
	}
}

// printOK prints "ok" unless quiet.
func printOK(env *Env, out io.Writer) {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
}

// finish reports the outcome of a mutating controller call. A success stands
// even when the resync after it failed.
func finish(env *Env, state tasklist.State, out, errOut io.Writer) int {
	if state.SuccessMessage != "" {
		printOK(env, out)
		return exitcode.Success
	}
	if state.LastErr == nil {
		if state.ErrorMessage != "" {
			fmt.Fprintf(errOut, "error: %s\n", state.ErrorMessage)
			return exitcode.UserError
		}
		printOK(env, out)
		return exitcode.Success
	}

	msg := state.ErrorMessage
	if msg == "" {
		msg = state.LastErr.Error()
	}
	return report(errOut, msg, state.LastErr)
}
