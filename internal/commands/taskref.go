package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskID parses the task reference in the first argument.
//
// Accepted forms are the server id as printed by list, with or without a
// leading '#': "12" or "#12". The id must be positive. Extra arguments are
// rejected.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if ref == "" {
		return 0, ErrTaskRefRequired
	}
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return id, nil
}

// isAllDigits returns true if s is non-empty and contains only ASCII digits.
func isAllDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// taskIDArg parses args and returns the message to print on failure.
func taskIDArg(args []string) (int64, string) {
	id, err := ParseTaskID(args)
	if err == nil {
		return id, ""
	}
	if errors.Is(err, ErrTaskRefRequired) {
		return 0, "task reference required"
	}
	return 0, err.Error()
}
