package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskman rm <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, msg := taskIDArg(args)
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	ctl, state := loadController(ctx, env)
	defer ctl.Close()

	if state.Phase == tasklist.PhaseLoadError {
		return report(errOut, state.ErrorMessage, state.LastErr)
	}

	// The server decides whether an id it never listed still exists.
	target, ok := state.Find(id)
	if !ok {
		target = service.Task{ID: id}
	}

	ctl.RequestDelete(ctx, target)
	return finish(env, ctl.ConfirmDelete(ctx), out, errOut)
}
