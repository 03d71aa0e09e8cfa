package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/exitcode"
	"taskman/internal/tasklist"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd flips a task between pending and completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *DoneCmd) Usage() string     { return "taskman done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
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
	if _, err := findLoaded(state, id); err != nil {
		return report(errOut, err.Error(), err)
	}

	return finish(env, ctl.ToggleStatus(ctx, id), out, errOut)
}
