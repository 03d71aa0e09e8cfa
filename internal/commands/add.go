package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"taskman/internal/tasklist"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(description string) {
	c.description = description
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "taskman add [-d <description>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ctl, state := loadController(ctx, env)
	defer ctl.Close()

	if state.Phase == tasklist.PhaseLoadError {
		return report(errOut, state.ErrorMessage, state.LastErr)
	}

	ctl.OpenAddForm(ctx)
	ctl.SetTitle(ctx, strings.Join(args, " "))
	ctl.SetDescription(ctx, c.description)
	return finish(env, ctl.Submit(ctx), out, errOut)
}
