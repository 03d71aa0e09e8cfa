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
	Register(&EditCmd{})
}

// optionalString is a flag value that remembers whether it was given, so an
// explicit empty description can clear the field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(description string) {
	_ = c.description.Set(description)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskman edit [--title <title>] [-d <description>] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalString{}
	c.description = optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	id, msg := taskIDArg(args)
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}

	ctl, state := loadController(ctx, env)
	defer ctl.Close()

	if state.Phase == tasklist.PhaseLoadError {
		return report(errOut, state.ErrorMessage, state.LastErr)
	}
	task, err := findLoaded(state, id)
	if err != nil {
		return report(errOut, err.Error(), err)
	}

	ctl.StartEditing(ctx, task)
	if c.title.set {
		ctl.SetTitle(ctx, c.title.value)
	}
	if c.description.set {
		ctl.SetDescription(ctx, c.description.value)
	}
	return finish(env, ctl.Submit(ctx), out, errOut)
}
