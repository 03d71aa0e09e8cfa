package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskman/internal/auth"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the token" }
func (c *LoginCmd) Usage() string     { return "taskman login <username> [<password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	username, password, msg := credentialArgs(args)
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	if err := env.Config.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	// A new login replaces whatever credential was stored before.
	if _, err := env.Auth.Login(ctx, username, password); err != nil {
		return report(errOut, service.UserMessage(err, auth.LoginFailedMessage), err)
	}

	printOK(env, out)
	return exitcode.Success
}
