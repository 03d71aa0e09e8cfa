package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskman/internal/auth"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd creates an account on the backend.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string     { return "taskman register <username> [<password>]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	username, password, msg := credentialArgs(args)
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	serverMsg, err := env.Auth.Register(ctx, username, password)
	if err != nil {
		return report(errOut, service.UserMessage(err, auth.RegisterFailedMessage), err)
	}

	if !env.Config.Quiet {
		if serverMsg == "" {
			serverMsg = "ok"
		}
		fmt.Fprintln(out, serverMsg)
	}
	return exitcode.Success
}

// credentialArgs reads "<username> [<password>]". A missing password is taken
// from the environment so it stays out of shell history.
func credentialArgs(args []string) (username, password, msg string) {
	switch len(args) {
	case 0:
		return "", "", "username required"
	case 1:
		password = os.Getenv(config.EnvPassword)
		if password == "" {
			return "", "", fmt.Sprintf("password required (argument or %s)", config.EnvPassword)
		}
		return args[0], password, ""
	case 2:
		return args[0], args[1], ""
	default:
		return "", "", fmt.Sprintf("unexpected argument: %s", args[2])
	}
}
