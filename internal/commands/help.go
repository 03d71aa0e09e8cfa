package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskman/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskman help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprint(out, commandSummary(DefaultRegistry))
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

// commandSummary lists every registered command with its aliases.
func commandSummary(r *Registry) string {
	var b strings.Builder
	b.WriteString("\nCommands:\n")
	for _, cmd := range r.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += ", " + strings.Join(aliases, ", ")
		}
		fmt.Fprintf(&b, "  %-18s %s\n", name, cmd.Synopsis())
	}
	return b.String()
}

const helpText = `Usage:
  taskman                                      List all tasks
  taskman list [common flags] [--summary]
  taskman show [common flags] <id>
  taskman add [common flags] [-d <description>] <title...>
  taskman edit [common flags] [--title <title>] [-d <description>] <id>
  taskman done [common flags] <id>
  taskman rm [common flags] <id>
  taskman register [common flags] <username> [<password>]
  taskman login [common flags] <username> [<password>]
  taskman logout [common flags]
  taskman tui [common flags]
  taskman help
  taskman version
`

const helpFooter = `
Task ids are the numbers printed by list; "12" and "#12" are the same task.
When <password> is omitted it is read from TASKMAN_PASSWORD.

Common flags:
  --config <dir>   Override config directory
  --url <url>      Override the backend base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
