// Package commands implements the shell's closed set of builtins:
// echo, exit, pwd, cd, type, and history. Each is registered against a
// name the way the teacher's command registry dispatches, but the set
// here is closed — nothing outside this list is ever registered.
package commands

import (
	"context"
	"io"
	"strings"

	"github.com/mikael-mansson/posh/internal/shellctx"
	"github.com/spf13/pflag"
)

// ExecutionEnv is the effective IO triple a builtin runs with. For a
// builtin inside a pipeline, a stream that connects it to a neighboring
// stage is a pipe end and a redirected stream is a file; any other
// stream is the process's own stdio.
type ExecutionEnv struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command is a builtin's dispatch entry.
type Command struct {
	Run  func(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error
	Name string
	// ReadsStdin is true for builtins that consume their standard
	// input. When false and stdin is a pipe, the executor drains the
	// pipe concurrently with the builtin's body so an upstream writer
	// never blocks (spec §4.5, §5).
	ReadsStdin bool
}

// Registry is the closed set of builtins, keyed by name.
var Registry = make(map[string]*Command)

func register(cmd *Command) {
	Registry[cmd.Name] = cmd
}

// Get looks up a builtin by name.
func Get(name string) (*Command, bool) {
	cmd, ok := Registry[name]
	return cmd, ok
}

// Names returns every registered builtin name, used by the completion
// engine to build its candidate set.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// reorderArgsForFlags moves recognized flags ahead of positional
// arguments so Unix-style interspersed flags (e.g. "history path -w")
// parse the same whether the flag comes first or last.
func reorderArgsForFlags(fs *pflag.FlagSet, args []string) []string {
	var flags, positional []string

	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if idx := strings.Index(name, "="); idx >= 0 {
				i++
				continue
			}
			if f := fs.Lookup(name); f != nil && f.Value.Type() != "bool" {
				if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++
					flags = append(flags, args[i])
				}
			}
			i++
			continue
		}
		positional = append(positional, arg)
		i++
	}

	return append(flags, positional...)
}
