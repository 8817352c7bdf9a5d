package commands

import (
	"context"
	"fmt"

	"github.com/mikael-mansson/posh/internal/pathresolve"
	"github.com/mikael-mansson/posh/internal/shellctx"
)

func init() {
	register(&Command{Name: "type", Run: typeCmd})
}

// typeCmd reports whether its argument resolves to a builtin or an
// executable on PATH. Builtins win over a same-named PATH executable,
// matching the executor's own dispatch order.
func typeCmd(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(env.Stdout, "type: not found")
		return nil
	}
	name := args[0]

	if _, ok := Get(name); ok {
		fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return nil
	}

	if path, ok := pathresolve.Resolve(name, sc.PathDirs()); ok {
		fmt.Fprintf(env.Stdout, "%s is %s\n", name, path)
		return nil
	}

	fmt.Fprintf(env.Stdout, "%s: not found\n", name)
	return nil
}
