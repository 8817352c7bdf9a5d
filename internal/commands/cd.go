package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mikael-mansson/posh/internal/shellctx"
)

func init() {
	register(&Command{Name: "cd", Run: cd})
}

// cd with no argument targets "~"; if HOME isn't set, that expands to
// the empty string and cd silently leaves the working directory
// unchanged rather than erroring.
func cd(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	target := "~"
	if len(args) > 0 {
		target = args[0]
	}
	target = sc.ExpandHome(target)
	if target == "" {
		return nil
	}

	if err := os.Chdir(target); err != nil {
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(env.Stderr, "cd: %s: No such file or directory\n", target)
		case os.IsPermission(err):
			fmt.Fprintf(env.Stderr, "cd: %s: Permission denied\n", target)
		default:
			fmt.Fprintf(env.Stderr, "cd: %s: %v\n", target, err)
		}
		return nil
	}

	if cwd, err := os.Getwd(); err == nil {
		sc.CWD = cwd
	}
	return nil
}
