package commands

import (
	"context"
	"fmt"

	"github.com/mikael-mansson/posh/internal/shellctx"
)

func init() {
	register(&Command{Name: "pwd", Run: pwd})
}

func pwd(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	fmt.Fprintln(env.Stdout, sc.CWD)
	return nil
}
