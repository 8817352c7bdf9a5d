package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikael-mansson/posh/internal/shellctx"
)

func init() {
	register(&Command{Name: "echo", Run: echo})
}

func echo(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return nil
}
