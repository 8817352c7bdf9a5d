package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mikael-mansson/posh/internal/shellctx"
	"github.com/spf13/pflag"
)

func init() {
	register(&Command{Name: "history", Run: historyCmd})
}

// historyCmd implements every form from spec §4.5: no args prints the
// full numbered history; a numeric argument prints the last N entries;
// -r/-w/-a read, overwrite, or append the history file.
func historyCmd(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	readPath := fs.StringP("read", "r", "", "read FILE into history")
	writePath := fs.StringP("write", "w", "", "overwrite FILE with history")
	appendPath := fs.StringP("append", "a", "", "append history to FILE, then clear it")

	if err := fs.Parse(reorderArgsForFlags(fs, args)); err != nil {
		fmt.Fprintf(env.Stderr, "history: %v\n", err)
		return nil
	}

	switch {
	case *readPath != "":
		if err := sc.History.ReadFile(*readPath); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return nil
	case *writePath != "":
		if err := sc.History.WriteFile(*writePath); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return nil
	case *appendPath != "":
		if err := sc.History.AppendFile(*appendPath); err != nil {
			fmt.Fprintf(env.Stderr, "history: %v\n", err)
		}
		return nil
	}

	entries := sc.History.All()
	start := 1
	if rest := fs.Args(); len(rest) > 0 {
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			fmt.Fprintf(env.Stderr, "history: %s: numeric argument required\n", rest[0])
			return nil
		}
		last := sc.History.Last(n)
		start = len(entries) - len(last) + 1
		entries = last
	}

	for i, line := range entries {
		fmt.Fprintf(env.Stdout, "%5d  %s\n", start+i, line)
	}
	return nil
}
