package commands

import (
	"context"
	"strconv"

	"github.com/mikael-mansson/posh/internal/shellctx"
)

func init() {
	register(&Command{Name: "exit", Run: exitNoop})
}

// exitNoop is exit's behavior as a non-sole pipeline stage: a no-op.
// Real termination is handled by ParseExitCode and Flush below, called
// by the executor only when "exit" is the sole stage of a top-level
// pipeline (spec §4.6 step 1).
func exitNoop(ctx context.Context, sc *shellctx.Context, env *ExecutionEnv, args []string) error {
	return nil
}

// ParseExitCode extracts the exit code from exit's optional numeric
// argument. A missing or non-numeric argument yields 0, matching the
// "ignores non-numeric arg" contract.
func ParseExitCode(args []string) int {
	if len(args) == 0 {
		return 0
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0
	}
	return n
}

// Flush persists the history tail accumulated since the shell started
// to HistFile, if one is configured. Called once, right before the
// process actually terminates.
func Flush(sc *shellctx.Context) error {
	if sc.HistFile == "" {
		return nil
	}
	return sc.History.Flush(sc.HistFile)
}
