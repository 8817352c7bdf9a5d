// Command posh is a POSIX-style interactive shell: a line-oriented REPL
// over a closed set of builtins and the external commands on PATH.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mikael-mansson/posh/internal/config"
	"github.com/mikael-mansson/posh/internal/history"
	"github.com/mikael-mansson/posh/internal/shell"
	"github.com/mikael-mansson/posh/internal/shellctx"

	// Register builtins.
	_ "github.com/mikael-mansson/posh/internal/commands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		cfg = config.Default()
	}

	sc := shellctx.New()

	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		sc.HistFile = histFile
		loaded, err := history.Load(histFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		} else {
			sc.History = loaded
		}
	}
	sc.History.TrimTo(cfg.HistorySize)

	repl := shell.NewREPL(sc)
	os.Exit(repl.Run(context.Background()))
}
