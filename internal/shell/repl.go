package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikael-mansson/posh/internal/shellctx"
)

// REPL is the driver wiring the line editor to the lexer, pipeline
// parser, and executor (spec §3's control-flow chain): REPL → line
// editor → lexer → pipeline parser → (per stage) redirection parser →
// executor → builtins/externals → wait/collect → REPL.
type REPL struct {
	sc     *shellctx.Context
	editor *LineEditor
	stderr io.Writer
}

// NewREPL builds a REPL over the given shell context.
func NewREPL(sc *shellctx.Context) *REPL {
	return &REPL{
		sc:     sc,
		editor: NewLineEditor(sc),
		stderr: os.Stderr,
	}
}

// Run drives the loop until EOF or the exit builtin runs as the sole
// stage of a top-level pipeline. It returns the process exit code: the
// value passed to exit, or 0 on EOF (spec §6).
func (r *REPL) Run(ctx context.Context) int {
	for {
		line, err := r.editor.ReadLine()
		if err != nil {
			return 0
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.sc.History.Append(line)

		pipeline, err := ParsePipeline(line)
		if err != nil {
			fmt.Fprintf(r.stderr, "posh: %v\n", err)
			continue
		}
		if pipeline == nil {
			continue
		}

		if err := Execute(ctx, r.sc, pipeline, r.stderr); err != nil {
			r.reportExecError(err)
			continue
		}

		if r.sc.ExitRequested {
			return r.sc.ExitCode
		}
	}
}

// reportExecError prints an execution error to stderr. Errors with a
// pinned literal (spec §6) print exactly as-is, with no shell-name
// prefix; anything else gets the generic "posh: " wrapper.
func (r *REPL) reportExecError(err error) {
	var notFound *CommandNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(r.stderr, "%v\n", err)
		return
	}
	fmt.Fprintf(r.stderr, "posh: %v\n", err)
}
