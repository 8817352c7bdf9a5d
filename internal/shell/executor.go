package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/mikael-mansson/posh/internal/commands"
	"github.com/mikael-mansson/posh/internal/diag"
	"github.com/mikael-mansson/posh/internal/pathresolve"
	"github.com/mikael-mansson/posh/internal/shellctx"
)

// resolution is how a stage's command name was resolved: at most one
// of builtin/execPath/err is set.
type resolution struct {
	builtin  *commands.Command
	execPath string
	err      error
}

func resolveStage(sc *shellctx.Context, name string) resolution {
	if cmd, ok := commands.Get(name); ok {
		return resolution{builtin: cmd}
	}
	if path, ok := pathresolve.Resolve(name, sc.PathDirs()); ok {
		return resolution{execPath: path}
	}
	return resolution{err: &CommandNotFoundError{Name: name}}
}

// Execute runs a parsed pipeline to completion (spec §4.6). A
// single-stage pipeline whose sole word is "exit" never spawns: it is
// handled at the top level, setting sc.ExitRequested/ExitCode and
// flushing history (spec §9's resolution of the exit-in-pipeline open
// question — exit is a no-op in every other position).
func Execute(ctx context.Context, sc *shellctx.Context, p *Pipeline, stderr io.Writer) error {
	if p == nil || len(p.Stages) == 0 {
		return nil
	}

	if len(p.Stages) == 1 && len(p.Stages[0].Argv) > 0 && p.Stages[0].Argv[0] == "exit" {
		return execTopLevelExit(sc, p.Stages[0])
	}

	diag.WarnIfLowMemory(stderr, len(p.Stages))

	// A stage whose command doesn't resolve does not abort the
	// pipeline (spec §7 ResolveError): every stage still launches, the
	// failed one's pipe ends simply close immediately so its neighbors
	// see EOF, and once every stage has run the first failing stage's
	// error (in stage order) is returned.
	resolutions := make([]resolution, len(p.Stages))
	for i, stage := range p.Stages {
		if len(stage.Argv) == 0 {
			continue
		}
		resolutions[i] = resolveStage(sc, stage.Argv[0])
	}

	return runStages(ctx, sc, p, resolutions)
}

func execTopLevelExit(sc *shellctx.Context, stage *Stage) error {
	code := commands.ParseExitCode(stage.Argv[1:])
	if err := commands.Flush(sc); err != nil {
		return err
	}
	sc.ExitRequested = true
	sc.ExitCode = code
	return nil
}

// runStages wires real OS pipes between stages, applies each stage's
// own redirections on top of that default wiring (a stage's explicit
// redirect overrides the pipe for that fd, the last redirect per fd
// winning as the effective stream), and runs builtins in-parent while
// spawning external commands as child processes.
func runStages(ctx context.Context, sc *shellctx.Context, p *Pipeline, resolutions []resolution) error {
	n := len(p.Stages)
	std := shellctx.ProcessStdio()

	stdins := make([]io.Reader, n)
	stdouts := make([]io.Writer, n)
	stderrs := make([]io.Writer, n)
	for i := range stderrs {
		stderrs[i] = std.Stderr
	}
	stdins[0] = std.Stdin
	stdouts[n-1] = std.Stdout

	// pipeReadEnd[i] / pipeWriteEnd[i] are the parent's copies of the
	// pipe connecting stage i to stage i+1. Index i ranges over
	// 0..n-2; pipeReadEnd[i] feeds stage i+1's stdin, pipeWriteEnd[i]
	// is stage i's stdout.
	pipeReadEnd := make([]*os.File, n-1)
	pipeWriteEnd := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			closeUnused(pipeReadEnd, pipeWriteEnd)
			return fmt.Errorf("pipe: %w", err)
		}
		pipeReadEnd[i] = pr
		pipeWriteEnd[i] = pw
		stdouts[i] = pw
		stdins[i+1] = pr
	}

	var redirFiles []*os.File
	for i, stage := range p.Stages {
		for _, r := range stage.Redirs {
			f, err := openRedirect(r)
			if err != nil {
				closeUnused(pipeReadEnd, pipeWriteEnd)
				closeFiles(redirFiles)
				return fmt.Errorf("%s: %w", r.Path, err)
			}
			redirFiles = append(redirFiles, f)
			switch r.FD {
			case 1:
				stdouts[i] = f
			case 2:
				stderrs[i] = f
			}
		}
	}
	defer closeFiles(redirFiles)

	errs := make([]error, n)
	type proc struct {
		stage int
		cmd   *exec.Cmd
	}
	var procs []proc
	var wg sync.WaitGroup

	// readEndOf/writeEndOf report whether stage i owns the parent-side
	// copy of a pipe fd that must be closed once the stage is launched
	// (external) or finished (builtin, which uses the fd live).
	readEndOf := func(i int) *os.File {
		if i > 0 {
			return pipeReadEnd[i-1]
		}
		return nil
	}
	writeEndOf := func(i int) *os.File {
		if i < n-1 {
			return pipeWriteEnd[i]
		}
		return nil
	}

	for i := 0; i < n; i++ {
		stage := p.Stages[i]
		if len(stage.Argv) == 0 {
			// Pure redirection, no command: the side effect already
			// happened above. Close this stage's pipe ends so its
			// neighbors don't block on a pipe nobody will ever use.
			closeIfNotNil(readEndOf(i))
			closeIfNotNil(writeEndOf(i))
			continue
		}

		r := resolutions[i]
		switch {
		case r.err != nil:
			errs[i] = r.err
			closeIfNotNil(readEndOf(i))
			closeIfNotNil(writeEndOf(i))

		case r.builtin != nil:
			wg.Add(1)
			idx, cmd := i, r.builtin
			in, out, errw := stdins[idx], stdouts[idx], stderrs[idx]
			pr, pw := readEndOf(idx), writeEndOf(idx)
			go func() {
				defer wg.Done()
				errs[idx] = runBuiltin(ctx, sc, cmd, stage.Argv[1:], in, out, errw)
				closeIfNotNil(pw)
				closeIfNotNil(pr)
			}()

		case r.execPath != "":
			cmd := exec.CommandContext(ctx, r.execPath, stage.Argv[1:]...)
			cmd.Dir = sc.CWD
			cmd.Stdin = stdins[i]
			cmd.Stdout = stdouts[i]
			cmd.Stderr = stderrs[i]
			if err := cmd.Start(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", stage.Argv[0], err)
				closeIfNotNil(readEndOf(i))
				closeIfNotNil(writeEndOf(i))
				continue
			}
			procs = append(procs, proc{stage: i, cmd: cmd})
			closeIfNotNil(readEndOf(i))
			closeIfNotNil(writeEndOf(i))
		}
	}

	wg.Wait()
	for _, p := range procs {
		if err := p.cmd.Wait(); err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				errs[p.stage] = err
			}
		}
	}

	for _, err := range errs {
		if err != nil {
			// Each error already carries its own stage context
			// (CommandNotFoundError self-names, exec.Start failures
			// are wrapped with the command name at their call site);
			// wrapping again here would double up the prefix.
			return err
		}
	}
	return nil
}

// runBuiltin calls a builtin's Run with its assigned IO triple. A
// builtin that doesn't consume stdin gets a concurrently drained pipe
// instead, so an upstream writer is never blocked on a full buffer by
// a reader that will never arrive (spec §4.5, §5).
func runBuiltin(ctx context.Context, sc *shellctx.Context, cmd *commands.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if !cmd.ReadsStdin && stdin != nil && stdin != os.Stdin {
		done := make(chan struct{})
		go func() {
			io.Copy(io.Discard, stdin)
			close(done)
		}()
		defer func() { <-done }()
		stdin = nil
	}
	env := &commands.ExecutionEnv{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return cmd.Run(ctx, sc, env, args)
}

func openRedirect(r Redirection) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if r.Mode == ModeAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(r.Path, flags, 0o644)
}

func closeIfNotNil(f *os.File) {
	if f != nil {
		f.Close()
	}
}

func closeUnused(readEnds, writeEnds []*os.File) {
	for _, f := range readEnds {
		closeIfNotNil(f)
	}
	for _, f := range writeEnds {
		closeIfNotNil(f)
	}
}

func closeFiles(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}
