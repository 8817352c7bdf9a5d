// Package shellctx carries the shell's process-wide state explicitly,
// the way the teacher threads *session.Session through every builtin,
// instead of relying on package-level mutable singletons.
package shellctx

import (
	"io"
	"os"

	"github.com/mikael-mansson/posh/internal/history"
	"github.com/mikael-mansson/posh/internal/pathresolve"
)

// Context is the shell's ambient state: working directory, search
// path, home directory, and the history log. It is passed by pointer
// to every builtin and to the executor.
type Context struct {
	History  *history.State
	HistFile string

	CWD     string
	Home    string
	PathEnv string

	// ExitRequested and ExitCode are set by the executor when "exit"
	// is the sole stage of its pipeline; the REPL checks them after
	// every command chain.
	ExitRequested bool
	ExitCode      int
}

// New builds a Context from the process environment.
func New() *Context {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	return &Context{
		History: history.New(),
		CWD:     cwd,
		Home:    os.Getenv("HOME"),
		PathEnv: os.Getenv("PATH"),
	}
}

// PathDirs returns the current search path, split into directories.
// Re-split on every call so a PATH change made mid-session (e.g. by a
// future builtin) takes effect immediately, matching the path
// resolver's no-caching contract.
func (c *Context) PathDirs() []string {
	return pathresolve.Dirs(c.PathEnv)
}

// ExpandHome expands a leading "~" to the configured home directory.
func (c *Context) ExpandHome(path string) string {
	if path == "~" {
		return c.Home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return c.Home + path[1:]
	}
	return path
}

// StdIOTriple is the set of three standard streams used as the
// process-level defaults; every stage's effective IO triple starts
// here before redirections and pipes substitute individual streams.
type StdIOTriple struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessStdio returns the real process standard streams.
func ProcessStdio() StdIOTriple {
	return StdIOTriple{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}
