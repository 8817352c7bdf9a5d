package shell

import "errors"

// Sentinel errors for the lex/parse/resolve stages (spec §7). The REPL
// formats these at the top-level loop boundary; nothing below that
// boundary prints directly except builtins reporting their own pinned
// error literals (cd, history).
var (
	ErrUnterminatedQuote  = errors.New("syntax error: unterminated quote")
	ErrEmptyPipelineStage = errors.New("syntax error near unexpected token `|'")
	ErrMissingTarget      = errors.New("syntax error: missing redirection target")
	ErrMissingCommand     = errors.New("syntax error: missing command")
)

// CommandNotFoundError reports that neither a builtin nor a PATH
// executable resolved a stage's command name.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return e.Name + ": command not found"
}
