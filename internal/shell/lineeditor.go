package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/mikael-mansson/posh/internal/shellctx"
	"golang.org/x/term"
)

// LineEditor acquires one command line at a time from stdin. On a
// terminal it runs character-mode with echo, backspace, and TAB
// completion (spec §4.7); otherwise it degrades to buffered
// line-at-a-time reads with no echo or completion.
type LineEditor struct {
	sc  *shellctx.Context
	in  *os.File
	out io.Writer

	tty     bool
	scanner *bufio.Scanner // non-terminal mode only
}

// NewLineEditor builds a LineEditor over the process's standard
// input/output, detecting terminal mode via isatty.
func NewLineEditor(sc *shellctx.Context) *LineEditor {
	in := os.Stdin
	e := &LineEditor{
		sc:  sc,
		in:  in,
		out: os.Stdout,
		tty: isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()),
	}
	if !e.tty {
		e.scanner = bufio.NewScanner(in)
	}
	return e
}

const prompt = "$ "

// ReadLine emits the prompt and returns one line of input, without
// its trailing newline. It returns io.EOF when input is exhausted.
func (e *LineEditor) ReadLine() (string, error) {
	fmt.Fprint(e.out, prompt)
	if !e.tty {
		return e.readLineBuffered()
	}
	return e.readLineRaw()
}

func (e *LineEditor) readLineBuffered() (string, error) {
	if !e.scanner.Scan() {
		if err := e.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return e.scanner.Text(), nil
}

func (e *LineEditor) readLineRaw() (string, error) {
	fd := int(e.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not really a usable terminal after all; degrade.
		e.tty = false
		e.scanner = bufio.NewScanner(e.in)
		return e.readLineBuffered()
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(e.in)
	var buf []rune
	cctx := &CompletionContext{}

	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return "", io.EOF
		}

		switch {
		case r == '\n' || r == '\r':
			fmt.Fprint(e.out, "\r\n")
			return string(buf), nil

		case r == 0x7f || r == 0x08:
			if len(buf) > 0 {
				last := buf[len(buf)-1]
				buf = buf[:len(buf)-1]
				for i := 0; i < runewidth.RuneWidth(last); i++ {
					fmt.Fprint(e.out, "\b \b")
				}
			}

		case r == 0x09:
			e.handleTab(&buf, cctx)

		default:
			buf = append(buf, r)
			fmt.Fprint(e.out, string(r))
		}
	}
}

func (e *LineEditor) handleTab(buf *[]rune, cctx *CompletionContext) {
	token := lastToken(string(*buf))
	if token == "" {
		return
	}

	result := Complete(e.sc, cctx, token)
	switch {
	case result.List:
		fmt.Fprintln(e.out)
		fmt.Fprintln(e.out, joinCandidates(result.Candidates))
		fmt.Fprint(e.out, prompt, string(*buf))
	case result.Bell:
		fmt.Fprint(e.out, "\a")
	case result.Suffix != "":
		*buf = append(*buf, []rune(result.Suffix)...)
		fmt.Fprint(e.out, result.Suffix)
	}
}

func joinCandidates(candidates []string) string {
	out := ""
	for i, c := range candidates {
		if i > 0 {
			out += "  "
		}
		out += c
	}
	return out
}

// lastToken returns the characters of buf after its last unquoted
// whitespace, honoring single/double-quote state the same way the
// lexer does. An empty result means the buffer ends in unquoted
// whitespace (or is empty), in which case completion is a no-op.
func lastToken(buf string) string {
	state := stateNormal
	lastBreak := 0

	for i := 0; i < len(buf); i++ {
		ch := buf[i]
		switch state {
		case stateNormal:
			switch {
			case ch == '\'':
				state = stateSingle
			case ch == '"':
				state = stateDouble
			case ch == '\\':
				i++
			case isSpace(ch):
				lastBreak = i + 1
			}
		case stateSingle:
			if ch == '\'' {
				state = stateNormal
			}
		case stateDouble:
			if ch == '"' {
				state = stateNormal
			} else if ch == '\\' && i+1 < len(buf) {
				i++
			}
		}
	}

	return buf[lastBreak:]
}
