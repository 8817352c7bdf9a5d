package shell

import (
	"os"
	"sort"
	"strings"

	"github.com/mikael-mansson/posh/internal/commands"
	"github.com/mikael-mansson/posh/internal/shellctx"
)

// CompletionContext is the tiny state machine carried across TAB
// presses within one line-editor iteration: which prefix the previous
// TAB matched and how many consecutive TABs have matched it (spec
// §4.8's bell-once-then-list protocol).
type CompletionContext struct {
	LastPrefix string
	TabCount   int
}

// CompletionResult is what the completion engine hands back to the
// line editor for one TAB press.
type CompletionResult struct {
	Suffix     string   // appended to the buffer verbatim; empty if nothing to add
	Bell       bool     // emit 0x07, no buffer change
	List       bool     // print Candidates on a fresh line, then redraw
	Candidates []string // sorted, deduplicated; populated whenever List is true
}

// Complete computes the completion for the current last token of the
// line editor's buffer (spec §4.8). Candidates are the sorted,
// deduplicated union of builtin names and PATH executable basenames
// starting with token.
func Complete(sc *shellctx.Context, cctx *CompletionContext, token string) CompletionResult {
	candidates := completionCandidates(sc, token)

	switch {
	case len(candidates) == 0:
		cctx.LastPrefix = token
		cctx.TabCount = 0
		return CompletionResult{Bell: true}

	case len(candidates) == 1:
		cctx.LastPrefix = ""
		cctx.TabCount = 0
		return CompletionResult{Suffix: candidates[0][len(token):] + " "}

	default:
		lcp := longestCommonPrefix(candidates)
		if len(lcp) > len(token) {
			cctx.LastPrefix = ""
			cctx.TabCount = 0
			return CompletionResult{Suffix: lcp[len(token):]}
		}

		if cctx.LastPrefix == token {
			cctx.TabCount++
		} else {
			cctx.LastPrefix = token
			cctx.TabCount = 1
		}

		if cctx.TabCount < 2 {
			return CompletionResult{Bell: true}
		}
		cctx.TabCount = 0
		return CompletionResult{List: true, Candidates: candidates}
	}
}

// completionCandidates gathers every builtin name and every basename
// of a regular, executable file on PATH that starts with token.
func completionCandidates(sc *shellctx.Context, token string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(name string) {
		if strings.HasPrefix(name, token) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, name := range commands.Names() {
		add(name)
	}

	for _, dir := range sc.PathDirs() {
		if dir == "" {
			dir = "."
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
				continue
			}
			add(entry.Name())
		}
	}

	sort.Strings(out)
	return out
}

func longestCommonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
