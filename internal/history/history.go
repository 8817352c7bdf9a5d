// Package history implements the shell's persistent command history.
package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// State is an append-only in-memory sequence of command lines plus the
// high-water mark recording how many entries existed when the shell
// started. Entries beyond InitialSize are the "new since start" tail
// used by the exit builtin's automatic append.
type State struct {
	entries     []string
	initialSize int
}

// New returns an empty history state.
func New() *State {
	return &State{}
}

// Load reads non-empty lines from path into a fresh State and records
// the loaded count as the initial size. A missing file is not an error;
// it yields an empty State.
func Load(path string) (*State, error) {
	s := New()
	if path == "" {
		return s, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("history: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.entries = append(s.entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	s.initialSize = len(s.entries)
	return s, nil
}

// Append adds a non-empty command line to the in-memory history in
// submission order. Empty lines are ignored, matching the REPL's own
// rule of never recording a blank submission.
func (s *State) Append(line string) {
	if line == "" {
		return
	}
	s.entries = append(s.entries, line)
}

// All returns every entry, numbered from 1 by the caller.
func (s *State) All() []string {
	return append([]string(nil), s.entries...)
}

// Last returns the final n entries, or all of them if n exceeds the
// current length.
func (s *State) Last(n int) []string {
	if n < 0 {
		n = 0
	}
	if n >= len(s.entries) {
		return s.All()
	}
	return append([]string(nil), s.entries[len(s.entries)-n:]...)
}

// TrimTo drops the oldest entries so at most n remain, adjusting the
// high-water mark to match. Used at startup to honor the ambient
// history_size configuration setting (SPEC_FULL.md §2.3) without
// affecting which entries count as "new since start".
func (s *State) TrimTo(n int) {
	if n < 0 || len(s.entries) <= n {
		return
	}
	drop := len(s.entries) - n
	s.entries = s.entries[drop:]
	s.initialSize -= drop
	if s.initialSize < 0 {
		s.initialSize = 0
	}
}

// InitialSize returns the number of entries that existed when the
// history was loaded (0 for a fresh, unloaded State).
func (s *State) InitialSize() int {
	return s.initialSize
}

// Tail returns the entries appended since InitialSize — the "new since
// start" set that exit persists automatically.
func (s *State) Tail() []string {
	if s.initialSize >= len(s.entries) {
		return nil
	}
	return append([]string(nil), s.entries[s.initialSize:]...)
}

// ReadFile appends every non-empty line of path to the in-memory
// history (the history -r builtin form). A missing file is an error,
// unlike Load at startup.
func (s *State) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.entries = append(s.entries, line)
	}
	return scanner.Err()
}

// WriteFile overwrites path with every in-memory entry, one per line
// (the history -w builtin form).
func (s *State) WriteFile(path string) error {
	return writeLines(path, s.entries, false)
}

// AppendFile appends every in-memory entry to path, then clears the
// in-memory buffer and resets the high-water mark (the history -a
// builtin form).
func (s *State) AppendFile(path string) error {
	if err := writeLines(path, s.entries, true); err != nil {
		return err
	}
	s.entries = nil
	s.initialSize = 0
	return nil
}

// Flush appends the tail (entries recorded since InitialSize) to path.
// Used by the exit builtin; a no-op if there's nothing new or no path
// is configured.
func (s *State) Flush(path string) error {
	if path == "" {
		return nil
	}
	tail := s.Tail()
	if len(tail) == 0 {
		return nil
	}
	return writeLines(path, tail, true)
}

func writeLines(path string, lines []string, appendMode bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("history: %w", err)
		}
		if _, err := w.WriteString("\n"); err != nil {
			return fmt.Errorf("history: %w", err)
		}
	}
	return w.Flush()
}
