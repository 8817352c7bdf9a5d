package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikael-mansson/posh/internal/commands"
	"github.com/mikael-mansson/posh/internal/shellctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryCtx(t *testing.T, entries ...string) *shellctx.Context {
	t.Helper()
	sc := shellctx.New()
	for _, e := range entries {
		sc.History.Append(e)
	}
	return sc
}

func TestHistory_NoArgsListsAllNumbered(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	sc := newHistoryCtx(t, "echo a", "echo b")
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, nil))
	assert.Equal(t, "    1  echo a\n    2  echo b\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestHistory_NumericArgShowsLastN(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	sc := newHistoryCtx(t, "one", "two", "three")
	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"2"}))
	assert.Equal(t, "    2  two\n    3  three\n", out.String())
}

func TestHistory_NonNumericArgReportsError(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	sc := newHistoryCtx(t, "one")
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"nope"}))
	assert.Equal(t, "history: nope: numeric argument required\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestHistory_ReadFlagLoadsFile(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "histfile")
	require.NoError(t, os.WriteFile(path, []byte("loaded one\nloaded two\n"), 0o644))

	sc := shellctx.New()
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"-r", path}))
	assert.Empty(t, errOut.String())
	assert.Equal(t, []string{"loaded one", "loaded two"}, sc.History.All())
}

func TestHistory_WriteFlagOverwritesFile(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "histfile")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	sc := newHistoryCtx(t, "fresh one")
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"-w", path}))
	assert.Empty(t, errOut.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh one\n", string(data))
}

func TestHistory_AppendFlagAppendsAndClearsBuffer(t *testing.T) {
	cmd, ok := commands.Get("history")
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "histfile")
	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

	sc := newHistoryCtx(t, "new entry")
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"-a", path}))
	assert.Empty(t, errOut.String())
	assert.Empty(t, sc.History.All())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\nnew entry\n", string(data))
}
