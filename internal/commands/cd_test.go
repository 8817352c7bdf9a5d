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

func TestCd_ChangesDirectoryAndUpdatesCWD(t *testing.T) {
	cmd, ok := commands.Get("cd")
	require.True(t, ok)

	start := t.TempDir()
	target := filepath.Join(start, "child")
	require.NoError(t, os.Mkdir(target, 0o755))
	t.Chdir(start)

	sc := shellctx.New()
	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{target}))
	assert.Empty(t, errOut.String())
	assert.Equal(t, target, sc.CWD)
}

func TestCd_NoSuchDirectoryReportsError(t *testing.T) {
	cmd, ok := commands.Get("cd")
	require.True(t, ok)

	sc := shellctx.New()
	sc.CWD = t.TempDir()
	before := sc.CWD

	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"/no/such/directory/here"}))
	assert.Equal(t, "cd: /no/such/directory/here: No such file or directory\n", errOut.String())
	assert.Equal(t, before, sc.CWD)
}

func TestCd_UnresolvableHomeLeavesCWDUnchanged(t *testing.T) {
	cmd, ok := commands.Get("cd")
	require.True(t, ok)

	sc := shellctx.New()
	sc.Home = ""
	sc.CWD = t.TempDir()
	before := sc.CWD

	var out, errOut bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out, Stderr: &errOut}

	require.NoError(t, cmd.Run(context.Background(), sc, env, nil))
	assert.Empty(t, errOut.String())
	assert.Equal(t, before, sc.CWD)
}
