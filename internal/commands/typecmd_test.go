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

func TestType_BuiltinWinsOverSameNamedExecutable(t *testing.T) {
	cmd, ok := commands.Get("type")
	require.True(t, ok)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo"), []byte("#!/bin/sh\n"), 0o755))

	sc := shellctx.New()
	sc.PathEnv = dir

	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"echo"}))
	assert.Equal(t, "echo is a shell builtin\n", out.String())
}

func TestType_ResolvesExternalExecutable(t *testing.T) {
	cmd, ok := commands.Get("type")
	require.True(t, ok)

	dir := t.TempDir()
	target := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0o755))

	sc := shellctx.New()
	sc.PathEnv = dir

	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"mytool"}))
	assert.Equal(t, "mytool is "+target+"\n", out.String())
}

func TestType_NoArgReportsNotFound(t *testing.T) {
	cmd, ok := commands.Get("type")
	require.True(t, ok)

	sc := shellctx.New()
	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), sc, env, nil))
	assert.Equal(t, "type: not found\n", out.String())
}

func TestType_NotFound(t *testing.T) {
	cmd, ok := commands.Get("type")
	require.True(t, ok)

	sc := shellctx.New()
	sc.PathEnv = t.TempDir()

	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), sc, env, []string{"nope-at-all"}))
	assert.Equal(t, "nope-at-all: not found\n", out.String())
}
