package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mikael-mansson/posh/internal/commands"
	"github.com/mikael-mansson/posh/internal/shellctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho_JoinsArgsWithSingleSpace(t *testing.T) {
	cmd, ok := commands.Get("echo")
	require.True(t, ok)

	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), shellctx.New(), env, []string{"hello", "world"}))
	assert.Equal(t, "hello world\n", out.String())
}

func TestEcho_NoArgsPrintsBlankLine(t *testing.T) {
	cmd, ok := commands.Get("echo")
	require.True(t, ok)

	var out bytes.Buffer
	env := &commands.ExecutionEnv{Stdout: &out}
	require.NoError(t, cmd.Run(context.Background(), shellctx.New(), env, nil))
	assert.Equal(t, "\n", out.String())
}
