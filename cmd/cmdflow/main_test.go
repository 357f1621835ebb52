package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cmdflow version dev\n", out)
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "click-loop")
	assert.Contains(t, out, "drag")
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "click-loop")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `-- "body" -->`)
}

func TestGraphCommand_Unknown(t *testing.T) {
	_, err := execute(t, "graph", "missing")
	assert.Error(t, err)
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := execute(t, "run", "drag", "--json", "--log-level", "error", "--env-file", t.TempDir()+"/none.env")
	require.NoError(t, err)
	assert.Contains(t, out, `"type":"run_stopped"`)
	assert.Contains(t, out, `"state":"completed"`)
}

func TestRunCommand_BadLogLevel(t *testing.T) {
	_, err := execute(t, "run", "drag", "--log-level", "loud", "--env-file", t.TempDir()+"/none.env")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "click-loop")
	require.NoError(t, err)
	assert.Equal(t, "click-loop: ok\n", out)
}
