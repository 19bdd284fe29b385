package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitError
	require.True(t, errors.As(err, &ee), "got %v", err)
	return ee.code
}

func TestCallExecute(t *testing.T) {
	out, _, err := run(t, `{"function":"greet","input":{"name":"Ada"},"journeyData":{}}`, "call", "execute")
	require.NoError(t, err)
	assert.Contains(t, out, `"greeting":"Hello, Ada!"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestCallSoftFailureExitsZero(t *testing.T) {
	out, _, err := run(t, `{"function":"validate","input":{},"journeyData":{}}`, "call", "validate_input")
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"error":"Email is required","action":"fail"}`+"\n", out)
}

func TestCallHardFailureExitsOne(t *testing.T) {
	out, _, err := run(t, `not json`, "call", "execute")
	assert.Empty(t, out)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "Failed to parse input")
}

func TestCallCollectDataIgnoresStdin(t *testing.T) {
	out, _, err := run(t, "", "call", "collect_data")
	require.NoError(t, err)
	assert.Contains(t, out, `"action":"requireInput"`)
}

func TestCallFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"function":"branch","input":{"role":"moderator"},"journeyData":{}}`), 0o600))

	out, _, err := run(t, "", "call", "execute", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"branchId":"moderator_flow"`)

	_, _, err = run(t, "", "call", "execute", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 2, exitCode(t, err))
}

func TestCallUnknownEntryPoint(t *testing.T) {
	_, _, err := run(t, "{}", "call", "nope")
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "collect_data, execute, validate_input")
}

func TestCallVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := run(t, `{"function":"transform","input":{},"journeyData":{}}`, "call", "execute", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "dispatched")
}
