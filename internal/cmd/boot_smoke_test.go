package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pipeStdin(t *testing.T, input string) {
	t.Helper()

	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	_, _ = io.WriteString(w, input)
	_ = w.Close()
	os.Stdin = r
}

func TestLoginCmdRejectsEmptyUsername(t *testing.T) {
	pipeStdin(t, "\n")

	cmd := LoginCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
}

func TestLoginCmdRejectsEmptyPassword(t *testing.T) {
	pipeStdin(t, "admin\n\n")

	cmd := LoginCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}

func TestSearchCmdRequiresQuery(t *testing.T) {
	cmd := SearchCmd()
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestLogoutCmdWithoutSavedLoginSucceeds(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := LogoutCmd()
	cmd.SetArgs([]string{})
	assert.NoError(t, cmd.Execute())
}
