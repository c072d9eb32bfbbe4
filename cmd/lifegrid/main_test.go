package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true,
	// which makes run return a nil error without starting the server.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BadConfig(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "lifegrid.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`server {`), 0o600))

	err := run(&bytes.Buffer{}, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load configuration")
}
