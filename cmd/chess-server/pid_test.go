package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDFileLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.pid")

	p, err := acquirePIDFile(path, true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	// Our own PID is alive
	_, err = acquirePIDFile(path, true)
	assert.Error(t, err)

	p.Release()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPIDFileStaleReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.pid")
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0644))

	p, err := acquirePIDFile(path, true)
	require.NoError(t, err)
	defer p.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
}
