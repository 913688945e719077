package output_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/output"
)

func write(t *testing.T, sink output.Sink, name, content string) {
	t.Helper()

	f, err := sink.Create(name)
	require.NoError(t, err)

	_, err = io.WriteString(f, content)
	require.NoError(t, err)
	require.NoError(t, f.Commit())
}

func testSink(t *testing.T, sink output.Sink) {
	t.Helper()

	exists, err := sink.Exists("pkg/main.go")
	require.NoError(t, err)
	assert.False(t, exists)

	write(t, sink, "pkg/main.go", "package main\n")

	exists, err = sink.Exists("pkg/main.go")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := sink.ReadFile("pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))

	write(t, sink, "pkg/main.go", "package other\n")

	data, err = sink.ReadFile("pkg/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package other\n", string(data))

	f, err := sink.Create("dropped.txt")
	require.NoError(t, err)

	_, err = io.WriteString(f, "x")
	require.NoError(t, err)
	require.NoError(t, f.Discard())

	exists, err = sink.Exists("dropped.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemory(t *testing.T) {
	testSink(t, output.NewMemory())
}

func TestDir(t *testing.T) {
	dir := t.TempDir()

	testSink(t, output.Dir{Root: dir})

	info, err := os.Stat(filepath.Join(dir, "pkg", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
