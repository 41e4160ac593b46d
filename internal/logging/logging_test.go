package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	prev := Logger()
	prevDebug := DebugEnabled()
	t.Cleanup(func() {
		SetLogger(prev)
		debugEnabled.Store(prevDebug)
	})
}

func TestInitialize_DiscardsByDefault(t *testing.T) {
	resetLogger(t)
	t.Setenv("REVIEWWATCH_DEBUG", "")
	t.Setenv("REVIEWWATCH_LOG_FILE", "")

	path, err := Initialize(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Logger())
}

func TestInitialize_ExplicitFile(t *testing.T) {
	resetLogger(t)
	t.Setenv("REVIEWWATCH_DEBUG", "")
	t.Setenv("REVIEWWATCH_LOG_FILE", "")

	file := filepath.Join(t.TempDir(), "nested", "watch.log")
	path, err := Initialize(Options{File: file})
	require.NoError(t, err)
	assert.Equal(t, file, path)
	assert.True(t, DebugEnabled())

	Logger().Info("cycle completed", "cycle_id", "abc")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"cycle completed"`)
	assert.Contains(t, string(data), `"cycle_id":"abc"`)
}

func TestInitialize_DebugWritesUUIDNamedFile(t *testing.T) {
	resetLogger(t)
	t.Setenv("REVIEWWATCH_DEBUG", "")
	t.Setenv("REVIEWWATCH_LOG_FILE", "")

	dir := t.TempDir()
	path, err := Initialize(Options{Debug: true, Dir: dir, MaxFiles: 5})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Len(t, filepath.Base(path), len("00000000-0000-0000-0000-000000000000.log"))
}

func TestInitialize_VerboseMirrorsToStderr(t *testing.T) {
	resetLogger(t)
	t.Setenv("REVIEWWATCH_DEBUG", "")
	t.Setenv("REVIEWWATCH_LOG_FILE", "")

	var stderr bytes.Buffer
	file := filepath.Join(t.TempDir(), "watch.log")
	_, err := Initialize(Options{File: file, Verbose: true, Stderr: &stderr})
	require.NoError(t, err)

	Logger().Warn("fetch failed", "error", "boom")
	assert.Contains(t, stderr.String(), "fetch failed")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetch failed")
}

func TestRotateLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.log", "b.log", "c.log", "keep.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mt := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}

	require.NoError(t, rotateLogs(dir, 2))

	_, err := os.Stat(filepath.Join(dir, "a.log"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "b.log"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "c.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	assert.NoError(t, err)
}
