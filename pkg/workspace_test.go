package pkg

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspacesAreUnique(t *testing.T) {
	root := t.TempDir()
	a, err := NewWorkspace(root)
	require.NoError(t, err)
	b, err := NewWorkspace(root)
	require.NoError(t, err)

	assert.NotEqual(t, a.Dir, b.Dir)
	assert.DirExists(t, a.Dir)
	assert.DirExists(t, b.Dir)
	assert.Equal(t, filepath.Join(a.Dir, "video.mp4"), a.Path("video.mp4"))
}

func TestWorkspaceRemoveIsIdempotent(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.Path("f"), []byte("x"), 0o644))

	ws.Remove()
	ws.Remove()
	assert.NoDirExists(t, ws.Dir)
}

func TestCleanupFileRemovesWorkspaceOnClose(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ws.Path("output.mp4"), []byte("merged video"), 0o644))

	f, size, err := ws.Open("output.mp4")
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "merged video", string(data))
	assert.DirExists(t, ws.Dir)

	require.NoError(t, f.Close())
	assert.NoDirExists(t, ws.Dir)
}

func TestWorkspaceOpenMissing(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	require.NoError(t, err)
	_, _, err = ws.Open("nope.mp4")
	assert.Error(t, err)
}

func TestJanitorSweep(t *testing.T) {
	root := t.TempDir()
	old := time.Now().Add(-2 * time.Hour)

	stale := filepath.Join(root, uuid.NewString())
	fresh := filepath.Join(root, uuid.NewString())
	foreign := filepath.Join(root, "not-a-workspace")
	for _, dir := range []string{stale, fresh, foreign} {
		require.NoError(t, os.Mkdir(dir, 0o755))
	}
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(foreign, old, old))

	n, err := NewJanitor(root, time.Hour, 0).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoDirExists(t, stale)
	assert.DirExists(t, fresh)
	assert.DirExists(t, foreign)
}

func TestJanitorSweepMissingRoot(t *testing.T) {
	n, err := NewJanitor(filepath.Join(t.TempDir(), "missing"), time.Hour, 0).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
