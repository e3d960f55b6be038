package pid_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwcaps.pid")

	require.NoError(t, pid.Write(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	// rewriting our own pid is allowed
	require.NoError(t, pid.Write(path))

	require.NoError(t, pid.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, pid.Remove(path))
}

func TestWriteHeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwcaps.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o600))

	err := pid.Write(path)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))
}

func TestWriteTakesOverStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwcaps.pid")
	require.NoError(t, os.WriteFile(path, []byte("0\n"), 0o600))

	require.NoError(t, pid.Write(path))
}

func TestWriteCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwcaps.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0o600))

	err := pid.Write(path)
	assert.True(t, errors.HasCode(err, errors.ErrInternal))
}

func TestWriteLeavesLiveHolderUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwcaps.pid")
	holder := strconv.Itoa(os.Getppid())
	require.NoError(t, os.WriteFile(path, []byte(holder), 0o600))

	for i := 0; i < 3; i++ {
		require.Error(t, pid.Write(path))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, holder, string(data))
}

func TestWriteStaleTakeoverCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hwcaps.pid")
	require.NoError(t, os.WriteFile(path, []byte("0"), 0o600))

	require.NoError(t, pid.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
