package embedded

import (
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFS(t *testing.T, fsys fstest.MapFS) {
	t.Helper()
	Init(fsys)
	t.Cleanup(func() { Init(nil) })
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/mix.yaml":       {Data: []byte("default_mix: 0.2\n")},
		"data/mixes/a.yaml":   {Data: []byte("a")},
		"data/mixes/b.yaml":   {Data: []byte("b")},
		"data/mixes/skip.txt": {Data: []byte("skip")},
	}
}

func TestNotInitialized(t *testing.T) {
	Init(nil)
	assert.False(t, IsInitialized())
	assert.Nil(t, FS())

	_, err := Open("data/mix.yaml")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = ReadFile("data/mix.yaml")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = Glob("data/*.yaml")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = ReadDir("data")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = Sub("data")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = Stat("data/mix.yaml")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.False(t, Exists("data/mix.yaml"))
}

func TestInvalidPrefix(t *testing.T) {
	withFS(t, testFS())

	for _, path := range []string{"assets/x.png", "mix.yaml", "/data/mix.yaml", "database/x"} {
		_, err := ReadFile(path)
		assert.ErrorIs(t, err, ErrUnknownPrefix, path)
	}
}

func TestPathNormalization(t *testing.T) {
	withFS(t, testFS())

	for _, path := range []string{"data/mix.yaml", "./data/mix.yaml"} {
		b, err := ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, "default_mix: 0.2\n", string(b))
	}
}

func TestAccessors(t *testing.T) {
	withFS(t, testFS())
	assert.True(t, IsInitialized())

	f, err := Open("data/mixes/a.yaml")
	require.NoError(t, err)
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "a", string(b))

	assert.True(t, Exists("data/mix.yaml"))
	assert.False(t, Exists("data/missing.yaml"))

	files, err := Glob("data/mixes/*.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"data/mixes/a.yaml", "data/mixes/b.yaml"}, files)

	entries, err := ReadDir("data/mixes")
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	sub, err := Sub("data/mixes")
	require.NoError(t, err)
	b, err = fs.ReadFile(sub, "b.yaml")
	require.NoError(t, err)
	assert.Equal(t, "b", string(b))

	info, err := Stat("data/mixes")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
