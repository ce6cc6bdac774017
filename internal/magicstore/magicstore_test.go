package magicstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/magic"
)

func openTestStore(t *testing.T) *Store {
	store, err := OpenInMemory()
	require.True(t, IsNil(err), err.String())
	t.Cleanup(func() {
		assert.True(t, IsNil(store.Close()))
	})
	return store
}

func TestLoadWithoutSave(t *testing.T) {
	store := openTestStore(t)

	magics, found, err := store.Load("rook")
	assert.True(t, IsNil(err))
	assert.False(t, found)
	assert.Equal(t, [64]magic.MagicValue{}, magics)
}

func TestSaveThenLoad(t *testing.T) {
	store := openTestStore(t)

	require.True(t, IsNil(store.Save("bishop", magic.BishopBestMagics)))

	magics, found, err := store.Load("bishop")
	assert.True(t, IsNil(err))
	assert.True(t, found)
	assert.Equal(t, magic.BishopBestMagics, magics)

	known, err := store.KnownMagics("rook", "bishop")
	assert.True(t, IsNil(err))
	assert.NotContains(t, known, "rook")
	assert.Equal(t, magic.BishopBestMagics, known["bishop"])
}

func TestSaveEntriesKeepsOlderMagicsForFailedSquares(t *testing.T) {
	store := openTestStore(t)

	older := [64]magic.MagicValue{}
	older[A1] = magic.MagicValue{Magic: 0x1234, BitsInMagicIndex: 12}
	older[B1] = magic.MagicValue{Magic: 0x5678, BitsInMagicIndex: 11}
	require.True(t, IsNil(store.Save("bishop", older)))

	entries, err := magic.FindMagics(magic.Bishop, magic.DefaultOptions())
	require.True(t, IsNil(err))

	// pretend a1 failed this time
	entries[A1] = magic.Entry{}
	require.True(t, IsNil(store.SaveEntries("bishop", entries)))

	magics, found, err := store.Load("bishop")
	require.True(t, IsNil(err))
	assert.True(t, found)
	assert.Equal(t, older[A1], magics[A1])
	assert.Equal(t, entries[B1].Value(), magics[B1])
	assert.Equal(t, entries[H8].Value(), magics[H8])
}

func TestStoredMagicsSeedTheNextSearch(t *testing.T) {
	store := openTestStore(t)

	options := magic.DefaultOptions()
	first, err := magic.FindMagics(magic.Rook, options)
	require.True(t, IsNil(err))
	require.True(t, IsNil(store.SaveEntries(magic.Rook.Name, first)))

	known, err := store.KnownMagics(magic.Rook.Name)
	require.True(t, IsNil(err))

	// only the stored magics are candidates now
	options.KnownMagics = known
	options.Seed = 1000
	for _, s := range []Square{A1, E4, H8} {
		entry, attempts, err := magic.FindMagic(magic.Rook, s, options)
		require.True(t, IsNil(err))
		assert.Equal(t, 1, attempts)
		assert.Equal(t, first[s].Magic, entry.Magic)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.True(t, IsNil(err), err.String())
	require.True(t, IsNil(store.Save("rook", magic.RookBestMagics)))
	require.True(t, IsNil(store.Close()))

	reopened, err := Open(dir)
	require.True(t, IsNil(err), err.String())
	defer reopened.Close()

	magics, found, err := reopened.Load("rook")
	assert.True(t, IsNil(err))
	assert.True(t, found)
	assert.Equal(t, magic.RookBestMagics, magics)
}
