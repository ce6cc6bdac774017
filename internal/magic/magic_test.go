package magic

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
)

func searchOnly(seed int64) Options {
	options := DefaultOptions()
	options.Seed = seed
	options.KnownMagics = nil
	return options
}

func assertEntryIsPerfect(t *testing.T, slider Slider, s Square, entry Entry) {
	require.True(t, entry.Ready(), "%v %v", slider.Name, s)
	require.Equal(t, slider.Mask(s), entry.Mask)
	require.Equal(t, slider.Mask(s).OnesCount(), int(entry.IndexBits))
	require.Len(t, entry.Table, 1<<entry.IndexBits)

	for _, occupancy := range Occupancies(entry.Mask) {
		index := MagicIndex(entry.Magic, occupancy, int(entry.IndexBits))
		require.GreaterOrEqual(t, index, 0)
		require.Less(t, index, 1<<entry.IndexBits)
		require.Equal(t, slider.Attacks(s, occupancy), entry.Table[index],
			"%v %v occupancy\n%v\n%v", slider.Name, s, occupancy, spew.Sdump(entry.Value()))
	}
}

func TestFindMagicCoversEverySubset(t *testing.T) {
	for _, slider := range []Slider{Rook, Bishop} {
		for _, s := range []Square{A1, H1, D4, E4, B7, H8} {
			entry, attempts, err := FindMagic(slider, s, searchOnly(3))
			require.True(t, IsNil(err), err.String())
			assert.Greater(t, attempts, 0)
			assertEntryIsPerfect(t, slider, s, entry)
		}
	}
}

func TestKnownMagicsAreTriedFirst(t *testing.T) {
	found, _, err := FindMagic(Rook, E4, searchOnly(11))
	require.True(t, IsNil(err))

	known := [64]MagicValue{}
	known[E4] = found.Value()

	options := searchOnly(99)
	options.KnownMagics = map[string][64]MagicValue{Rook.Name: known}

	entry, attempts, err := FindMagic(Rook, E4, options)
	require.True(t, IsNil(err))
	assert.Equal(t, 1, attempts)
	assert.Equal(t, found.Magic, entry.Magic)
	assertEntryIsPerfect(t, Rook, E4, entry)
}

func TestBadKnownMagicFallsBackToSearch(t *testing.T) {
	known := [64]MagicValue{}
	// every occupancy of a1 hashes to slot 0
	known[A1] = MagicValue{Magic: 1, BitsInMagicIndex: 12}

	options := searchOnly(5)
	options.KnownMagics = map[string][64]MagicValue{Rook.Name: known}

	entry, attempts, err := FindMagic(Rook, A1, options)
	require.True(t, IsNil(err))
	assert.Greater(t, attempts, 1)
	assert.NotEqual(t, uint64(1), entry.Magic)
	assertEntryIsPerfect(t, Rook, A1, entry)
}

func TestEmbeddedMagicsValidateOnTheFirstAttempt(t *testing.T) {
	options := DefaultOptions()
	options.MaxAttempts = 1

	for _, slider := range []Slider{Rook, Bishop} {
		known := options.KnownMagics[slider.Name]
		for s := A1; s <= H8; s++ {
			assert.Equal(t, slider.Mask(s).OnesCount(), known[s].BitsInMagicIndex, "%v %v", slider.Name, s)

			entry, attempts, err := FindMagic(slider, s, options)
			require.True(t, IsNil(err), err.String())
			assert.Equal(t, 1, attempts)
			assert.Equal(t, known[s], entry.Value())
		}
	}
}

func TestEveryRookSquareIsFoundAcrossSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("searches all rook squares for several seeds")
	}

	for seed := int64(0); seed < 10; seed++ {
		entries, err := FindMagics(Rook, searchOnly(seed))
		require.True(t, IsNil(err), "seed %v: %v", seed, err)
		for s := A1; s <= H8; s++ {
			assertEntryIsPerfect(t, Rook, s, entries[s])
		}
	}
}

func TestDefaultOptionsDoNotFilterCandidates(t *testing.T) {
	assert.Equal(t, 0, DefaultOptions().MinTopBits)

	// the a1 mask times one leaves the top byte empty
	assert.True(t, hasEnoughTopBits(RookMask(A1), 1, DefaultOptions().MinTopBits))
	assert.False(t, hasEnoughTopBits(RookMask(A1), 1, 6))
}

func TestEmbeddedMagicsAreOnlyCandidates(t *testing.T) {
	for _, slider := range []Slider{Rook, Bishop} {
		entries, err := FindMagics(slider, DefaultOptions())
		require.True(t, IsNil(err), err.String())
		for s := A1; s <= H8; s++ {
			assertEntryIsPerfect(t, slider, s, entries[s])
		}
	}
}

func TestSearchIsBoundedWhenEveryCandidateCollides(t *testing.T) {
	calls := 0
	options := searchOnly(1)
	options.MaxAttempts = 500
	options.MinTopBits = 0
	options.Validate = func(uint64, []MoveBoardForBlockerBoard, int, *Scratch) bool {
		calls++
		return false
	}

	var entry Entry
	var attempts int
	var err Error
	assert.NotPanics(t, func() {
		entry, attempts, err = FindMagic(Rook, D4, options)
	})

	assert.True(t, errors.Is(err, ErrMagicSearchExhausted))
	assert.Contains(t, err.Error(), "rook d4")
	assert.Equal(t, 500, attempts)
	assert.Equal(t, 500, calls)
	assert.False(t, entry.Ready())
}

func TestRejectedCandidatesCountTowardsTheBudget(t *testing.T) {
	options := searchOnly(1)
	options.MaxAttempts = 1000
	// a top byte never has nine bits set
	options.MinTopBits = 9
	options.Validate = func(uint64, []MoveBoardForBlockerBoard, int, *Scratch) bool {
		t.Fatal("rejected candidates should never be validated")
		return true
	}

	_, attempts, err := FindMagic(Bishop, C1, options)
	assert.True(t, errors.Is(err, ErrMagicSearchExhausted))
	assert.Equal(t, 1000, attempts)
}

func TestOneSquareFailingDoesNotStopTheOthers(t *testing.T) {
	reports := int32(0)
	// embedded magics settle every square that needs fewer than twelve bits
	options := DefaultOptions()
	options.Observer = func(r Report) {
		atomic.AddInt32(&reports, 1)
	}
	options.MaxAttempts = 20_000
	options.Validate = func(magic uint64, moves []MoveBoardForBlockerBoard, bitsInIndex int, scratch *Scratch) bool {
		// only the corners need twelve bits
		if bitsInIndex == 12 {
			return false
		}
		return ValidateMagic(magic, moves, bitsInIndex, scratch)
	}

	entries, err := FindMagics(Rook, options)
	assert.True(t, errors.Is(err, ErrMagicSearchExhausted))
	assert.Equal(t, 4, err.NumErrors())
	assert.Equal(t, int32(64), atomic.LoadInt32(&reports))

	for s := A1; s <= H8; s++ {
		switch s {
		case A1, H1, A8, H8:
			assert.False(t, entries[s].Ready(), s.String())
			assert.Contains(t, err.Error(), "rook "+s.String())
		default:
			assertEntryIsPerfect(t, Rook, s, entries[s])
		}
	}
}

func TestMalformedMaskAbortsTheSearch(t *testing.T) {
	emptyMask := Slider{
		Name:    "broken",
		Mask:    func(Square) Bitboard { return 0 },
		Attacks: RookAttacks,
	}
	reports := 0
	options := searchOnly(0)
	options.Observer = func(Report) { reports++ }

	_, _, err := FindMagic(emptyMask, E4, options)
	assert.True(t, errors.Is(err, ErrMalformedMask))

	_, err = FindMagics(emptyMask, options)
	assert.True(t, errors.Is(err, ErrMalformedMask))
	assert.Equal(t, 0, reports)

	includesOrigin := Slider{
		Name:    "origin",
		Mask:    func(s Square) Bitboard { return RookMask(s) | SingleBitboard(s) },
		Attacks: RookAttacks,
	}
	_, _, err = FindMagic(includesOrigin, E4, options)
	assert.True(t, errors.Is(err, ErrMalformedMask))
}

func TestSearchIsDeterministicAcrossWorkers(t *testing.T) {
	single := searchOnly(4)
	single.Workers = 1
	many := searchOnly(4)
	many.Workers = 8
	other := searchOnly(7)
	other.Workers = 8

	for _, slider := range []Slider{Bishop, Rook} {
		a, err := FindMagics(slider, single)
		require.True(t, IsNil(err))
		b, err := FindMagics(slider, many)
		require.True(t, IsNil(err))
		c, err := FindMagics(slider, other)
		require.True(t, IsNil(err))

		differs := false
		for s := A1; s <= H8; s++ {
			assert.Equal(t, a[s].Magic, b[s].Magic, "%v %v", slider.Name, s)
			assert.Equal(t, a[s].Table, b[s].Table)
			differs = differs || a[s].Magic != c[s].Magic
		}
		assert.True(t, differs, "different seeds should give different magics")
	}
}

func TestValidateMagicAllowsSharedSlotsForEqualAttacks(t *testing.T) {
	scratch := &Scratch{}
	same := []MoveBoardForBlockerBoard{
		{MoveBoard: 0b110, BlockerBoard: 0b001},
		{MoveBoard: 0b110, BlockerBoard: 0b011},
	}
	different := []MoveBoardForBlockerBoard{
		{MoveBoard: 0b110, BlockerBoard: 0b001},
		{MoveBoard: 0b010, BlockerBoard: 0b011},
	}

	// a zero magic sends every blocker board to slot 0
	assert.True(t, ValidateMagic(0, same, 4, scratch))
	assert.False(t, ValidateMagic(0, different, 4, scratch))

	// a fresh reset forgets the previous candidate
	assert.True(t, ValidateMagic(0, same[:1], 4, scratch))
	table := scratch.Copy(4)
	assert.Len(t, table, 16)
	assert.Equal(t, Bitboard(0b110), table[0])
	assert.Equal(t, Bitboard(0), table[1])
}

func TestScratchGenerationWraps(t *testing.T) {
	scratch := &Scratch{}
	scratch.Reset()
	scratch.Store(7, 42)

	scratch.current = ^uint32(0)
	scratch.generation[7] = 1
	scratch.Reset()

	_, ok := scratch.Lookup(7)
	assert.False(t, ok)
	assert.Equal(t, uint32(1), scratch.current)
}

func TestOptionsFromArgs(t *testing.T) {
	options, err := OptionsFromArgs("seed=12", "attempts=5000", "topbits=4", "workers=2", "noknown")
	require.True(t, IsNil(err))
	assert.Equal(t, int64(12), options.Seed)
	assert.Equal(t, 5000, options.MaxAttempts)
	assert.Equal(t, 4, options.MinTopBits)
	assert.Equal(t, 2, options.Workers)
	assert.Nil(t, options.KnownMagics)

	options, err = OptionsFromArgs()
	require.True(t, IsNil(err))
	assert.Equal(t, DefaultMaxAttempts, options.MaxAttempts)
	assert.Contains(t, options.KnownMagics, "rook")

	for _, bad := range []string{"seed=x", "attempts=0", "workers=-1", "fast"} {
		_, err = OptionsFromArgs(bad)
		assert.False(t, IsNil(err), bad)
	}
}

func TestFormatMagics(t *testing.T) {
	magics := [64]MagicValue{}
	magics[A1] = MagicValue{Magic: 0x8180001080224004, BitsInMagicIndex: 12}
	magics[H8] = MagicValue{Magic: 0x1, BitsInMagicIndex: 6}

	formatted := FormatMagics("RookBestMagics", magics)
	lines := strings.Split(strings.TrimSpace(formatted), "\n")
	assert.Len(t, lines, 18)
	assert.Equal(t, "var RookBestMagics = [64]MagicValue{", lines[0])
	assert.Equal(t, "\t{0x8180001080224004, 12}, {0x0000000000000000, 0}, {0x0000000000000000, 0}, {0x0000000000000000, 0},", lines[1])
	assert.True(t, strings.HasSuffix(lines[16], "{0x0000000000000001, 6},"))
	assert.Equal(t, "}", lines[17])
}
