package magic

import (
	"fmt"
	"math/bits"
	"math/rand"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
)

// Report describes how the search went for one square.
type Report struct {
	Slider    string `json:"slider"`
	Square    string `json:"square"`
	Magic     uint64 `json:"magic"`
	IndexBits int    `json:"indexBits"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
}

func checkMask(slider Slider, s Square, mask Bitboard) Error {
	if mask == 0 || mask.Has(s) || mask.OnesCount() > MaxIndexBits {
		return Errorf("%v %v: mask 0x%016x: %w", slider.Name, s, uint64(mask), ErrMalformedMask)
	}
	return NilError
}

func rand64(r *rand.Rand) uint64 {
	return r.Uint64()
}

func mostlyZeroRand64(r *rand.Rand) uint64 {
	x := rand64(r)
	y := rand64(r)
	z := rand64(r)
	return x & y & z
}

// randForSquare gives every (slider, square) its own stream so results don't
// depend on which worker searched which square.
func randForSquare(slider Slider, s Square, seed int64) *rand.Rand {
	key := fmt.Sprintf("%s/%d/%d", slider.Name, int(s), seed)
	return rand.New(rand.NewSource(int64(xxhash.Sum64String(key))))
}

func hasEnoughTopBits(mask Bitboard, magic uint64, minTopBits int) bool {
	if minTopBits <= 0 {
		return true
	}
	top := (uint64(mask) * magic) & 0xFF00000000000000
	return bits.OnesCount64(top) >= minTopBits
}

// FindMagic searches for a magic for one square. Known magics from options
// are tried before random candidates; every candidate counts towards
// MaxAttempts. It returns the entry and the number of candidates drawn.
func FindMagic(slider Slider, s Square, options Options) (Entry, int, Error) {
	MustBeOnBoard(s)
	options = options.withDefaults()

	mask := slider.Mask(s)
	err := checkMask(slider, s, mask)
	if !IsNil(err) {
		return Entry{}, 0, err
	}

	bitsInIndex := mask.OnesCount()
	moves := generateMoveBoards(slider, s, mask)

	scratch := getScratch()
	defer releaseScratch(scratch)

	var accept = func(magic uint64) Entry {
		return Entry{
			Mask:      mask,
			Magic:     magic,
			IndexBits: uint8(bitsInIndex),
			Table:     scratch.Copy(bitsInIndex),
		}
	}

	attempts := 0

	if known, ok := options.KnownMagics[slider.Name]; ok {
		magic := known[s].Magic
		if magic != 0 && attempts < options.MaxAttempts {
			attempts++
			if options.Validate(magic, moves, bitsInIndex, scratch) {
				return accept(magic), attempts, NilError
			}
		}
	}

	r := randForSquare(slider, s, options.Seed)
	for attempts < options.MaxAttempts {
		attempts++

		magic := mostlyZeroRand64(r)
		if !hasEnoughTopBits(mask, magic, options.MinTopBits) {
			continue
		}

		if options.Validate(magic, moves, bitsInIndex, scratch) {
			return accept(magic), attempts, NilError
		}
	}

	return Entry{Mask: mask, IndexBits: uint8(bitsInIndex)}, attempts, Errorf(
		"%v %v: no magic after %v candidates: %w",
		slider.Name, s, humanize.Comma(int64(attempts)), ErrMagicSearchExhausted)
}

// FindMagics searches all 64 squares of a slider. A malformed mask on any
// square aborts before searching. Exhausted squares don't stop the others:
// their entries are returned without a table and every failure is joined into
// the returned error.
func FindMagics(slider Slider, options Options) ([64]Entry, Error) {
	options = options.withDefaults()
	entries := [64]Entry{}

	for s := A1; s <= H8; s++ {
		err := checkMask(slider, s, slider.Mask(s))
		if !IsNil(err) {
			return entries, err
		}
	}

	errs := [64]Error{}
	totalAttempts := int64(0)

	g := errgroup.Group{}
	g.SetLimit(options.Workers)

	for s := A1; s <= H8; s++ {
		s := s
		g.Go(func() error {
			entry, attempts, err := FindMagic(slider, s, options)
			entries[s] = entry
			errs[s] = err
			atomic.AddInt64(&totalAttempts, int64(attempts))

			if options.Observer != nil {
				report := Report{
					Slider:    slider.Name,
					Square:    s.String(),
					Magic:     entry.Magic,
					IndexBits: int(entry.IndexBits),
					Attempts:  attempts,
				}
				if !IsNil(err) {
					report.Error = err.Error()
				}
				options.Observer(report)
			}

			// failures are collected per square so the group never cancels
			return nil
		})
	}
	_ = g.Wait()

	errRef := ErrorRef{}
	for _, err := range errs {
		errRef.Add(err)
	}

	options.Logger.Printf("%v magics: %v/64 squares, %v candidates (scratch %v)\n",
		slider.Name, 64-errRef.NumErrors(), humanize.Comma(totalAttempts), statsScratch())

	return entries, errRef.Error()
}
