package lookup

import (
	"errors"
	"fmt"

	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/magic"
)

// LookUp holds every attack table a move generator needs. It is only built
// by Build and never changes afterwards, so one *LookUp can be shared by any
// number of goroutines without locking.
type LookUp struct {
	rook   [64]magic.Entry
	bishop [64]magic.Entry

	king   [64]Bitboard
	knight [64]Bitboard
	pawn   [2][64]Bitboard

	failed []string
}

// Build searches rook and bishop magics for every square and fills the leaper
// tables.
//
// A malformed mask returns a nil LookUp. If only some squares run out of
// attempts, Build still returns the LookUp along with an error naming each
// failed square; querying one of those squares panics.
func Build(options magic.Options) (*LookUp, Error) {
	return build(magic.Rook, magic.Bishop, options)
}

func isMalformed(err Error) bool {
	return !IsNil(err) && errors.Is(err, magic.ErrMalformedMask)
}

func build(rookSlider magic.Slider, bishopSlider magic.Slider, options magic.Options) (*LookUp, Error) {
	l := &LookUp{}

	rook, rookErr := magic.FindMagics(rookSlider, options)
	if isMalformed(rookErr) {
		return nil, rookErr
	}
	bishop, bishopErr := magic.FindMagics(bishopSlider, options)
	if isMalformed(bishopErr) {
		return nil, bishopErr
	}

	l.rook = rook
	l.bishop = bishop

	for s := A1; s <= H8; s++ {
		if !l.rook[s].Ready() {
			l.failed = append(l.failed, fmt.Sprint(rookSlider.Name, " ", s))
		}
		if !l.bishop[s].Ready() {
			l.failed = append(l.failed, fmt.Sprint(bishopSlider.Name, " ", s))
		}
	}

	fillLeaperTables(l)

	return l, Join(rookErr, bishopErr)
}

func fillLeaperTables(l *LookUp) {
	for s := A1; s <= H8; s++ {
		pieceBoard := SingleBitboard(s)
		l.king[s] = KingAttacks(pieceBoard)
		l.knight[s] = KnightAttacks(pieceBoard)
		for _, player := range AllPlayers {
			l.pawn[player][s] = PawnAttacks(player, pieceBoard)
		}
	}
}

func sliderEntry(entries *[64]magic.Entry, name string, s Square) *magic.Entry {
	MustBeOnBoard(s)
	entry := &entries[s]
	if !entry.Ready() {
		panic(Errorf("%v %v has no magic table: %w", name, s, magic.ErrMagicSearchExhausted))
	}
	return entry
}

func (l *LookUp) RookAttacks(s Square, occupancy Bitboard) Bitboard {
	return sliderEntry(&l.rook, magic.Rook.Name, s).Attacks(occupancy)
}

func (l *LookUp) BishopAttacks(s Square, occupancy Bitboard) Bitboard {
	return sliderEntry(&l.bishop, magic.Bishop.Name, s).Attacks(occupancy)
}

func (l *LookUp) QueenAttacks(s Square, occupancy Bitboard) Bitboard {
	return l.RookAttacks(s, occupancy) | l.BishopAttacks(s, occupancy)
}

func (l *LookUp) KingAttacks(s Square) Bitboard {
	MustBeOnBoard(s)
	return l.king[s]
}

func (l *LookUp) KnightAttacks(s Square) Bitboard {
	MustBeOnBoard(s)
	return l.knight[s]
}

func (l *LookUp) PawnAttacks(player Player, s Square) Bitboard {
	MustBeOnBoard(s)
	return l.pawn[player][s]
}

// RookEntry returns a copy of the square's entry. Its Table is shared with
// the LookUp and must not be written to.
func (l *LookUp) RookEntry(s Square) magic.Entry {
	MustBeOnBoard(s)
	return l.rook[s]
}

func (l *LookUp) BishopEntry(s Square) magic.Entry {
	MustBeOnBoard(s)
	return l.bishop[s]
}

// Failed lists the "<slider> <square>" pairs without a magic table.
func (l *LookUp) Failed() []string {
	return append([]string{}, l.failed...)
}

func (l *LookUp) Complete() bool {
	return len(l.failed) == 0
}

// Entries returns copies of the rook or bishop entries by slider name.
func (l *LookUp) Entries(slider string) ([64]magic.Entry, bool) {
	switch slider {
	case magic.Rook.Name:
		return l.rook, true
	case magic.Bishop.Name:
		return l.bishop, true
	}
	return [64]magic.Entry{}, false
}

// Magics returns the accepted magic of every square for a slider. Failed
// squares have a zero magic.
func (l *LookUp) Magics(slider string) ([64]magic.MagicValue, bool) {
	entries, ok := l.Entries(slider)
	result := [64]magic.MagicValue{}
	for i := range entries {
		if entries[i].Ready() {
			result[i] = entries[i].Value()
		}
	}
	return result, ok
}
