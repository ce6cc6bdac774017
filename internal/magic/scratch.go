package magic

import (
	. "github.com/cricklet/magics/internal/bitboards"
	. "github.com/cricklet/magics/internal/helpers"
)

// Scratch is the table a candidate magic is validated against. A slot counts
// as filled only if it was stored since the last Reset, so candidates never
// pay for clearing 4096 slots.
type Scratch struct {
	moves      [1 << MaxIndexBits]Bitboard
	generation [1 << MaxIndexBits]uint32
	current    uint32
}

func (s *Scratch) Reset() {
	s.current++
	if s.current == 0 {
		for i := range s.generation {
			s.generation[i] = 0
		}
		s.current = 1
	}
}

func (s *Scratch) Lookup(i int) (Bitboard, bool) {
	if s.generation[i] != s.current {
		return 0, false
	}
	return s.moves[i], true
}

func (s *Scratch) Store(i int, moveBoard Bitboard) {
	s.moves[i] = moveBoard
	s.generation[i] = s.current
}

// Copy returns the filled slots of the first 2^bitsInIndex entries as a
// fresh table. Unfilled slots are empty.
func (s *Scratch) Copy(bitsInIndex int) []Bitboard {
	result := make([]Bitboard, 1<<bitsInIndex)
	for i := range result {
		if moveBoard, ok := s.Lookup(i); ok {
			result[i] = moveBoard
		}
	}
	return result
}

var getScratch, releaseScratch, statsScratch = CreatePool(
	func() Scratch {
		return Scratch{}
	},
	func(s *Scratch) {
		s.Reset()
	},
)

// ValidateFunc reports whether magic hashes every blocker board to a slot
// without two different move boards colliding. It fills scratch as it goes.
type ValidateFunc func(magic uint64, moves []MoveBoardForBlockerBoard, bitsInIndex int, scratch *Scratch) bool

func ValidateMagic(magic uint64, moves []MoveBoardForBlockerBoard, bitsInIndex int, scratch *Scratch) bool {
	scratch.Reset()
	for _, move := range moves {
		i := MagicIndex(magic, move.BlockerBoard, bitsInIndex)
		if stored, ok := scratch.Lookup(i); ok {
			if stored != move.MoveBoard {
				return false
			}
		} else {
			scratch.Store(i, move.MoveBoard)
		}
	}

	return true
}
