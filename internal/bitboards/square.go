package bitboards

import (
	"errors"
	"fmt"

	. "github.com/cricklet/magics/internal/helpers"
)

// Square indexes the board with a1 = 0, h1 = 7, a8 = 56 and h8 = 63.
type Square int

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8

	NumSquares = 64
)

var ErrOutOfRangeSquare = errors.New("square out of range")

func (s Square) IsValid() bool {
	return s >= A1 && s <= H8
}

func (s Square) File() File {
	return File(s & 0b111)
}

func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

func (s Square) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return StringFromBoardIndex(int(s))
}

func (s Square) Bitboard() Bitboard {
	return SingleBitboard(s)
}

func SquareFromString(s string) (Square, Error) {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		return 0, Join(Errorf("%q: %w", s, ErrOutOfRangeSquare), err)
	}
	return Square(IndexFromFileRank(location)), NilError
}

// MustBeOnBoard panics if s is not in [0, 63]. Queries treat an out of range
// square as a programmer error.
func MustBeOnBoard(s Square) {
	if !s.IsValid() {
		panic(Errorf("%w: %d", ErrOutOfRangeSquare, int(s)))
	}
}
