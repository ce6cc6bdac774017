package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/magics/internal/helpers"
)

type Bitboard uint64

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank4 Bitboard = Rank1 << (8 * 3)
	Rank5 Bitboard = Rank1 << (8 * 4)
	Rank8 Bitboard = Rank1 << (8 * 7)
)

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(s Square) Bitboard {
	return SingleBitboards[s]
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		locations,
		Bitboard(0),
		func(result Bitboard, location string) Bitboard {
			square, err := SquareFromString(location)
			if !IsNil(err) {
				panic(err)
			}
			return result | SingleBitboard(square)
		},
	)
}

func (b Bitboard) OnesCount() int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) Has(s Square) bool {
	return b&SingleBitboard(s) != 0
}

// FirstIndexOfOne is a forward bit scan. An empty board scans to 64.
func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

// NextIndexOfOne returns the lowest set index and the board with it cleared.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := b.FirstIndexOfOne()
	return index, b & (b - 1)
}

func (b Bitboard) EachIndexOfOne(callback func(int)) {
	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

func (b Bitboard) Squares() []Square {
	result := make([]Square, 0, b.OnesCount())
	b.EachIndexOfOne(func(index int) {
		result = append(result, Square(index))
	})
	return result
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		// mirror the bits so file a is printed first
		row := uint8(b >> (8 * rank))
		ranks[7-rank] = fmt.Sprintf("%08b", ReverseBits(row))
	}

	return strings.Join(ranks[0:], "\n")
}

// BitboardFromStrings reads a diagram with rank 8 first and file a leftmost.
func BitboardFromStrings(strings [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range strings {
		for file, c := range line {
			if c == '1' {
				index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)})
				b |= SingleBitboard(Square(index))
			}
		}
	}
	return b
}
