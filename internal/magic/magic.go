package magic

import (
	"errors"
	"fmt"

	. "github.com/cricklet/magics/internal/bitboards"
)

// MaxIndexBits is the widest index any rook or bishop square needs.
const MaxIndexBits = 12

var (
	ErrMalformedMask        = errors.New("malformed occupancy mask")
	ErrMagicSearchExhausted = errors.New("magic search exhausted its attempt budget")
)

// Slider describes a sliding piece: which squares can block it and how it
// attacks through a given occupancy.
type Slider struct {
	Name    string
	Mask    func(Square) Bitboard
	Attacks func(Square, Bitboard) Bitboard
}

var Rook = Slider{"rook", RookMask, RookAttacks}
var Bishop = Slider{"bishop", BishopMask, BishopAttacks}

type MagicValue struct {
	Magic            uint64
	BitsInMagicIndex int
}

func (m MagicValue) String() string {
	return fmt.Sprintf("{0x%016x, %v}", m.Magic, m.BitsInMagicIndex)
}

// Entry is the magic lookup for one square. Attacks for an occupancy are
//
//	Table[((occupancy & Mask) * Magic) >> (64 - IndexBits)]
type Entry struct {
	Mask      Bitboard
	Magic     uint64
	IndexBits uint8
	Table     []Bitboard
}

// Ready is false for squares whose search failed.
func (e Entry) Ready() bool {
	return len(e.Table) == 1<<e.IndexBits && e.Table != nil
}

func (e Entry) Index(occupancy Bitboard) int {
	return MagicIndex(e.Magic, occupancy&e.Mask, int(e.IndexBits))
}

func (e Entry) Attacks(occupancy Bitboard) Bitboard {
	return e.Table[e.Index(occupancy)]
}

func (e Entry) Value() MagicValue {
	return MagicValue{e.Magic, int(e.IndexBits)}
}

// MagicIndex hashes a masked occupancy into [0, 2^bitsInIndex).
func MagicIndex(magic uint64, blockerBoard Bitboard, bitsInIndex int) int {
	mult := uint64(blockerBoard) * magic
	shift := 64 - bitsInIndex
	result := mult >> shift
	return int(result)
}

type MoveBoardForBlockerBoard struct {
	MoveBoard    Bitboard
	BlockerBoard Bitboard
}

// generateMoveBoards pairs every subset of blockerMask with the true attack
// set of the slider through it.
func generateMoveBoards(slider Slider, s Square, blockerMask Bitboard) []MoveBoardForBlockerBoard {
	blockerBoards := Occupancies(blockerMask)

	result := make([]MoveBoardForBlockerBoard, len(blockerBoards))
	for i, blockerBoard := range blockerBoards {
		result[i] = MoveBoardForBlockerBoard{
			MoveBoard:    slider.Attacks(s, blockerBoard),
			BlockerBoard: blockerBoard,
		}
	}
	return result
}

// FormatMagics renders magics as a Go declaration that can be pasted back in
// as known magics.
func FormatMagics(name string, magics [64]MagicValue) string {
	result := fmt.Sprintf("var %s = [64]MagicValue{\n", name)
	for i := 0; i < 64; i += 4 {
		result += "\t"
		for j := i; j < i+4; j++ {
			result += fmt.Sprintf("{0x%016x, %v},", magics[j].Magic, magics[j].BitsInMagicIndex)
			if j != i+3 {
				result += " "
			}
		}
		result += "\n"
	}
	return result + "}\n"
}
