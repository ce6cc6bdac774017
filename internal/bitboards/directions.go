package bitboards

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NumDirs
)

var RookDirs = []Dir{
	N,
	S,
	E,
	W,
}

var BishopDirs = []Dir{
	NE,
	NW,
	SE,
	SW,
}

var KingDirs = []Dir{
	N,
	S,
	E,
	W,
	NE,
	NW,
	SE,
	SW,
}

func (d Dir) String() string {
	return [NumDirs]string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}[d]
}

// Each shift moves every square one step and drops whatever would leave the
// board. East-bound results can never land on file a and west-bound results
// can never land on file h, so those files are cleared after the shift.

func ShiftN(b Bitboard) Bitboard {
	return b << 8
}

func ShiftS(b Bitboard) Bitboard {
	return b >> 8
}

func ShiftE(b Bitboard) Bitboard {
	return (b << 1) &^ FileA
}

func ShiftW(b Bitboard) Bitboard {
	return (b >> 1) &^ FileH
}

func ShiftNE(b Bitboard) Bitboard {
	return (b << 9) &^ FileA
}

func ShiftNW(b Bitboard) Bitboard {
	return (b << 7) &^ FileH
}

func ShiftSE(b Bitboard) Bitboard {
	return (b >> 7) &^ FileA
}

func ShiftSW(b Bitboard) Bitboard {
	return (b >> 9) &^ FileH
}

var shifts = [NumDirs]func(Bitboard) Bitboard{
	ShiftN,
	ShiftS,
	ShiftE,
	ShiftW,

	ShiftNE,
	ShiftNW,
	ShiftSE,
	ShiftSW,
}

func Shift(b Bitboard, dir Dir) Bitboard {
	return shifts[dir](b)
}

var (
	MaskN Bitboard = ^Rank8
	MaskS Bitboard = ^Rank1
	MaskE Bitboard = ^FileH
	MaskW Bitboard = ^FileA
)

// PreMoveMasks hold, per direction, the squares a piece can step away from
// without leaving the board.
var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,
}

func PreMoveMask(dir Dir) Bitboard {
	return PreMoveMasks[dir]
}
