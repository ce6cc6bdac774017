package bitboards

import (
	. "github.com/cricklet/magics/internal/helpers"
)

func KingAttacks(b Bitboard) Bitboard {
	result := Bitboard(0)
	for _, dir := range KingDirs {
		result |= Shift(b, dir)
	}
	return result
}

func KnightAttacks(b Bitboard) Bitboard {
	west1 := (b >> 1) &^ FileH
	west2 := (b >> 2) &^ (FileG | FileH)
	east1 := (b << 1) &^ FileA
	east2 := (b << 2) &^ (FileA | FileB)

	oneFile := west1 | east1
	twoFiles := west2 | east2

	return oneFile<<16 | oneFile>>16 | twoFiles<<8 | twoFiles>>8
}

// PawnAttacks only covers diagonal captures. Pushes are SinglePawnPush and
// DoublePawnPush.
func PawnAttacks(player Player, pawns Bitboard) Bitboard {
	if player == White {
		return ShiftNE(pawns) | ShiftNW(pawns)
	}
	return ShiftSE(pawns) | ShiftSW(pawns)
}

func SinglePawnPush(player Player, pawns Bitboard, empty Bitboard) Bitboard {
	if player == White {
		return ShiftN(pawns) & empty
	}
	return ShiftS(pawns) & empty
}

var doublePushTargets = [2]Bitboard{
	Rank4,
	Rank5,
}

func DoublePawnPush(player Player, pawns Bitboard, empty Bitboard) Bitboard {
	pushedOnce := SinglePawnPush(player, pawns, empty)
	return SinglePawnPush(player, pushedOnce, empty) & doublePushTargets[player]
}
