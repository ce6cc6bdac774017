package bitboards

// generateWalkBitboard steps from every square of pieceBoard along dir. Each
// visited square is included; a square in blockerBoard is included and then
// ends the walk, as does the board edge.
func generateWalkBitboard(pieceBoard Bitboard, blockerBoard Bitboard, dir Dir) Bitboard {
	result := Bitboard(0)

	potential := pieceBoard
	for potential != 0 {
		potential = Shift(potential, dir)
		result |= potential
		potential &^= blockerBoard
	}

	return result
}

func slidingAttacks(s Square, occupancy Bitboard, dirs []Dir) Bitboard {
	MustBeOnBoard(s)

	result := Bitboard(0)
	for _, dir := range dirs {
		result |= generateWalkBitboard(SingleBitboard(s), occupancy, dir)
	}
	return result
}

// generateBlockerMask collects the squares along dirs whose occupancy can
// change the attack set from s. The last square of each ray never can, so it
// is left out.
func generateBlockerMask(s Square, dirs []Dir) Bitboard {
	MustBeOnBoard(s)

	result := Bitboard(0)
	for _, dir := range dirs {
		walk := generateWalkBitboard(SingleBitboard(s), 0, dir)
		result |= walk & PreMoveMasks[dir]
	}
	return result
}

func RookAttacks(s Square, occupancy Bitboard) Bitboard {
	return slidingAttacks(s, occupancy, RookDirs)
}

func BishopAttacks(s Square, occupancy Bitboard) Bitboard {
	return slidingAttacks(s, occupancy, BishopDirs)
}

func QueenAttacks(s Square, occupancy Bitboard) Bitboard {
	return RookAttacks(s, occupancy) | BishopAttacks(s, occupancy)
}

func RookMask(s Square) Bitboard {
	return generateBlockerMask(s, RookDirs)
}

func BishopMask(s Square) Bitboard {
	return generateBlockerMask(s, BishopDirs)
}

// OccupancyFromIndex maps bit j of index onto the j-th set bit of mask,
// counting from the least significant end.
func OccupancyFromIndex(index int, mask Bitboard) Bitboard {
	result := Bitboard(0)

	remaining := mask
	for j := 0; remaining != 0; j++ {
		var square int
		square, remaining = remaining.NextIndexOfOne()
		if index&(1<<j) != 0 {
			result |= SingleBitboard(Square(square))
		}
	}

	return result
}

// Occupancies lists every subset of mask. Entry i is OccupancyFromIndex(i,
// mask), so the first entry is empty and the last is mask itself.
func Occupancies(mask Bitboard) []Bitboard {
	result := make([]Bitboard, 1<<mask.OnesCount())
	for i := range result {
		result[i] = OccupancyFromIndex(i, mask)
	}
	return result
}
