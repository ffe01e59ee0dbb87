// game/rules.go
package game

// MoveResult reports the outcome of AttemptMove. When Applied is false the
// board is untouched.
type MoveResult struct {
	Applied  bool
	Captured *Square
	Promoted bool
}

// AttemptMove validates a move for mover and applies it to b on success.
//
// Men step one square diagonally forward (white toward row 0, black toward
// row 7), or jump two squares over exactly one enemy piece in any diagonal
// direction, removing it. Kings slide any distance along a clear diagonal,
// or over exactly one enemy piece on the path, removing it; a friendly piece
// or a second occupied square on the path blocks the move. Captures are
// never mandatory. A man landing on the far rank is promoted in the same
// move, captures included.
func AttemptMove(b *Board, mover Color, from, to Square) MoveResult {
	if !from.InBounds() || !to.InBounds() {
		return MoveResult{}
	}
	if b.At(to) != nil {
		return MoveResult{}
	}
	piece := b.At(from)
	if piece == nil || piece.Color != mover {
		return MoveResult{}
	}

	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col
	if rowDiff == 0 || abs(rowDiff) != abs(colDiff) {
		return MoveResult{}
	}

	var captured *Square

	if piece.King {
		stepRow := sign(rowDiff)
		stepCol := sign(colDiff)
		enemies := 0
		for r, c := from.Row+stepRow, from.Col+stepCol; r != to.Row; r, c = r+stepRow, c+stepCol {
			mid := b[r][c]
			if mid == nil {
				continue
			}
			if mid.Color == piece.Color {
				return MoveResult{}
			}
			enemies++
			if enemies > 1 {
				return MoveResult{}
			}
			captured = &Square{Row: r, Col: c}
		}
	} else {
		switch abs(rowDiff) {
		case 1:
			forward := (piece.Color == White && rowDiff == -1) || (piece.Color == Black && rowDiff == 1)
			if !forward {
				return MoveResult{}
			}
		case 2:
			mid := Square{Row: from.Row + rowDiff/2, Col: from.Col + colDiff/2}
			midPiece := b.At(mid)
			if midPiece == nil || midPiece.Color == piece.Color {
				return MoveResult{}
			}
			captured = &mid
		default:
			return MoveResult{}
		}
	}

	if captured != nil {
		b[captured.Row][captured.Col] = nil
	}
	b[to.Row][to.Col] = piece
	b[from.Row][from.Col] = nil

	promoted := false
	if !piece.King && ((piece.Color == White && to.Row == 0) || (piece.Color == Black && to.Row == Size-1)) {
		piece.King = true
		promoted = true
	}

	return MoveResult{Applied: true, Captured: captured, Promoted: promoted}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	return -1
}
