// game/board.go
package game

// Size is the board edge length.
const Size = 8

// Color identifies one of the two sides.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// ResultDraw is the protocol value for a drawn game. The engine's only win
// condition is wiping out the opponent, so it never actually produces it.
const ResultDraw = "draw"

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is one checker on the board. King flips to true exactly once, when
// the piece reaches the opposite back rank, and never flips back.
type Piece struct {
	Color Color `json:"color"`
	King  bool  `json:"isKing"`
}

// Square addresses a board cell.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the square lies on the 8x8 grid.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

// Board is the 8x8 grid. Empty cells are nil. Pieces live only on dark
// squares ((row+col) odd) under the initial layout; legal moves preserve
// diagonal parity so this is never re-checked.
type Board [Size][Size]*Piece

// NewBoard returns the initial layout: black men on rows 0-2, white men on
// rows 5-7, middle rows empty.
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 != 1 {
				continue
			}
			if row < 3 {
				b[row][col] = &Piece{Color: Black}
			}
			if row > 4 {
				b[row][col] = &Piece{Color: White}
			}
		}
	}
	return b
}

// At returns the piece on sq, or nil.
func (b *Board) At(sq Square) *Piece {
	return b[sq.Row][sq.Col]
}

// Count returns the number of pieces of the given color.
func (b *Board) Count(c Color) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if p := b[row][col]; p != nil && p.Color == c {
				n++
			}
		}
	}
	return n
}
