package game

import "testing"

func TestNewBoard_InitialLayout(t *testing.T) {
	b := NewBoard()

	if got := b.Count(White); got != 12 {
		t.Errorf("Expected 12 white pieces, got %d", got)
	}
	if got := b.Count(Black); got != 12 {
		t.Errorf("Expected 12 black pieces, got %d", got)
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b[row][col]
			if p == nil {
				continue
			}
			if (row+col)%2 != 1 {
				t.Errorf("Piece on light square (%d,%d)", row, col)
			}
			if p.King {
				t.Errorf("Initial piece at (%d,%d) should not be a king", row, col)
			}
			switch {
			case row < 3:
				if p.Color != Black {
					t.Errorf("Expected black piece at (%d,%d), got %s", row, col, p.Color)
				}
			case row > 4:
				if p.Color != White {
					t.Errorf("Expected white piece at (%d,%d), got %s", row, col, p.Color)
				}
			default:
				t.Errorf("Middle rows should be empty, found piece at (%d,%d)", row, col)
			}
		}
	}
}

func TestColor_Opponent(t *testing.T) {
	if White.Opponent() != Black {
		t.Error("Opponent of white should be black")
	}
	if Black.Opponent() != White {
		t.Error("Opponent of black should be white")
	}
}

func TestBoard_Count_AfterRemoval(t *testing.T) {
	b := NewBoard()
	b[0][1] = nil
	b[0][3] = nil

	if got := b.Count(Black); got != 10 {
		t.Errorf("Expected 10 black pieces after removing two, got %d", got)
	}
	if got := b.Count(White); got != 12 {
		t.Errorf("White count should be unaffected, got %d", got)
	}
}
