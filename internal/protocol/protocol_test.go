package protocol

import (
	"bufio"
	"strings"
	"testing"

	"nonet/internal/analyzer"
	"nonet/internal/grid"
)

func TestParseMoveRoundTrip(t *testing.T) {
	m := grid.Move{Pos: 9*2 + 4, Digit: 7}
	token := FormatMove(m)
	got, err := ParseMove(token)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", token, err)
	}
	if got != m {
		t.Fatalf("round trip mismatch: %+v != %+v", got, m)
	}
}

func TestParseMoveRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "Aa", "aa1", "A91", "Az1", "AA!"} {
		if _, err := ParseMove(bad); err == nil {
			t.Fatalf("expected ParseMove(%q) to fail", bad)
		}
	}
}

func TestParseTurnBareClaim(t *testing.T) {
	turn, err := ParseTurn("!\n")
	if err != nil {
		t.Fatalf("ParseTurn: %v", err)
	}
	if turn.HasMove || !turn.ClaimUnique {
		t.Fatalf("expected a bare claim_unique turn, got %+v", turn)
	}
}

func TestParseTurnMoveWithClaim(t *testing.T) {
	turn, err := ParseTurn("Bb5!")
	if err != nil {
		t.Fatalf("ParseTurn: %v", err)
	}
	if !turn.HasMove || !turn.ClaimUnique {
		t.Fatalf("expected a move with claim_unique, got %+v", turn)
	}
	if turn.Move.Pos != 9+1 || turn.Move.Digit != 5 {
		t.Fatalf("unexpected move: %+v", turn.Move)
	}
}

func TestParseTurnQuitSentinel(t *testing.T) {
	_, err := ParseTurn("Quit")
	if err != ErrQuit {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestFormatTurnRoundTrip(t *testing.T) {
	turn := analyzer.Turn{HasMove: true, Move: grid.Move{Pos: 0, Digit: 1}, ClaimUnique: true}
	line := FormatTurn(turn)
	got, err := ParseTurn(line)
	if err != nil {
		t.Fatalf("ParseTurn(%q): %v", line, err)
	}
	if got != turn {
		t.Fatalf("round trip mismatch: %+v != %+v", got, turn)
	}
}

func TestReadTurnFromReader(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Ii9!\n"))
	turn, err := ReadTurn(r)
	if err != nil {
		t.Fatalf("ReadTurn: %v", err)
	}
	if turn.Move.Pos != 80 || turn.Move.Digit != 9 || !turn.ClaimUnique {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}
