package main

import "testing"

func fullBoard() []Score {
	return []Score{
		{"AAA", 700}, {"BBB", 600}, {"CCC", 500}, {"DDD", 400},
		{"EEE", 300}, {"FFF", 200}, {"GGG", 100},
	}
}

func TestIsNewRecord(t *testing.T) {
	if !IsNewRecord(nil, 0) {
		t.Error("any score enters an empty board")
	}
	board := fullBoard()
	if IsNewRecord(board, 100) {
		t.Error("tying the lowest score is not a record")
	}
	if !IsNewRecord(board, 101) {
		t.Error("beating the lowest score is a record")
	}
	if !IsNewRecord(board[:6], 1) {
		t.Error("a board with free slots takes any score")
	}
}

func TestInsertScore(t *testing.T) {
	board := fullBoard()
	out := InsertScore(board, Score{"NEW", 450})
	if len(out) != MaxHighScores {
		t.Fatalf("expected %d entries, got %d", MaxHighScores, len(out))
	}
	if out[3].Name != "NEW" {
		t.Errorf("expected NEW in fourth place, got %+v", out)
	}
	if out[len(out)-1].Name != "FFF" {
		t.Errorf("lowest entry should be dropped, got %+v", out[len(out)-1])
	}
	if len(board) != MaxHighScores || board[6].Name != "GGG" {
		t.Error("input board should not be modified")
	}

	// ties keep the earlier entry ahead
	out = InsertScore(out, Score{"TIE", 700})
	if out[0].Name != "AAA" || out[1].Name != "TIE" {
		t.Errorf("expected AAA then TIE, got %s then %s", out[0].Name, out[1].Name)
	}
}

func TestTrimScores(t *testing.T) {
	in := append(fullBoard(), Score{"ZZZ", 900}, Score{"YYY", 50})
	out := TrimScores(in)
	if len(out) != MaxHighScores {
		t.Fatalf("expected %d entries, got %d", MaxHighScores, len(out))
	}
	if out[0].Name != "ZZZ" || out[6].Name != "FFF" {
		t.Errorf("unexpected board %+v", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Value > out[i-1].Value {
			t.Fatalf("board not sorted at %d", i)
		}
	}
}

func TestNameEntry(t *testing.T) {
	n := NewNameEntry()
	if n.String() != "AAA" || n.Cursor() != 0 {
		t.Fatalf("expected AAA at 0, got %s at %d", n, n.Cursor())
	}
	n.Down()
	if n.String() != "ZAA" {
		t.Errorf("A should wrap to Z, got %s", n)
	}
	n.Up()
	n.Up()
	if n.String() != "BAA" {
		t.Errorf("Z should wrap to A, got %s", n)
	}
	n.Prev()
	if n.Cursor() != 2 {
		t.Errorf("cursor should wrap to the last letter, got %d", n.Cursor())
	}
	n.Up()
	n.Next()
	if n.Cursor() != 0 {
		t.Errorf("cursor should wrap to the first letter, got %d", n.Cursor())
	}
	if n.String() != "BAB" {
		t.Errorf("expected BAB, got %s", n)
	}
}
