package main

import "sort"

const (
	MaxHighScores = 7
	NameLength    = 3
	firstChar     = 'A'
	lastChar      = 'Z'
)

// Score is a leaderboard entry
type Score struct {
	Name  string `json:"name" msgpack:"name"`
	Value int    `json:"value" msgpack:"value"`
}

// SortScores orders scores best first. Equal values keep their order.
func SortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
}

// TrimScores sorts a copy of the list and cuts it to the leaderboard size
func TrimScores(scores []Score) []Score {
	out := make([]Score, len(scores))
	copy(out, scores)
	SortScores(out)
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	return out
}

// IsNewRecord reports whether value would enter the leaderboard
func IsNewRecord(scores []Score, value int) bool {
	if len(scores) < MaxHighScores {
		return true
	}
	lowest := scores[0].Value
	for _, s := range scores[1:] {
		if s.Value < lowest {
			lowest = s.Value
		}
	}
	return value > lowest
}

// InsertScore returns a new leaderboard with s added
func InsertScore(scores []Score, s Score) []Score {
	out := make([]Score, 0, len(scores)+1)
	out = append(out, scores...)
	out = append(out, s)
	return TrimScores(out)
}

// NameEntry is a three-letter name picked with the directional controls
type NameEntry struct {
	chars  [NameLength]byte
	cursor int
}

// NewNameEntry starts at "AAA" with the cursor on the first letter
func NewNameEntry() NameEntry {
	return NameEntry{chars: [NameLength]byte{firstChar, firstChar, firstChar}}
}

// Next moves the cursor right, wrapping to the first letter
func (n *NameEntry) Next() {
	n.cursor = (n.cursor + 1) % NameLength
}

// Prev moves the cursor left, wrapping to the last letter
func (n *NameEntry) Prev() {
	n.cursor = (n.cursor + NameLength - 1) % NameLength
}

// Up advances the letter under the cursor, Z wraps to A
func (n *NameEntry) Up() {
	if n.chars[n.cursor] == lastChar {
		n.chars[n.cursor] = firstChar
	} else {
		n.chars[n.cursor]++
	}
}

// Down steps the letter under the cursor back, A wraps to Z
func (n *NameEntry) Down() {
	if n.chars[n.cursor] == firstChar {
		n.chars[n.cursor] = lastChar
	} else {
		n.chars[n.cursor]--
	}
}

// Cursor returns the selected letter index
func (n NameEntry) Cursor() int {
	return n.cursor
}

func (n NameEntry) String() string {
	return string(n.chars[:])
}
