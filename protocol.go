package main

// Server -> spectator message types
const (
	MsgFrame   = "frame"
	MsgResults = "results"
	MsgWelcome = "welcome"
)

// Envelope wraps every message sent to spectators with a type field
type Envelope struct {
	T    string      `json:"t" msgpack:"t"`
	Data interface{} `json:"d,omitempty" msgpack:"d,omitempty"`
}

// EntityState is one drawable rectangle in a frame
type EntityState struct {
	Kind      Kind  `json:"k" msgpack:"k"`
	Variant   uint8 `json:"v" msgpack:"v"` // enemy tier, or player index for ships
	X         int   `json:"x" msgpack:"x"`
	Y         int   `json:"y" msgpack:"y"`
	W         int   `json:"w" msgpack:"w"`
	H         int   `json:"h" msgpack:"h"`
	Destroyed bool  `json:"d,omitempty" msgpack:"d,omitempty"`
	Anim      bool  `json:"a,omitempty" msgpack:"a,omitempty"` // alternate sprite frame
}

// PlayerState is the HUD line for one player
type PlayerState struct {
	Score          int  `json:"sc" msgpack:"sc"`
	Lives          int  `json:"l" msgpack:"l"`
	BulletsShot    int  `json:"bs" msgpack:"bs"`
	ShipsDestroyed int  `json:"sd" msgpack:"sd"`
	BonusLife      bool `json:"bl,omitempty" msgpack:"bl,omitempty"`
}

// Frame is an immutable snapshot of one simulated frame. It is built by the
// simulation and handed to render sinks; nothing in it aliases game state.
type Frame struct {
	Tick      uint64         `json:"tick" msgpack:"tick"`
	Level     int            `json:"lv" msgpack:"lv"`
	Phase     Phase          `json:"ph" msgpack:"ph"`
	Countdown int            `json:"cd" msgpack:"cd"` // whole seconds left before play starts
	Width     int            `json:"w" msgpack:"w"`
	Height    int            `json:"h" msgpack:"h"`
	Players   [2]PlayerState `json:"p" msgpack:"p"`
	Entities  []EntityState  `json:"e" msgpack:"e"`
}

// ResultsState is the end-of-run screen
type ResultsState struct {
	Level      int            `json:"lv" msgpack:"lv"`
	Players    [2]PlayerState `json:"p" msgpack:"p"`
	Records    [2]bool        `json:"r" msgpack:"r"`
	Names      [2]string      `json:"n" msgpack:"n"`
	Cursors    [2]int         `json:"c" msgpack:"c"`
	Ready      bool           `json:"rd" msgpack:"rd"` // confirm and quit are accepted
	HighScores []Score        `json:"hs" msgpack:"hs"`
}

// WelcomeMsg is sent to a spectator right after the upgrade
type WelcomeMsg struct {
	RunID      string `json:"run" msgpack:"run"`
	Difficulty string `json:"diff" msgpack:"diff"`
	Width      int    `json:"w" msgpack:"w"`
	Height     int    `json:"h" msgpack:"h"`
}

// ScoreEntry is one leaderboard row served by /scores
type ScoreEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}
