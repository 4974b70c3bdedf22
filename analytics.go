package main

import (
	"log"
	"sync"
	"time"
)

// EventType names a gameplay event in the journal
type EventType string

const (
	EvtShot         EventType = "shot"
	EvtKill         EventType = "kill"
	EvtBonusSpawn   EventType = "bonus_spawn"
	EvtBonusKill    EventType = "bonus_kill"
	EvtBonusEscape  EventType = "bonus_escape"
	EvtLifeLost     EventType = "life_lost"
	EvtLevelStart   EventType = "level_start"
	EvtLevelCleared EventType = "level_cleared"
	EvtGameOver     EventType = "game_over"
)

const (
	journalBufSize    = 1024
	journalBatchSize  = 50
	journalFlushEvery = 2 * time.Second
)

// Event is one journal entry. Player is -1 for events not tied to a player.
type Event struct {
	RunID     string
	Type      EventType
	Level     int
	Player    int
	Value     int
	Tick      uint64
	Timestamp time.Time
}

// EventSink receives gameplay events. Track must not block.
type EventSink interface {
	Track(ev Event)
}

// Journal persists gameplay events with batched background writes
type Journal struct {
	db     *DB
	events chan Event
	stop   chan struct{}
	wg     sync.WaitGroup
	logger *log.Logger

	mu      sync.Mutex
	dropped int
	stopped bool
}

// NewJournal creates and starts the journal writer
func NewJournal(db *DB, logger *log.Logger) *Journal {
	j := &Journal{
		db:     db,
		events: make(chan Event, journalBufSize),
		stop:   make(chan struct{}),
		logger: logger,
	}
	j.wg.Add(1)
	go j.writer()
	return j
}

// Track enqueues an event for async persistence (non-blocking)
func (j *Journal) Track(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.stopped {
		return
	}
	select {
	case j.events <- ev:
	default:
		// Channel full, drop rather than stall the frame loop
		j.dropped++
	}
}

// ForRun returns a sink that stamps every event with the run ID
func (j *Journal) ForRun(runID string) EventSink {
	return runSink{j: j, runID: runID}
}

// Dropped returns how many events were discarded because the buffer was full
func (j *Journal) Dropped() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dropped
}

// Stop flushes pending events and shuts the writer down
func (j *Journal) Stop() {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	j.stopped = true
	j.mu.Unlock()
	close(j.stop)
	j.wg.Wait()
}

func (j *Journal) writer() {
	defer j.wg.Done()

	batch := make([]Event, 0, journalBatchSize)
	ticker := time.NewTicker(journalFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case ev := <-j.events:
			batch = append(batch, ev)
			if len(batch) >= journalBatchSize {
				j.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				j.flush(batch)
				batch = batch[:0]
			}
		case <-j.stop:
			// Track no longer sends once stopped, so the channel can be closed
			close(j.events)
			for ev := range j.events {
				batch = append(batch, ev)
			}
			if len(batch) > 0 {
				j.flush(batch)
			}
			return
		}
	}
}

func (j *Journal) flush(events []Event) {
	if j.db == nil || len(events) == 0 {
		return
	}
	if err := j.db.InsertEvents(events); err != nil && j.logger != nil {
		j.logger.Printf("journal: %v", err)
	}
}

type runSink struct {
	j     *Journal
	runID string
}

func (s runSink) Track(ev Event) {
	ev.RunID = s.runID
	s.j.Track(ev)
}

type nopEvents struct{}

func (nopEvents) Track(Event) {}
