package main

import (
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	maxConnsPerIP       = 5
	maxTotalConns       = 100
	SpectatorFrameEvery = 2 // frames between spectator broadcasts
	frameQueueSize      = 8
)

// Hub fans simulation snapshots out to spectator connections. It is a
// RenderSink: frames are handed over without blocking and encoded on the
// hub's own goroutine.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	frames     chan Envelope
	stop       chan struct{}
	stopOnce   sync.Once

	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int

	auth   *Auth
	scores ScoreStore
	logger *log.Logger

	welcomeMu sync.RWMutex
	welcome   WelcomeMsg

	resultsN atomic.Uint64
	dropped  atomic.Uint64
}

// NewHub creates a hub. scores and logger may be nil.
func NewHub(auth *Auth, scores ScoreStore, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		frames:     make(chan Envelope, frameQueueSize),
		stop:       make(chan struct{}),
		ipConns:    make(map[string]int),
		auth:       auth,
		scores:     scores,
		logger:     logger,
		welcome:    WelcomeMsg{Width: FieldWidth, Height: FieldHeight},
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// SetRun updates what new spectators are told about the current run
func (h *Hub) SetRun(runID string, d Difficulty) {
	h.welcomeMu.Lock()
	defer h.welcomeMu.Unlock()
	h.welcome.RunID = runID
	h.welcome.Difficulty = d.String()
}

// Welcome returns the greeting for a new spectator
func (h *Hub) Welcome() WelcomeMsg {
	h.welcomeMu.RLock()
	defer h.welcomeMu.RUnlock()
	return h.welcome
}

// RenderFrame queues every second frame for broadcast
func (h *Hub) RenderFrame(f Frame) {
	if f.Tick%SpectatorFrameEvery != 0 {
		return
	}
	h.offer(Envelope{T: MsgFrame, Data: f})
}

// RenderResults queues every second results frame for broadcast
func (h *Hub) RenderResults(r ResultsState) {
	if h.resultsN.Add(1)%SpectatorFrameEvery != 0 {
		return
	}
	h.offer(Envelope{T: MsgResults, Data: r})
}

// offer hands a message to the broadcaster, dropping it if the queue is full
func (h *Hub) offer(msg Envelope) {
	select {
	case h.frames <- msg:
	default:
		h.dropped.Add(1)
	}
}

// Run processes register/unregister events and broadcasts queued frames
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			client.SendMsg(Envelope{T: MsgWelcome, Data: h.Welcome()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.frames:
			data, err := msgpack.Marshal(msg)
			if err != nil {
				h.logger.Printf("hub: encode %s: %v", msg.T, err)
				continue
			}
			h.broadcast(data)

		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// broadcast sends to every client without waiting on slow ones
func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// Stop ends Run and disconnects every spectator
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// ClientCount returns the number of connected spectators
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}

// Dropped returns how many messages were skipped for full queues
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
