package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}

// SpectatorURL builds the tokenized feed address for a base like "ws://host:port"
func SpectatorURL(base, token string) string {
	return fmt.Sprintf("%s/ws?token=%s", base, url.QueryEscape(token))
}

// SetupRoutes configures the spectator HTTP routes. publicBase is the
// ws:// address advertised in the QR code.
func SetupRoutes(hub *Hub, publicBase string) *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket feed
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if hub.auth.blocked(ip) {
			http.Error(w, "too many attempts", http.StatusTooManyRequests)
			return
		}
		if err := hub.auth.ValidateToken(r.URL.Query().Get("token")); err != nil {
			hub.auth.checkRate(ip)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Printf("upgrade %s: %v", ip, err)
			return
		}

		hub.TrackConnect(ip)

		client := NewClient(hub, conn, ip)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	})

	// Leaderboard as JSON
	mux.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		scores := loadHighScores(hub.scores, hub.logger)
		entries := make([]ScoreEntry, len(scores))
		for i, s := range scores {
			entries[i] = ScoreEntry{Rank: i + 1, Name: s.Name, Value: s.Value}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			hub.logger.Printf("scores encode: %v", err)
		}
	})

	// QR code of a fresh spectator link, only handed out to the host machine
	mux.HandleFunc("/qr", func(w http.ResponseWriter, r *http.Request) {
		if !isLoopback(extractIP(r)) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		token, err := hub.auth.IssueToken()
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		png, err := qrcode.Encode(SpectatorURL(publicBase, token), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(png)
	})

	return mux
}
