package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	spectatorTokenExpiry = 12 * time.Hour
	spectatorRole        = "spectator"
	jwtSecretKey         = "jwt_secret"
	badTokenWindow       = 60 * time.Second
	maxBadTokens         = 10
)

// SettingStore persists small key/value settings
type SettingStore interface {
	GetSetting(key string) string
	SetSetting(key, value string) error
}

// Auth issues and checks spectator tokens bound to one hosting session
type Auth struct {
	jwtSecret []byte
	sessionID string

	// Failed token attempts per IP
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth creates an Auth for a session. settings may be nil, in which case
// the signing secret lives only as long as the process.
func NewAuth(settings SettingStore, sessionID string) *Auth {
	return &Auth{
		jwtSecret: loadOrCreateSecret(settings),
		sessionID: sessionID,
		rateMap:   make(map[string]*rateEntry),
	}
}

// loadOrCreateSecret loads the JWT secret from the settings table, or
// generates and persists a new one if none exists.
func loadOrCreateSecret(settings SettingStore) []byte {
	if settings != nil {
		if h := settings.GetSetting(jwtSecretKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	if settings != nil {
		if err := settings.SetSetting(jwtSecretKey, hex.EncodeToString(secret)); err != nil {
			log.Printf("warning: could not persist JWT secret: %v", err)
		}
	}
	return secret
}

// IssueToken signs a spectator token for this session
func (a *Auth) IssueToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid":  a.sessionID,
		"role": spectatorRole,
		"exp":  now.Add(spectatorTokenExpiry).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// ValidateToken checks signature, expiry and session binding
func (a *Auth) ValidateToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid token")
	}
	if role, _ := claims["role"].(string); role != spectatorRole {
		return fmt.Errorf("invalid token claims")
	}
	if sid, _ := claims["sid"].(string); sid != a.sessionID {
		return fmt.Errorf("token issued for another session")
	}
	return nil
}

// SessionID returns the session tokens are bound to
func (a *Auth) SessionID() string {
	return a.sessionID
}

// checkRate counts a failed token attempt and reports whether the IP may retry
func (a *Auth) checkRate(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := time.Now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(badTokenWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxBadTokens
}

// blocked reports whether an IP has exhausted its failed attempts
func (a *Auth) blocked(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()
	entry, ok := a.rateMap[ip]
	if !ok || time.Now().After(entry.ResetAt) {
		return false
	}
	return entry.Count > maxBadTokens
}
