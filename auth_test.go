package main

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// memSettings is an in-memory SettingStore
type memSettings struct {
	mu   sync.Mutex
	vals map[string]string
	err  error
}

func newMemSettings() *memSettings {
	return &memSettings{vals: make(map[string]string)}
}

func (m *memSettings) GetSetting(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vals[key]
}

func (m *memSettings) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.vals[key] = value
	return nil
}

func TestAuthIssueAndValidate(t *testing.T) {
	a := NewAuth(nil, "session-1")
	tok, err := a.IssueToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.ValidateToken(tok); err != nil {
		t.Errorf("fresh token rejected: %v", err)
	}
	if err := a.ValidateToken(""); err == nil {
		t.Error("empty token should be rejected")
	}
	if err := a.ValidateToken(tok[:len(tok)-2] + "xx"); err == nil {
		t.Error("tampered token should be rejected")
	}
}

func TestAuthSecretPersisted(t *testing.T) {
	settings := newMemSettings()
	a := NewAuth(settings, "s1")
	if len(settings.GetSetting(jwtSecretKey)) != 64 {
		t.Fatal("secret should be stored hex encoded")
	}

	// same secret, different session
	b := NewAuth(settings, "s2")
	tok, _ := a.IssueToken()
	err := b.ValidateToken(tok)
	if err == nil || !strings.Contains(err.Error(), "another session") {
		t.Errorf("token from another session should be rejected, got %v", err)
	}

	// same secret, same session
	c := NewAuth(settings, "s1")
	if err := c.ValidateToken(tok); err != nil {
		t.Errorf("token should survive a restart: %v", err)
	}
}

func TestAuthSecretNotPersisted(t *testing.T) {
	settings := newMemSettings()
	settings.err = errors.New("read-only")
	a := NewAuth(settings, "s1")
	tok, err := a.IssueToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.ValidateToken(tok); err != nil {
		t.Errorf("unpersisted secret should still work for this process: %v", err)
	}
}

func TestAuthRateLimit(t *testing.T) {
	a := NewAuth(nil, "s")
	for i := 0; i < maxBadTokens; i++ {
		if !a.checkRate("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if a.blocked("10.0.0.1") {
		t.Error("should not be blocked at the limit")
	}
	if a.checkRate("10.0.0.1") {
		t.Error("attempt past the limit should be refused")
	}
	if !a.blocked("10.0.0.1") {
		t.Error("ip should be blocked")
	}
	if a.blocked("10.0.0.2") {
		t.Error("other ips are unaffected")
	}
}
