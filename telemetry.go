package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// uiEvent is one line of the append-only diagnostics stream. Fetch, delete
// and identity failures land here alongside plain usage events.
type uiEvent struct {
	SessionID   string            `json:"session_id"`
	UserID      string            `json:"user_id,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Event       string            `json:"event"`
	Opportunity string            `json:"opportunity,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

type eventLog struct {
	path        string
	sessionID   string
	userID      string
	opportunity string
	mu          sync.Mutex
}

func newEventLog(path, opportunityID string) *eventLog {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &eventLog{
		path:        path,
		sessionID:   newSessionID(),
		userID:      resolveEventUserID(),
		opportunity: strings.TrimSpace(opportunityID),
	}
}

func (l *eventLog) Emit(event string, fields map[string]string) {
	if l == nil || strings.TrimSpace(event) == "" {
		return
	}
	entry := uiEvent{
		SessionID:   l.sessionID,
		UserID:      l.userID,
		Timestamp:   time.Now().UTC(),
		Event:       event,
		Opportunity: l.opportunity,
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("%x", time.Now().UnixNano())
}

func resolveEventUserID() string {
	for _, candidate := range []string{
		os.Getenv("DEALDESK_USER_ID"),
		os.Getenv("USER"),
		os.Getenv("USERNAME"),
	} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
