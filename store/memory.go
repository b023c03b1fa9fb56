package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phamhoang/duocsi-chat/domain"
)

// MemoryStore is the in-memory Store implementation. It is not persistent
// and is meant for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string][]domain.Message
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages: make(map[string][]domain.Message),
	}
}

func newMessageID() string {
	return "msg_" + uuid.New().String()
}

// AppendMessage appends a message to the session log, creating the log on
// first append. It never fails.
func (s *MemoryStore) AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.Message{
		ID:        newMessageID(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	s.messages[sessionID] = append(s.messages[sessionID], msg)

	out := msg
	return &out, nil
}

// GetRecentMessages returns up to limit most recent messages in ascending
// order. Unknown sessions yield an empty slice.
func (s *MemoryStore) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
