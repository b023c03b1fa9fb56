// Package store defines the session-scoped message log and its implementations.
package store

import (
	"context"

	"github.com/phamhoang/duocsi-chat/domain"
)

// Store is the per-session, append-only message log.
//
// AppendMessage constructs the message (fresh id, current timestamp), appends
// it to the session log and returns the stored value. The session log is
// created implicitly on first append. Appends are all-or-nothing and are
// serialized per session so that concurrent turns never corrupt the order.
//
// GetRecentMessages returns up to limit most recent messages in ascending
// chronological order, or an empty slice for an unknown session.
type Store interface {
	AppendMessage(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Message, error)
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)
	Close() error
}
