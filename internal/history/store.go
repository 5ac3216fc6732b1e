// Package history holds the in-memory, per-session conversation buffers used
// by the non-persisted chat mode. Entries live for the process lifetime and
// are lost on restart.
package history

import (
	"sync"

	"docgpt-backend/internal/models"
)

// DefaultCapacity is the message cap applied to each session's buffer.
const DefaultCapacity = 20

// Store owns the session-id -> message-buffer mapping. The mutex only makes
// individual operations safe on the shared map; a caller's multi-step
// sequence (append, trim, snapshot) is NOT atomic, so two concurrent
// requests for the same session id can interleave and lose updates. Known
// limitation, deliberately left unfixed.
type Store struct {
	mu       sync.Mutex
	capacity int
	sessions map[string][]models.Message
}

// NewStore creates a Store evicting oldest-first once a session buffer
// exceeds capacity. A capacity <= 0 falls back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		sessions: make(map[string][]models.Message),
	}
}

// Append adds a message to the session's buffer, creating the buffer if this
// is the session's first message.
func (s *Store) Append(sessionID string, msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
}

// TrimFront drops oldest entries until the buffer is back within capacity.
// Callers trim only after pushing a user message, so the assistant append
// may leave the buffer one over capacity until the next user message.
func (s *Store) TrimFront(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[sessionID]
	for len(msgs) > s.capacity {
		msgs = msgs[1:]
	}
	s.sessions[sessionID] = msgs
}

// Messages returns a copy of the session's buffer, oldest first.
func (s *Store) Messages(sessionID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[sessionID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len reports the current buffer length for a session.
func (s *Store) Len(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[sessionID])
}
