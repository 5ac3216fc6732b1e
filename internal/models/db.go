package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Username       string    `db:"username"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
}

// Message is a single entry in a conversation, both in the persisted
// thread log and in the in-memory session history.
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// Thread represents a persisted conversation owned by one user.
// ThreadID is the provider-assigned identifier. The message log is stored
// as a JSONB document and is append-only: entries are never reordered or
// edited, only extended.
type Thread struct {
	ThreadID  string    `db:"thread_id" json:"threadId"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Messages  []Message `db:"messages" json:"messages"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
