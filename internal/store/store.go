package store

import (
	"context"
	"errors"

	db_models "docgpt-backend/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for database operations.
// This allows for mocking in tests and potential DB backend switching.
type Store interface {
	// User operations
	GetUserByUsername(ctx context.Context, username string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Thread operations. Threads are always addressed by the pair
	// (threadID, userID) so a user can never touch another user's thread.
	CreateThread(ctx context.Context, thread *db_models.Thread) error
	GetThread(ctx context.Context, threadID string, userID uuid.UUID) (*db_models.Thread, error)
	UpdateThreadMessages(ctx context.Context, threadID string, userID uuid.UUID, messages []db_models.Message) error
	ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Thread, error)
}
