package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	db_models "docgpt-backend/internal/models"
	"docgpt-backend/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetUserByUsername retrieves a user by their username.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*db_models.User, error) {
	query := `
		SELECT id, username, hashed_password, created_at
		FROM users
		WHERE username = $1`

	user := &db_models.User{}
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByUsername: failed to query user %s: %v", username, err)
		return nil, fmt.Errorf("database error fetching user by username: %w", err)
	}

	return user, nil
}

// CreateUser inserts a new user record into the database.
func (s *PostgresStore) CreateUser(ctx context.Context, user *db_models.User) error {
	query := `
		INSERT INTO users (id, username, hashed_password)
		VALUES ($1, $2, $3)`
	// created_at has a database default (NOW())

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.HashedPassword,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is unique_violation (duplicate username)
			log.Printf("ERROR [PostgresStore] CreateUser: PostgreSQL error for username %s: Code=%s, Message=%s", user.Username, pgErr.Code, pgErr.Message)
		} else {
			log.Printf("ERROR [PostgresStore] CreateUser: failed to insert user %s: %v", user.Username, err)
		}
		return fmt.Errorf("database error creating user: %w", err)
	}

	return nil
}

// CreateThread inserts a new thread record with its initial (usually empty)
// message log.
func (s *PostgresStore) CreateThread(ctx context.Context, thread *db_models.Thread) error {
	messages := thread.Messages
	if messages == nil {
		messages = []db_models.Message{}
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal thread messages: %w", err)
	}

	query := `
		INSERT INTO threads (thread_id, user_id, messages)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err = s.db.QueryRow(ctx, query,
		thread.ThreadID,
		thread.UserID,
		messagesJSON,
	).Scan(&thread.CreatedAt)

	if err != nil {
		log.Printf("ERROR [PostgresStore] CreateThread: failed to insert thread %s for user %s: %v", thread.ThreadID, thread.UserID, err)
		return fmt.Errorf("database error creating thread: %w", err)
	}

	return nil
}

// GetThread retrieves a thread by (threadID, userID).
// Returns store.ErrNotFound if no such thread exists for that user.
func (s *PostgresStore) GetThread(ctx context.Context, threadID string, userID uuid.UUID) (*db_models.Thread, error) {
	query := `
		SELECT thread_id, user_id, messages, created_at
		FROM threads
		WHERE thread_id = $1 AND user_id = $2`

	thread := &db_models.Thread{}
	var messagesJSON []byte
	err := s.db.QueryRow(ctx, query, threadID, userID).Scan(
		&thread.ThreadID,
		&thread.UserID,
		&messagesJSON,
		&thread.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetThread: failed to query thread %s: %v", threadID, err)
		return nil, fmt.Errorf("database error fetching thread: %w", err)
	}

	if err := json.Unmarshal(messagesJSON, &thread.Messages); err != nil {
		return nil, fmt.Errorf("failed to parse thread messages: %w", err)
	}

	return thread, nil
}

// UpdateThreadMessages replaces the stored message log of a thread.
// Callers only ever extend the log, never rewrite history, so this is a
// plain overwrite with no optimistic concurrency check; concurrent writers
// against the same thread can race.
func (s *PostgresStore) UpdateThreadMessages(ctx context.Context, threadID string, userID uuid.UUID, messages []db_models.Message) error {
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal thread messages: %w", err)
	}

	query := `
		UPDATE threads
		SET messages = $3
		WHERE thread_id = $1 AND user_id = $2`

	tag, err := s.db.Exec(ctx, query, threadID, userID, messagesJSON)
	if err != nil {
		log.Printf("ERROR [PostgresStore] UpdateThreadMessages: failed to update thread %s: %v", threadID, err)
		return fmt.Errorf("database error updating thread messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// ListThreadsByUser retrieves all threads owned by the given user, oldest
// first.
func (s *PostgresStore) ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Thread, error) {
	query := `
		SELECT thread_id, user_id, messages, created_at
		FROM threads
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListThreadsByUser: failed to query threads for user %s: %v", userID, err)
		return nil, fmt.Errorf("database error listing threads: %w", err)
	}
	defer rows.Close()

	threads := []db_models.Thread{}
	for rows.Next() {
		var thread db_models.Thread
		var messagesJSON []byte
		if err := rows.Scan(&thread.ThreadID, &thread.UserID, &messagesJSON, &thread.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning thread row: %w", err)
		}
		if err := json.Unmarshal(messagesJSON, &thread.Messages); err != nil {
			return nil, fmt.Errorf("failed to parse thread messages: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread rows: %w", err)
	}

	return threads, nil
}
