package services

import (
	"context"
	"sync"
	"time"

	"docgpt-backend/internal/models"
	"docgpt-backend/internal/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory store.Store used by the service tests.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	threads map[string]*models.Thread

	userErr   error // forced error for user lookups
	updateErr error // forced error for thread updates
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[string]*models.User),
		threads: make(map[string]*models.Thread),
	}
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	copied.CreatedAt = time.Now()
	f.users[user.Username] = &copied
	return nil
}

func (f *fakeStore) CreateThread(ctx context.Context, thread *models.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread.CreatedAt = time.Now()
	copied := *thread
	copied.Messages = append([]models.Message(nil), thread.Messages...)
	f.threads[thread.ThreadID] = &copied
	return nil
}

func (f *fakeStore) GetThread(ctx context.Context, threadID string, userID uuid.UUID) (*models.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	thread, ok := f.threads[threadID]
	if !ok || thread.UserID != userID {
		return nil, store.ErrNotFound
	}
	copied := *thread
	copied.Messages = append([]models.Message(nil), thread.Messages...)
	return &copied, nil
}

func (f *fakeStore) UpdateThreadMessages(ctx context.Context, threadID string, userID uuid.UUID, messages []models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	thread, ok := f.threads[threadID]
	if !ok || thread.UserID != userID {
		return store.ErrNotFound
	}
	thread.Messages = append([]models.Message(nil), messages...)
	return nil
}

func (f *fakeStore) ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]models.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	threads := []models.Thread{}
	for _, thread := range f.threads {
		if thread.UserID == userID {
			copied := *thread
			copied.Messages = append([]models.Message(nil), thread.Messages...)
			threads = append(threads, copied)
		}
	}
	return threads, nil
}

// fakeLLM records every prompt it receives and returns canned responses.
type fakeLLM struct {
	mu        sync.Mutex
	reply     string
	replyErr  error
	threadID  string
	threadErr error
	prompts   [][]models.Message
}

func (f *fakeLLM) CreateChatCompletion(ctx context.Context, messages []models.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prompt := append([]models.Message(nil), messages...)
	f.prompts = append(f.prompts, prompt)
	if f.replyErr != nil {
		return "", f.replyErr
	}
	return f.reply, nil
}

func (f *fakeLLM) CreateAssistantThread(ctx context.Context) (string, error) {
	if f.threadErr != nil {
		return "", f.threadErr
	}
	return f.threadID, nil
}

func (f *fakeLLM) lastPrompt() []models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return nil
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeKnowledge returns a fixed lookup result.
type fakeKnowledge struct {
	content string
	err     error
}

func (f *fakeKnowledge) Search(query string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}
