package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"docgpt-backend/internal/history"
	"docgpt-backend/internal/models"
	"docgpt-backend/internal/store"

	"github.com/google/uuid"
)

// ErrThreadNotFound is returned when a thread does not exist or is owned by
// a different user. Ownership mismatches are indistinguishable from absence.
var ErrThreadNotFound = errors.New("Thread not found")

// sessionSystemPrompt is the instruction sent ahead of every session-mode
// conversation.
const sessionSystemPrompt = `Your name is DocGPT. You are tasked with diagnosing possible conditions based on the user's reported symptoms, using the provided dataset to retrieve relevant information.
                    Instructions:
                    1. Understand the User's Symptoms: Review each symptom the user mentions to determine what condition(s) they may have.
                    2. Ask Follow-up Questions: Based on initial symptoms, ask one focused question at a time to gather further details.
                    3. Use File Search: Retrieve relevant content from the dataset file for accurate diagnoses.
                    4. Provide Clear Feedback: After gathering enough symptoms, provide a concise, aesthetically simple diagnosis.

                    Response Style:
                    - Concise and Aesthetic: Avoid long paragraphs. Keep responses simple, asking one question per message.
                    - Empathetic and Professional: Keep a supportive tone and provide clear guidance.
                    - When Uncertain: If more information is needed, ask another question based on common indicators related to the symptoms.`

// threadSystemPrompt is the stricter instruction used for persisted threads.
const threadSystemPrompt = `You are DocGPT, a strict medical assistant. Your task is to diagnose possible conditions based on the user's reported symptoms using the provided knowledge file. You must not go out of context and can ask a maximum of 5 questions, one at a time. Provide concise responses and avoid lengthy explanations.`

// LLMClient is the slice of the LLM provider the chat service consumes.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, messages []models.Message) (string, error)
	CreateAssistantThread(ctx context.Context) (string, error)
}

// KnowledgeSearcher looks up prompt-augmentation content for a query.
type KnowledgeSearcher interface {
	Search(query string) (string, error)
}

// ChatService is the conversation manager. It drives both chat modes: the
// session mode backed by the in-memory history store, and the thread mode
// backed by persisted thread documents.
type ChatService struct {
	store     store.Store
	llm       LLMClient
	knowledge KnowledgeSearcher
	history   *history.Store
}

func NewChatService(s store.Store, llm LLMClient, knowledge KnowledgeSearcher, hist *history.Store) *ChatService {
	return &ChatService{
		store:     s,
		llm:       llm,
		knowledge: knowledge,
		history:   hist,
	}
}

// HandleSessionMessage processes one user message in session mode: record it
// in the capped session buffer, look up knowledge for the query, send the
// system prompt plus buffered history plus a knowledge message to the LLM,
// and record the reply.
//
// The trim runs after the user append but not after the assistant append, so
// the buffer can sit one over capacity until the next user message.
func (s *ChatService) HandleSessionMessage(ctx context.Context, sessionID, query string) (string, error) {
	s.history.Append(sessionID, models.Message{Role: "user", Content: query})
	s.history.TrimFront(sessionID)

	knowledgeContent, err := s.knowledge.Search(query)
	if err != nil {
		return "", fmt.Errorf("knowledge lookup failed: %w", err)
	}

	messages := make([]models.Message, 0, s.history.Len(sessionID)+2)
	messages = append(messages, models.Message{Role: "system", Content: sessionSystemPrompt})
	messages = append(messages, s.history.Messages(sessionID)...)
	messages = append(messages, models.Message{Role: "system", Content: knowledgeContent})

	assistantMessage, err := s.llm.CreateChatCompletion(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	s.history.Append(sessionID, models.Message{Role: "assistant", Content: assistantMessage})

	return assistantMessage, nil
}

// CreateThread provisions a provider thread id and stores an empty thread
// owned by the user.
func (s *ChatService) CreateThread(ctx context.Context, userID uuid.UUID) (*models.Thread, error) {
	threadID, err := s.llm.CreateAssistantThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider thread: %w", err)
	}

	thread := &models.Thread{
		ThreadID: threadID,
		UserID:   userID,
		Messages: []models.Message{},
	}
	if err := s.store.CreateThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("failed to store thread: %w", err)
	}

	log.Printf("Created thread %s for user %s", threadID, userID)
	return thread, nil
}

// AddMessageToThread processes one user message in thread mode. The user
// message is persisted before the LLM call, so an upstream failure still
// leaves it recorded. The prompt carries the system instruction, the full
// persisted history, and the new user message once more at the end — the
// just-appended message therefore appears twice. Known quirk, kept
// deliberately; the candidate fix is dropping the trailing duplicate.
func (s *ChatService) AddMessageToThread(ctx context.Context, userID uuid.UUID, threadID, content string) (string, error) {
	thread, err := s.store.GetThread(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrThreadNotFound
		}
		return "", fmt.Errorf("failed to load thread: %w", err)
	}

	thread.Messages = append(thread.Messages, models.Message{Role: "user", Content: content})
	if err := s.store.UpdateThreadMessages(ctx, threadID, userID, thread.Messages); err != nil {
		return "", fmt.Errorf("failed to persist user message: %w", err)
	}

	messages := make([]models.Message, 0, len(thread.Messages)+2)
	messages = append(messages, models.Message{Role: "system", Content: threadSystemPrompt})
	messages = append(messages, thread.Messages...)
	messages = append(messages, models.Message{Role: "user", Content: content})

	assistantMessage, err := s.llm.CreateChatCompletion(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	thread.Messages = append(thread.Messages, models.Message{Role: "assistant", Content: assistantMessage})
	if err := s.store.UpdateThreadMessages(ctx, threadID, userID, thread.Messages); err != nil {
		return "", fmt.Errorf("failed to persist assistant message: %w", err)
	}

	return assistantMessage, nil
}

// ListThreads returns all threads owned by the user.
func (s *ChatService) ListThreads(ctx context.Context, userID uuid.UUID) ([]models.ThreadSummary, error) {
	threads, err := s.store.ListThreadsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	summaries := make([]models.ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		summaries = append(summaries, models.ThreadSummary{
			ThreadID:  thread.ThreadID,
			CreatedAt: thread.CreatedAt,
			Messages:  thread.Messages,
		})
	}
	return summaries, nil
}

// GetThreadMessages returns the message log of one thread owned by the user.
func (s *ChatService) GetThreadMessages(ctx context.Context, userID uuid.UUID, threadID string) ([]models.Message, error) {
	thread, err := s.store.GetThread(ctx, threadID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	return thread.Messages, nil
}
