package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"docgpt-backend/internal/auth"
	api_models "docgpt-backend/internal/models"
	db_models "docgpt-backend/internal/models"
	"docgpt-backend/internal/services"
	"docgpt-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatService defines the interface expected from the chat service.
type ChatService interface {
	HandleSessionMessage(ctx context.Context, sessionID, query string) (string, error)
	CreateThread(ctx context.Context, userID uuid.UUID) (*db_models.Thread, error)
	AddMessageToThread(ctx context.Context, userID uuid.UUID, threadID, content string) (string, error)
	ListThreads(ctx context.Context, userID uuid.UUID) ([]api_models.ThreadSummary, error)
	GetThreadMessages(ctx context.Context, userID uuid.UUID, threadID string) ([]db_models.Message, error)
}

type ChatHandlers struct {
	chatService ChatService
}

func NewChatHandlers(chatSvc ChatService) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatSvc,
	}
}

// HandleSessionChat handles POST /api/chat/message, the non-persisted chat
// mode keyed by a caller-supplied session id.
func (h *ChatHandlers) HandleSessionChat(w http.ResponseWriter, r *http.Request) {
	var req api_models.SessionChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Query == "" || req.SessionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "query and sessionId are required")
		return
	}

	assistantMessage, err := h.chatService.HandleSessionMessage(r.Context(), req.SessionID, req.Query)
	if err != nil {
		log.Printf("Error handling chat for session %s: %v", req.SessionID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.ChatResponse{
		Message:          "Message processed",
		AssistantMessage: assistantMessage,
	})
}

// HandleNewThread handles POST /api/chat/new-thread.
func (h *ChatHandlers) HandleNewThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	thread, err := h.chatService.CreateThread(r.Context(), userID)
	if err != nil {
		log.Printf("Error creating new thread for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, thread)
}

// HandleAddMessage handles POST /api/chat/threads/{threadId}/message.
func (h *ChatHandlers) HandleAddMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	threadID := chi.URLParam(r, "threadId")

	var req api_models.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	assistantMessage, err := h.chatService.AddMessageToThread(r.Context(), userID, threadID, req.Content)
	if err != nil {
		log.Printf("Error adding message to thread %s for user %s: %v", threadID, userID, err)
		if errors.Is(err, services.ErrThreadNotFound) {
			httputil.RespondError(w, http.StatusNotFound, services.ErrThreadNotFound.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.ChatResponse{
		Message:          "Message added to thread",
		AssistantMessage: assistantMessage,
	})
}

// HandleListThreads handles GET /api/chat/threads.
func (h *ChatHandlers) HandleListThreads(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	threads, err := h.chatService.ListThreads(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching threads for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, threads)
}

// HandleGetThreadMessages handles GET /api/chat/threads/{threadId}/messages.
func (h *ChatHandlers) HandleGetThreadMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	threadID := chi.URLParam(r, "threadId")

	messages, err := h.chatService.GetThreadMessages(r.Context(), userID, threadID)
	if err != nil {
		log.Printf("Error retrieving messages for thread %s: %v", threadID, err)
		if errors.Is(err, services.ErrThreadNotFound) {
			httputil.RespondError(w, http.StatusNotFound, services.ErrThreadNotFound.Error())
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, api_models.ThreadMessagesResponse{Messages: messages})
}
