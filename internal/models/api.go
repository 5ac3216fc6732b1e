package models

import "time"

// --- Request Structs ---

// SignupRequest defines the expected body for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SigninRequest defines the expected body for the signin endpoint.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionChatRequest defines the body for the session (non-persisted) chat
// endpoint. The session id is caller-supplied.
type SessionChatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"`
}

// AddMessageRequest defines the body for posting a message to a thread.
type AddMessageRequest struct {
	Content string `json:"content"`
}

// --- Response Structs ---

// MessageResponse is the generic success body used by the auth endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// CheckSessionResponse reports whether the caller holds a valid session.
type CheckSessionResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

// ChatResponse carries the assistant's reply for both chat modes.
type ChatResponse struct {
	Message          string `json:"message"`
	AssistantMessage string `json:"assistantMessage"`
}

// ThreadSummary is one element of the thread-listing response.
type ThreadSummary struct {
	ThreadID  string    `json:"threadId"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages"`
}

// ThreadMessagesResponse wraps the message log of a single thread.
type ThreadMessagesResponse struct {
	Messages []Message `json:"messages"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Message string `json:"message"`
}
