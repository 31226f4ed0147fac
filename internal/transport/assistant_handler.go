package transport

import (
	"net/http"

	"parakeet/internal/middleware"
	"parakeet/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ChatRequest is a message for the AI assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// AssistantHandler handles HTTP requests for the AI chat assistant
type AssistantHandler struct {
	assistantService service.AssistantService
	logger           *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService service.AssistantService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService, logger: logger}
}

// RegisterRoutes registers the assistant routes
func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ai/chat", h.Chat)
}

// Chat answers a user message with catalog recommendations or an LLM reply
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	reply, err := h.assistantService.Chat(r.Context(), req.Message)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reply)
}
