package chat

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/middleware"
)

// Handler serves the chat page and the chat API.
type Handler struct {
	service ChatService
}

// NewHandler creates a new chat handler.
func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Page renders the chat UI (GET /).
func (h *Handler) Page(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, ChatPage())
}

// Chat answers one message (POST /api/chat). A body that isn't a JSON
// object with a string message counts as no message.
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewMissingInput("No message provided")
	}

	reply, err := h.service.Resolve(c.Request().Context(), req.Message)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reply)
}
