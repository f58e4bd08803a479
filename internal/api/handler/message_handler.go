package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-api/internal/api/metrics"
	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// MessageHandler handles HTTP requests for message operations. All routes
// run behind the Auth middleware.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /v1/messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message to send"
// @Success      201   {object}  sendMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	m, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		FromUsername: username,
		ToUsername:   req.ToUsername,
		Body:         req.Body,
	})
	if err != nil {
		return messageError(c, err)
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, toSendResponse(m))
}

// Get handles GET /v1/messages/:id.
//
// @Summary      Get a message by id
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  messageDetailResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), c.Param("id"), username)
	if err != nil {
		return messageError(c, err)
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// MarkRead handles POST /v1/messages/:id/read.
//
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  markReadResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	result, err := h.service.MarkRead(c.Request().Context(), c.Param("id"), username)
	if err != nil {
		return messageError(c, err)
	}

	metrics.MessagesReadTotal.Inc()
	return c.JSON(http.StatusOK, markReadResponse{ID: result.ID, ReadAt: result.ReadAt.UTC()})
}

// messageError maps message-domain failures to their HTTP responses.
func messageError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrMessageNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "message not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
