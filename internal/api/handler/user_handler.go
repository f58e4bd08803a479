package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user directory operations. All routes
// run behind the Auth middleware.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type listUsersResponse struct {
	Users []userSummaryResponse `json:"users"`
}

type userProfileResponse struct {
	User *domain.User `json:"user"`
}

type userMessagesResponse struct {
	Messages []userMessageResponse `json:"messages"`
}

// List handles GET /v1/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	out := make([]userSummaryResponse, len(users))
	for i, u := range users {
		out[i] = toSummaryResponse(u)
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: out})
}

// Get handles GET /v1/users/:username.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userProfileResponse
// @Failure      404       {object}  map[string]string
// @Router       /v1/users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	user, err := h.service.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, userProfileResponse{User: user})
}

// MessagesFrom handles GET /v1/users/:username/messages/from. Only the user
// themselves may list their own messages.
//
// @Summary      List messages sent by a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userMessagesResponse
// @Failure      401       {object}  map[string]string
// @Router       /v1/users/{username}/messages/from [get]
func (h *UserHandler) MessagesFrom(c echo.Context) error {
	username, err := h.requireSelf(c)
	if err != nil {
		return err
	}

	messages, err := h.service.MessagesFrom(c.Request().Context(), username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, userMessagesResponse{Messages: toUserMessagesResponse(messages)})
}

// MessagesTo handles GET /v1/users/:username/messages/to. Only the user
// themselves may list their own messages.
//
// @Summary      List messages received by a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userMessagesResponse
// @Failure      401       {object}  map[string]string
// @Router       /v1/users/{username}/messages/to [get]
func (h *UserHandler) MessagesTo(c echo.Context) error {
	username, err := h.requireSelf(c)
	if err != nil {
		return err
	}

	messages, err := h.service.MessagesTo(c.Request().Context(), username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, userMessagesResponse{Messages: toUserMessagesResponse(messages)})
}

// requireSelf rejects requests where the acting principal is not the user
// named in the path.
func (h *UserHandler) requireSelf(c echo.Context) (string, error) {
	username, err := ctxUsername(c)
	if err != nil {
		return "", err
	}
	if username != c.Param("username") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "cannot access another user's messages")
	}
	return username, nil
}
