package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/user-management-api/internal/adapters/primary/validation"
	"github.com/lorrc/user-management-api/internal/core/domain"
	apperrors "github.com/lorrc/user-management-api/internal/core/errors"
	"github.com/lorrc/user-management-api/internal/core/ports"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	userService  ports.UserService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService ports.UserService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userService:  userService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "users"),
	}
}

// RegisterRoutes sets up the routing for all user endpoints.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreateUser)
	r.Get("/{id}", h.HandleGetUser)
}

// --- Request/Response DTOs ---

// CreateUserRequest defines the expected JSON body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate applies the domain rules for new users to the request body.
func (r *CreateUserRequest) Validate() error {
	return r.toParams().Validate()
}

func (r *CreateUserRequest) toParams() *domain.UserCreate {
	return &domain.UserCreate{
		Name:  r.Name,
		Email: r.Email,
	}
}

// UserDTO defines the JSON response for users.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// --- Handlers ---

// HandleCreateUser handles POST /users/
func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateUserRequest](w, r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), *req.toParams())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	h.logger.InfoContext(r.Context(), "user created", "user_id", user.ID)
	WriteCreated(w, toUserDTO(user))
}

// HandleGetUser handles GET /users/{id}
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := validation.ParseIDParam(r, "id")
	if errors.Is(err, validation.ErrIDOutOfRange) {
		err = apperrors.ErrUserNotFound
	}
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	WriteJSON(w, http.StatusOK, toUserDTO(user))
}
