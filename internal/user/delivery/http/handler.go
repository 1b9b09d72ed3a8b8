package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/user/domain"
	"github.com/adilet-dev/campus-inventory/internal/user/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/user/usecase/query"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	deleteHandler   *command.DeleteUserHandler

	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	repo domain.UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return &UserHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo),
		deleteHandler:   command.NewDeleteUserHandler(repo),
		getUserHandler:  query.NewGetUserHandler(repo),
		listHandler:     query.NewListUsersHandler(repo),
		repo:            repo,
	}
}

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	router.HandleFunc("/users/me", AuthMiddleware(h.Me)).Methods("GET")

	router.HandleFunc("/admin/users", AdminMiddleware(h.ListUsers)).Methods("GET")
	router.HandleFunc("/admin/users/{id}", AdminMiddleware(h.DeleteUser)).Methods("DELETE")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body", Kind: "Validation"})
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
		IP:       clientIP(r),
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error(), Kind: "Validation"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "User registered successfully", Data: user})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body", Kind: "Validation"})
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
		IP:       clientIP(r),
	})
	if err != nil {
		logger.Warn(r.Context()).Str("username", req.Username).Msg("login failed")
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid credentials"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: resp})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found", Kind: "NotFound"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users", Kind: "Internal"})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"users": users, "total": count},
	})
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid user ID", Kind: "Validation"})
		return
	}

	err = h.deleteHandler.Handle(command.DeleteUserCommand{
		ID:    uint(id),
		Actor: ActorFromRequest(r),
	})
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted successfully"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found", Kind: "NotFound"})
	default:
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error(), Kind: "Validation"})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
