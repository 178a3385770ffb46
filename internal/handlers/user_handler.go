package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tracker-backend/internal/middleware"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// UserHandler is the admin user-management surface.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat daftar pengguna")
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	user, err := h.users.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	user, err := h.users.UpdateUser(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.users.DeleteUser(r.Context(), id, actorID); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "pengguna dihapus"})
}

// ToggleStatus flips is_active for a user. Self-toggle is rejected so an
// admin cannot lock themselves out.
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	active, err := h.users.ToggleActive(r.Context(), id, actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": active})
}
