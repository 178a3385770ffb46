package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"tracker-backend/internal/cache"
	"tracker-backend/internal/middleware"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

// TodoHandler serves per-user todos. Every operation is scoped to the
// authenticated user.
type TodoHandler struct {
	todos *services.TodoService
	jobs  *services.JobService
}

func NewTodoHandler(todos *services.TodoService, jobs *services.JobService) *TodoHandler {
	return &TodoHandler{todos: todos, jobs: jobs}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	todos, err := h.todos.List(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat daftar tugas")
		return
	}
	utils.JSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	todo, err := h.todos.Create(r.Context(), &req, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	todo, err := h.todos.Get(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	todo, err := h.todos.Update(r.Context(), id, &req, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.todos.Delete(r.Context(), id, userID); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "tugas dihapus"})
}

// JobOptions lists jobs a todo can link to (cancelled jobs excluded).
func (h *TodoHandler) JobOptions(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.JobOptionsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	options, err := h.jobs.ListOptions(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat pilihan pekerjaan")
		return
	}

	if data, err := json.Marshal(options); err == nil {
		cache.SetCached(r.Context(), cache.JobOptionsKey, data, 5*time.Minute)
	}
	utils.JSON(w, http.StatusOK, options)
}
