package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tracker-backend/internal/cache"
	"tracker-backend/internal/metrics"
	"tracker-backend/internal/middleware"
	"tracker-backend/internal/models"
	"tracker-backend/internal/notify"
	"tracker-backend/internal/services"
	"tracker-backend/internal/timeutil"
	"tracker-backend/pkg/utils"
)

type JobHandler struct {
	jobs *services.JobService
	hub  *notify.Hub
}

func NewJobHandler(jobs *services.JobService, hub *notify.Hub) *JobHandler {
	return &JobHandler{jobs: jobs, hub: hub}
}

func (h *JobHandler) broadcast(eventType string, job *models.Job) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(notify.JobEvent{
		Type:         eventType,
		JobID:        job.ID,
		TrackingCode: job.TrackingCode,
		Status:       job.Status,
		At:           timeutil.Now(),
	})
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	job, err := h.jobs.Create(r.Context(), &req, actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	metrics.JobsCreatedTotal.Inc()
	cache.InvalidateJobCaches(r.Context())
	h.broadcast("job_created", job)

	utils.JSON(w, http.StatusCreated, job)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.JobFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.jobs.List(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat daftar pekerjaan")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	job, err := h.jobs.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	var req models.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	job, err := h.jobs.Update(r.Context(), id, &req, actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	cache.InvalidateTrackingCache(r.Context(), job.TrackingCode)
	cache.InvalidateKeys(r.Context(), cache.JobOptionsKey)
	h.broadcast("job_updated", job)

	utils.JSON(w, http.StatusOK, job)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	if err := h.jobs.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	cache.InvalidateJobCaches(r.Context())
	utils.JSON(w, http.StatusOK, map[string]string{"message": "pekerjaan dihapus"})
}

// ListHistory returns a job's audit trail, newest first.
func (h *JobHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	history, err := h.jobs.ListHistory(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, history)
}

// AppendHistory records a manual audit entry without touching the job.
func (h *JobHandler) AppendHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	var req struct {
		StatusNote string `json:"status_note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	entry, err := h.jobs.AppendHistory(r.Context(), id, req.StatusNote, actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	cache.InvalidateJobCaches(r.Context())
	utils.JSON(w, http.StatusCreated, entry)
}

// Options returns compact job references for linking todos.
func (h *JobHandler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.jobs.ListOptions(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat pilihan pekerjaan")
		return
	}
	utils.JSON(w, http.StatusOK, options)
}
