package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tracker-backend/internal/cache"
	"tracker-backend/internal/metrics"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// TrackingHandler is the unauthenticated public surface. Responses are
// cached briefly since clients tend to poll the same code.
type TrackingHandler struct {
	tracking *services.TrackingService
}

func NewTrackingHandler(tracking *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(mux.Vars(r)["code"]))
	if code == "" {
		utils.Error(w, http.StatusBadRequest, "kode tracking wajib diisi")
		return
	}

	cacheKey := cache.TrackingKey(code)
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		metrics.TrackingLookupsTotal.WithLabelValues("hit").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	view, err := h.tracking.TrackByCode(r.Context(), code)
	if err != nil {
		metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		handleServiceError(w, err)
		return
	}

	metrics.TrackingLookupsTotal.WithLabelValues("found").Inc()

	if data, err := json.Marshal(view); err == nil {
		cache.SetCached(r.Context(), cacheKey, data, cache.TrackingTTL)
	}
	utils.JSON(w, http.StatusOK, view)
}
