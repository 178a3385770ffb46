package handlers

import (
	"encoding/json"
	"net/http"

	"tracker-backend/internal/cache"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

type CompanySettingsHandler struct {
	settings *services.CompanySettingsService
}

func NewCompanySettingsHandler(settings *services.CompanySettingsService) *CompanySettingsHandler {
	return &CompanySettingsHandler{settings: settings}
}

func (h *CompanySettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.SettingsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	settings, err := h.settings.GetOrDefault(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat pengaturan perusahaan")
		return
	}

	if data, err := json.Marshal(settings); err == nil {
		cache.SetCached(r.Context(), cache.SettingsKey, data, cache.SettingsTTL)
	}
	utils.JSON(w, http.StatusOK, settings)
}

// Save handles both the first write and later updates; the storage layer
// keeps it a singleton.
func (h *CompanySettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.CompanySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	settings, err := h.settings.Save(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	cache.InvalidateSettingsCache(r.Context())
	utils.JSON(w, http.StatusOK, settings)
}
