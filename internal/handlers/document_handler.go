package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"tracker-backend/internal/metrics"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

type DocumentHandler struct {
	documents *services.DocumentService
	pdf       *services.PDFService
}

func NewDocumentHandler(documents *services.DocumentService, pdf *services.PDFService) *DocumentHandler {
	return &DocumentHandler{documents: documents, pdf: pdf}
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	doc, err := h.documents.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	metrics.DocumentsCreatedTotal.WithLabelValues(doc.DocumentType).Inc()
	utils.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.DocumentFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.documents.List(r.Context(), filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat daftar dokumen")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	var req models.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	doc, err := h.documents.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	if err := h.documents.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "dokumen dihapus"})
}

// DownloadPDF renders the document as a printable PDF.
func (h *DocumentHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	data, filename, err := h.pdf.Render(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
