package handlers

import (
	"encoding/json"
	"net/http"

	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

type BankAccountHandler struct {
	accounts *services.BankAccountService
}

func NewBankAccountHandler(accounts *services.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts}
}

func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal memuat daftar rekening")
		return
	}
	utils.JSON(w, http.StatusOK, accounts)
}

func (h *BankAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, account)
}

func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.BankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	account, err := h.accounts.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, account)
}

func (h *BankAccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	var req models.BankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	account, err := h.accounts.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, account)
}

// Delete deactivates the account. The storage layer promotes the oldest
// remaining active account when the deleted one was primary.
func (h *BankAccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "id tidak valid")
		return
	}

	if err := h.accounts.SoftDelete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "rekening dihapus"})
}
