package handlers

import (
	"encoding/json"
	"net/http"

	"tracker-backend/internal/auth"
	"tracker-backend/internal/config"
	"tracker-backend/internal/middleware"
	"tracker-backend/internal/models"
	"tracker-backend/internal/services"
	"tracker-backend/pkg/utils"
)

type AuthHandler struct {
	users *services.UserService
	totp  *services.TOTPService
	jwt   *auth.JWTManager
	cfg   *config.Config
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService, jwt *auth.JWTManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, totp: totp, jwt: jwt, cfg: cfg}
}

// setSessionCookie attaches the session token as an HTTP-only cookie so
// browser clients never touch the token from script.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.jwt.SessionMaxAge(),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	resp, err := h.users.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, resp.Token)
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	// 2FA-enabled accounts get a temp token; no session until the code checks out.
	if resp.RequiresTOTP {
		utils.JSON(w, http.StatusOK, resp)
		return
	}

	h.setSessionCookie(w, resp.Token)
	utils.JSON(w, http.StatusOK, resp)
}

// LoginTOTP is step two of the 2FA login: temp token plus a fresh code.
func (h *AuthHandler) LoginTOTP(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	claims, err := h.jwt.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "sesi verifikasi tidak valid atau kedaluwarsa")
		return
	}

	user, err := h.totp.ValidateCode(r.Context(), claims.UserID, req.Code)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal membuat sesi")
		return
	}

	h.setSessionCookie(w, token)
	utils.JSON(w, http.StatusOK, &models.AuthResponse{Token: token, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	utils.JSON(w, http.StatusOK, map[string]string{"message": "logout berhasil"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "tidak terautentikasi")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// SetupTOTP generates a 2FA secret for the authenticated user.
func (h *AuthHandler) SetupTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	setup, err := h.totp.GenerateSetup(r.Context(), user)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "gagal membuat secret 2FA")
		return
	}
	utils.JSON(w, http.StatusOK, setup)
}

// VerifyTOTP confirms the first code and enables 2FA.
func (h *AuthHandler) VerifyTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "body tidak valid")
		return
	}

	if err := h.totp.VerifyAndEnable(r.Context(), userID, req.Code); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA diaktifkan"})
}

func (h *AuthHandler) DisableTOTP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.totp.Disable(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "2FA dinonaktifkan"})
}
