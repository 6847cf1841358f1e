package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/waterworks/records/internal/middleware"
	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type AuthHandler struct {
	*base
	access     *utils.TokenIssuer
	refresh    *utils.TokenIssuer
	bcryptCost int
}

func NewAuthHandler(b *base, access, refresh *utils.TokenIssuer, bcryptCost int) *AuthHandler {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{base: b, access: access, refresh: refresh, bcryptCost: bcryptCost}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// -------------- REGISTER ----------------------

// Register creates an account. An admin account can only be registered by an
// admin, except for the very first one.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		utils.JSONError(w, http.StatusBadRequest, "name, email and password required")
		return
	}

	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}
	// Without an admin session an admin account is only accepted as the first one.
	firstAdmin := false
	if role == models.RoleAdmin {
		s, ok := middleware.SessionFrom(r.Context())
		firstAdmin = !ok || !s.IsAdmin()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		h.fail(w, r, err, "internal error")
		return
	}

	u, err := h.store.CreateUser(r.Context(), store.NewUser{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FirstAdmin:   firstAdmin,
	})
	if errors.Is(err, store.ErrAdminExists) {
		err = forbidden(err.Error())
	}
	if err != nil {
		h.fail(w, r, err, "Failed to register user")
		return
	}

	h.created(w, "user", "user created", u)
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		utils.JSONError(w, http.StatusBadRequest, "Email is required")
		return
	}
	role := models.Role(req.Role)
	if role == "" {
		role = models.RoleUser
	}

	u, err := h.store.FindLoginUser(r.Context(), req.Email, role)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	// Accounts added by an admin without a password cannot log in.
	if u.Password == "" {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	resp, refreshExp, err := h.issue(u)
	if err != nil {
		h.fail(w, r, err, "token error")
		return
	}
	if err := h.store.SaveRefreshToken(r.Context(), u.ID, resp.RefreshToken, refreshExp); err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// issue signs a fresh access/refresh pair and returns the refresh expiry.
func (h *AuthHandler) issue(u *models.User) (*tokenResp, time.Time, error) {
	access, _, err := h.access.Generate(u)
	if err != nil {
		return nil, time.Time{}, err
	}
	refresh, refreshExp, err := h.refresh.Generate(u)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &tokenResp{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(h.access.TTL.Seconds()),
	}, refreshExp, nil
}

// ---------------- REFRESH ---------------------

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	claims, err := h.refresh.Verify(req.RefreshToken)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	// Re-read the user so a rotated token carries current details.
	u, err := h.store.GetUser(r.Context(), claims.SubjectInt())
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	resp, refreshExp, err := h.issue(u)
	if err != nil {
		h.fail(w, r, err, "token error")
		return
	}

	err = h.store.RotateRefreshToken(r.Context(), u.ID, req.RefreshToken, resp.RefreshToken, refreshExp)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "refresh token expired or invalid")
		return
	}
	if err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		h.fail(w, r, err, "not authorized")
		return
	}

	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.store.RevokeRefreshToken(r.Context(), s.UserID, req.RefreshToken); err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, err := session(r)
	if err != nil {
		h.fail(w, r, err, "not authorized")
		return
	}

	u, err := h.store.GetUser(r.Context(), s.UserID)
	if err != nil {
		h.fail(w, r, err, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, u)
}
