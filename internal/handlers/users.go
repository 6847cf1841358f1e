package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

type UserHandler struct {
	*base
	bcryptCost int
}

type createUserReq struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// List returns every user. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to fetch users")
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// Create adds a user on someone's behalf. Admin only. Without a password the
// account exists for record keeping but cannot log in.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	var hash string
	if req.Password != "" {
		cost := h.bcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		b, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
		if err != nil {
			h.fail(w, r, err, "Failed to add user")
			return
		}
		hash = string(b)
	}

	u, err := h.store.CreateUser(r.Context(), store.NewUser{
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.Role(req.Role),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add user")
		return
	}

	h.created(w, "user", "User added successfully", u)
}
