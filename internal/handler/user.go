package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idsynccam/registration-api/internal/config"
	"github.com/idsynccam/registration-api/internal/middleware"
	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/repository"
	"github.com/idsynccam/registration-api/internal/response"
)

// UserHandler implements account management endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, u UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Username string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// GetAllUsers returns the safe projection of every account.
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return response.Error(c, http.StatusInternalServerError, "query failed")
	}
	return response.Success(c, http.StatusOK, "Users retrieved successfully", echo.Map{
		"users": users,
		"count": len(users),
	})
}

// CreateUser registers a new account (admin only).  Duplicate emails map to
// 409 and the response never contains password or token material.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		return response.Error(c, http.StatusBadRequest, "userName and email are required")
	}
	if !strings.Contains(req.Email, "@") {
		return response.Error(c, http.StatusBadRequest, "email is not valid")
	}
	if len(req.Password) < 8 {
		return response.Error(c, http.StatusBadRequest, "password must be at least 8 characters")
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleUser {
		role = model.RoleUser
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return response.Error(c, http.StatusConflict, "User already existing")
		}
		return response.Error(c, http.StatusInternalServerError, "create user failed")
	}

	return response.Success(c, http.StatusCreated, "User created successfully", model.PublicUser{
		ID: id, Username: req.Username, Email: req.Email, Role: role,
	})
}

// DeleteUser removes the account named by the :id parameter (admin only).
// Deleting the row drops the stored token hashes with it, so any live
// session of that user dies immediately.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid id")
	}
	return h.deleteByID(c, id)
}

// DeleteMe removes the authenticated user's own account.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}
	return h.deleteByID(c, claims.ID)
}

func (h *UserHandler) deleteByID(c echo.Context, id uint64) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrUserNotFound {
			return response.Error(c, http.StatusNotFound, "User not found")
		}
		return response.Error(c, http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
