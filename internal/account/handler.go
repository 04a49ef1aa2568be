package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FrancoGW/fit-app/internal/api"
	"github.com/FrancoGW/fit-app/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates an account and returns access & refresh tokens. Gym accounts are gated by their license.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials),
			errors.Is(err, ErrNoActiveLicense),
			errors.Is(err, ErrLicenseExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      map[string]string  true  "Refresh token payload"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "refresh_token is required"})
		return
	}

	accessToken, session, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"session":      session,
	})
}

// GetMe godoc
// @Summary      Get current account
// @Tags         account
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Account
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	acct, err := h.service.GetByID(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Account not found"})
		return
	}

	c.JSON(http.StatusOK, acct)
}

// ChangePassword godoc
// @Summary      Change own password
// @Tags         account
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChangePasswordRequest  true  "Password change payload"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /me/password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	accountID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), accountID, req); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAccountNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated"})
}

// ListGyms godoc
// @Summary      List gym accounts
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Account
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.service.ListGyms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// CreateGym godoc
// @Summary      Provision a gym account
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGymRequest  true  "Gym account data"
// @Success      201      {object}  Account
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	acct, err := h.service.CreateGym(c.Request.Context(), req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create gym account"})
		return
	}

	c.JSON(http.StatusCreated, acct)
}

// UpdateGym godoc
// @Summary      Update a gym account
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID    path      int               true  "Gym account ID"
// @Param        request  body      UpdateGymRequest  true  "Gym account data"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/gyms/{gymID} [put]
func (h *Handler) UpdateGym(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.UpdateGym(c.Request.Context(), gymID, req); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update gym account"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Gym account updated"})
}

// ToggleActive godoc
// @Summary      Toggle a gym account's active flag
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        gymID  path      int  true  "Gym account ID"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  api.ErrorResponse
// @Router       /admin/gyms/{gymID}/toggle [post]
func (h *Handler) ToggleActive(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	active, err := h.service.ToggleActive(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to toggle gym account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": gymID, "active": active})
}
