package license

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FrancoGW/fit-app/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary      List all licenses
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ListedLicense
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/licenses [get]
func (h *Handler) List(c *gin.Context) {
	licenses, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, licenses)
}

// Grant godoc
// @Summary      Grant a license to a gym
// @Description  Supersedes any currently active license for the gym.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      GrantRequest  true  "License grant data"
// @Success      201      {object}  License
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/licenses [post]
func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	lic, err := h.service.Grant(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidStartDate) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to grant license"})
		return
	}

	c.JSON(http.StatusCreated, lic)
}

// Revoke godoc
// @Summary      Revoke a license
// @Description  Idempotent; revoking an already inactive license succeeds without changes.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        licenseID  path      int  true  "License ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Router       /admin/licenses/{licenseID}/revoke [post]
func (h *Handler) Revoke(c *gin.Context) {
	licenseID, err := strconv.Atoi(c.Param("licenseID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid license ID"})
		return
	}

	if err := h.service.Revoke(c.Request.Context(), licenseID); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to revoke license"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "License revoked"})
}

// Stats godoc
// @Summary      License and gym statistics
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Stats
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListActiveGyms godoc
// @Summary      Active gyms eligible for a license grant
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ActiveGym
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/licenses/gyms [get]
func (h *Handler) ListActiveGyms(c *gin.Context) {
	gyms, err := h.service.ListActiveGyms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// ActiveInfo godoc
// @Summary      Active license of one gym
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        gymID  path      int  true  "Gym account ID"
// @Success      200    {object}  Info
// @Failure      404    {object}  api.ErrorResponse
// @Router       /admin/gyms/{gymID}/license [get]
func (h *Handler) ActiveInfo(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	info, err := h.service.ActiveInfo(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No active license"})
		return
	}

	c.JSON(http.StatusOK, info)
}
