package plan

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

// List godoc
// @Summary      List the gym's plans
// @Tags         plans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Plan
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/plans [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	plans, err := h.service.List(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// Create godoc
// @Summary      Create a plan
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PlanRequest  true  "Plan data"
// @Success      201      {object}  Plan
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /gym/plans [post]
func (h *Handler) Create(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create plan"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Update godoc
// @Summary      Update a plan
// @Tags         plans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        planID   path      int          true  "Plan ID"
// @Param        request  body      PlanRequest  true  "Plan data"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /gym/plans/{planID} [put]
func (h *Handler) Update(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), planID, gymID, req); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan updated"})
}

// Delete godoc
// @Summary      Delete a plan
// @Description  Fails when members still reference the plan; the error reports how many.
// @Tags         plans
// @Security     BearerAuth
// @Produce      json
// @Param        planID  path      int  true  "Plan ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Router       /gym/plans/{planID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	planID, err := strconv.Atoi(c.Param("planID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid plan ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), planID, gymID); err != nil {
		var inUse *InUseError
		if errors.As(err, &inUse) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: inUse.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete plan"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Plan deleted"})
}
