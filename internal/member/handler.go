package member

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
// @Summary      List the gym's members
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ListedMember
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/members [get]
func (h *Handler) List(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	members, err := h.service.List(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// Create godoc
// @Summary      Enroll a member
// @Description  The due date is set 30 days after registration. National IDs are unique across all gyms.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MemberRequest  true  "Member data"
// @Success      201      {object}  Member
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /gym/members [post]
func (h *Handler) Create(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), gymID, req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// Update godoc
// @Summary      Update a member
// @Description  An Unpaid-to-Paid transition resets the due date to 30 days from now.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int            true  "Member ID"
// @Param        request   body      MemberRequest  true  "Member data"
// @Success      200       {object}  api.MessageResponse
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Failure      409       {object}  api.ErrorResponse
// @Router       /gym/members/{memberID} [put]
func (h *Handler) Update(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), memberID, req); err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member updated"})
}

// Delete godoc
// @Summary      Delete a member
// @Description  Also removes the member's attendance history.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  api.MessageResponse
// @Failure      400       {object}  api.ErrorResponse
// @Router       /gym/members/{memberID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), memberID); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted"})
}

// GetStats godoc
// @Summary      Member payment statistics
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StatusStats
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/members/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	stats, err := h.service.StatusStats(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
