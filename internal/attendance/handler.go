package attendance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FrancoGW/fit-app/internal/api"
	"github.com/FrancoGW/fit-app/internal/auth"
	"github.com/FrancoGW/fit-app/internal/member"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CheckIn godoc
// @Summary      Record a member check-in
// @Description  Looks the member up by national ID, appends an attendance record and reports the membership status.
// @Tags         attendance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CheckInRequest  true  "Check-in payload"
// @Success      200      {object}  CheckInResult
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /gym/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.CheckIn(c.Request.Context(), gymID, req.NationalID)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record check-in"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MonthlyList godoc
// @Summary      Check-ins of the current month
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   MonthlyRow
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/attendance [get]
func (h *Handler) MonthlyList(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	rows, err := h.service.MonthlyList(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// MonthlyCount godoc
// @Summary      Number of check-ins this month
// @Tags         attendance
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/attendance/count [get]
func (h *Handler) MonthlyCount(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	count, err := h.service.MonthlyCount(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
