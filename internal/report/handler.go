package report

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FrancoGW/fit-app/internal/account"
	"github.com/FrancoGW/fit-app/internal/api"
	"github.com/FrancoGW/fit-app/internal/attendance"
	"github.com/FrancoGW/fit-app/internal/auth"
	"github.com/FrancoGW/fit-app/internal/license"
	"github.com/FrancoGW/fit-app/internal/member"
)

// GymExporter is the slice of the account store the gym report needs.
type GymExporter interface {
	ExportGyms(ctx context.Context) ([]account.GymExportRow, error)
}

type LicenseExporter interface {
	ExportLicenses(ctx context.Context) ([]license.LicenseExportRow, error)
}

type MemberExporter interface {
	ExportMembers(ctx context.Context, gymID int) ([]member.MemberExportRow, error)
}

type AttendanceExporter interface {
	ExportAttendance(ctx context.Context, gymID int) ([]attendance.MonthlyRow, error)
}

type Handler struct {
	gyms       GymExporter
	licenses   LicenseExporter
	members    MemberExporter
	attendance AttendanceExporter
}

func NewHandler(gyms GymExporter, licenses LicenseExporter, members MemberExporter, att AttendanceExporter) *Handler {
	return &Handler{
		gyms:       gyms,
		licenses:   licenses,
		members:    members,
		attendance: att,
	}
}

// ExportGyms godoc
// @Summary      Export the gym list
// @Tags         reports
// @Security     BearerAuth
// @Produce      text/csv
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Success      200  {string}  string
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reports/gyms [get]
func (h *Handler) ExportGyms(c *gin.Context) {
	rows, err := h.gyms.ExportGyms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	h.render(c, BuildGymReport(rows))
}

// ExportLicenses godoc
// @Summary      Export the license list
// @Tags         reports
// @Security     BearerAuth
// @Produce      text/csv
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Success      200  {string}  string
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/reports/licenses [get]
func (h *Handler) ExportLicenses(c *gin.Context) {
	rows, err := h.licenses.ExportLicenses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	h.render(c, BuildLicenseReport(rows))
}

// ExportMembers godoc
// @Summary      Export the gym's member list
// @Tags         reports
// @Security     BearerAuth
// @Produce      text/csv
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Success      200  {string}  string
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/reports/members [get]
func (h *Handler) ExportMembers(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	rows, err := h.members.ExportMembers(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	h.render(c, BuildMemberReport(rows))
}

// ExportAttendance godoc
// @Summary      Export this month's attendance
// @Tags         reports
// @Security     BearerAuth
// @Produce      text/csv
// @Param        format  query  string  false  "csv (default) or xlsx"
// @Success      200  {string}  string
// @Failure      500  {object}  api.ErrorResponse
// @Router       /gym/reports/attendance [get]
func (h *Handler) ExportAttendance(c *gin.Context) {
	gymID, ok := auth.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	rows, err := h.attendance.ExportAttendance(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	h.render(c, BuildAttendanceReport(rows))
}

func (h *Handler) render(c *gin.Context, rep *Report) {
	if c.Query("format") == "xlsx" {
		c.Header("Content-Disposition", "attachment; filename="+rep.Filename("xlsx"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := rep.WriteXLSX(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to render report"})
		}
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+rep.Filename("csv"))
	c.Header("Content-Type", "text/csv")
	if err := rep.WriteCSV(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to render report"})
	}
}
