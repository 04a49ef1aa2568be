package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/FrancoGW/fit-app/internal/account"
	"github.com/FrancoGW/fit-app/internal/attendance"
	"github.com/FrancoGW/fit-app/internal/license"
	"github.com/FrancoGW/fit-app/internal/member"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Report is a rendered table: a fixed header row followed by data rows,
// ready for any tabular output format.
type Report struct {
	Name    string
	Headers []string
	Rows    [][]string
}

func BuildGymReport(rows []account.GymExportRow) *Report {
	rep := &Report{
		Name:    "gyms",
		Headers: []string{"ID", "Name", "Username", "Email", "Registered", "Last Access", "Status"},
	}

	for _, r := range rows {
		lastAccess := ""
		if r.LastAccessAt != nil {
			lastAccess = r.LastAccessAt.Format(dateTimeLayout)
		}

		status := "Inactive"
		if r.Active {
			status = "Active"
		}

		rep.Rows = append(rep.Rows, []string{
			strconv.Itoa(r.ID),
			r.GymName,
			r.Username,
			r.Email,
			r.RegisteredAt.Format(dateTimeLayout),
			lastAccess,
			status,
		})
	}

	return rep
}

func BuildLicenseReport(rows []license.LicenseExportRow) *Report {
	rep := &Report{
		Name:    "licenses",
		Headers: []string{"ID", "Gym", "Type", "Start Date", "End Date", "Price", "Status"},
	}

	for _, r := range rows {
		status := "Revoked"
		if r.Active {
			status = "Active"
		}

		rep.Rows = append(rep.Rows, []string{
			strconv.Itoa(r.ID),
			r.GymName,
			r.Type,
			r.StartDate.Format(dateLayout),
			r.EndDate.Format(dateLayout),
			formatPrice(r.Price),
			status,
		})
	}

	return rep
}

func BuildMemberReport(rows []member.MemberExportRow) *Report {
	rep := &Report{
		Name:    "members",
		Headers: []string{"ID", "First Name", "Last Name", "National ID", "Phone", "Registered", "Due Date", "Payment Status", "Plan"},
	}

	for _, r := range rows {
		plan := ""
		if r.PlanName != nil {
			plan = *r.PlanName
		}

		rep.Rows = append(rep.Rows, []string{
			strconv.Itoa(r.ID),
			r.FirstName,
			r.LastName,
			r.NationalID,
			r.Phone,
			r.RegisteredAt.Format(dateLayout),
			r.DueDate.Format(dateLayout),
			r.PaymentStatus,
			plan,
		})
	}

	return rep
}

func BuildAttendanceReport(rows []attendance.MonthlyRow) *Report {
	rep := &Report{
		Name:    "attendance",
		Headers: []string{"Date", "First Name", "Last Name", "National ID"},
	}

	for _, r := range rows {
		rep.Rows = append(rep.Rows, []string{
			r.RecordedAt.Format(dateTimeLayout),
			r.FirstName,
			r.LastName,
			r.NationalID,
		})
	}

	return rep
}

func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(r.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for _, row := range r.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	if err := writeSheetRow(f, sheet, 1, r.Headers); err != nil {
		return err
	}

	for i, row := range r.Rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	return f.SetSheetRow(sheet, cell, &cells)
}

// Filename stamps the report name with the generation date.
func (r *Report) Filename(extension string) string {
	return fmt.Sprintf("%s_report_%s.%s", r.Name, time.Now().Format(dateLayout), extension)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
