package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	exportSheet = "Applications"
	// XLSXContentType is the media type of the exported workbook.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []any{"JobID", "Applicant", "Email", "TechSkills", "SoftSkills", "Resume", "AppliedAt"}

var errNoApplications = apperr.NotFound("no applications found")

// Export is a rendered spreadsheet ready to send as an attachment.
type Export struct {
	Filename string
	Content  []byte
}

type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// ApplicationsForDay renders every application submitted on day (UTC) to
// any job of the company as an xlsx workbook. Only the company's HR
// manager may export.
func (s *ExportService) ApplicationsForDay(ctx context.Context, actor *models.User, companyID uint, day time.Time) (*Export, error) {
	company, err := loadOwned[models.Company](ctx, s.DB, companyID, actor, apperr.ErrCompanyNotFound)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var apps []models.Application
	err = s.DB.WithContext(ctx).
		Preload("User").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id = ?", company.ID).
		Where("applications.created_at >= ? AND applications.created_at < ?", start, end).
		Order("applications.created_at, applications.id").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to load applications", err)
	}
	if len(apps) == 0 {
		return nil, errNoApplications
	}

	content, err := renderApplications(apps)
	if err != nil {
		return nil, apperr.Internal("failed to render spreadsheet", err)
	}
	return &Export{
		Filename: fmt.Sprintf("applications_%d_%s.xlsx", company.ID, start.Format(dtos.DateLayout)),
		Content:  content,
	}, nil
}

func renderApplications(apps []models.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, app := range apps {
		var applicant, email string
		if app.User != nil {
			applicant = app.User.FirstName + " " + app.User.LastName
			email = app.User.Email
		}
		row := []any{
			app.JobID,
			applicant,
			email,
			strings.Join(app.UserTechSkills, ", "),
			strings.Join(app.UserSoftSkills, ", "),
			app.UserResume.SecureURL,
			app.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
