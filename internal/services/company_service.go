package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

var (
	errCompanyExists = apperr.Conflict("company already exist")
	errHRRole        = apperr.Validation("companyHR must be a Company_HR user")
)

type CompanyService struct {
	DB      *gorm.DB
	Cascade *Cascader
	Logger  *slog.Logger
}

func NewCompanyService(db *gorm.DB, cascade *Cascader, logger *slog.Logger) *CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{DB: db, Cascade: cascade, Logger: logger}
}

func (s *CompanyService) Create(ctx context.Context, actor *models.User, req *dtos.CompanyCreationRequest) (*models.Company, error) {
	db := s.DB.WithContext(ctx)
	name := normalizeName(req.CompanyName)
	email := normalizeEmail(req.CompanyEmail)

	// 1. The HR manager defaults to the caller but may be another HR user
	hrID := actor.ID
	if req.CompanyHR != nil && *req.CompanyHR != actor.ID {
		var hr models.User
		if err := db.First(&hr, *req.CompanyHR).Error; err != nil {
			return nil, lookupError(err, apperr.ErrUserNotFound)
		}
		if hr.Role != models.RoleCompanyHR {
			return nil, errHRRole
		}
		hrID = hr.ID
	}

	// 2. Name and email are unique across companies
	if err := s.checkUnique(db, 0, &name, &email); err != nil {
		return nil, err
	}

	company := &models.Company{
		CompanyName:       name,
		Description:       req.Description,
		Industry:          req.Industry,
		Address:           req.Address,
		NumberOfEmployees: req.NumberOfEmployees,
		CompanyEmail:      email,
		CompanyHR:         hrID,
		CreatedBy:         actor.ID,
	}
	if err := db.Create(company).Error; err != nil {
		return nil, storeError(err, errCompanyExists)
	}
	s.Logger.Info("company created", "company_id", company.ID, "company_hr", hrID)
	return company, nil
}

// Update applies the supplied fields to a company the caller manages.
func (s *CompanyService) Update(ctx context.Context, actor *models.User, id uint, req *dtos.CompanyUpdateRequest) (*models.Company, error) {
	company, err := loadOwned[models.Company](ctx, s.DB, id, actor, apperr.ErrCompanyNotFound)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var name, email *string
	if req.CompanyName != nil {
		n := normalizeName(*req.CompanyName)
		name = &n
	}
	if req.CompanyEmail != nil {
		e := normalizeEmail(*req.CompanyEmail)
		email = &e
	}
	if err := s.checkUnique(db, company.ID, name, email); err != nil {
		return nil, err
	}

	if name != nil {
		company.CompanyName = *name
	}
	if email != nil {
		company.CompanyEmail = *email
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.NumberOfEmployees != nil {
		company.NumberOfEmployees = *req.NumberOfEmployees
	}

	if err := db.Save(company).Error; err != nil {
		return nil, storeError(err, errCompanyExists)
	}
	return company, nil
}

// checkUnique reports a conflict when another company already uses name or
// email. Nil arguments are not checked.
func (s *CompanyService) checkUnique(db *gorm.DB, selfID uint, name, email *string) error {
	if name == nil && email == nil {
		return nil
	}
	query := db.Model(&models.Company{}).Where("id <> ?", selfID)
	switch {
	case name != nil && email != nil:
		query = query.Where("(company_name = ? OR company_email = ?)", *name, *email)
	case name != nil:
		query = query.Where("company_name = ?", *name)
	default:
		query = query.Where("company_email = ?", *email)
	}
	var clashes int64
	if err := query.Count(&clashes).Error; err != nil {
		return apperr.Internal("failed to check company", err)
	}
	if clashes > 0 {
		return errCompanyExists
	}
	return nil
}

// Delete removes a company the caller manages, with its jobs and their
// applications.
func (s *CompanyService) Delete(ctx context.Context, actor *models.User, id uint) error {
	company, err := loadOwned[models.Company](ctx, s.DB, id, actor, apperr.ErrCompanyNotFound)
	if err != nil {
		return err
	}
	if err := s.Cascade.DeleteCompany(ctx, company.ID); err != nil {
		return err
	}
	s.Logger.Info("company deleted", "company_id", company.ID)
	return nil
}

// Get returns the company with its jobs, newest first.
func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Preload("Jobs", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&company, id).Error
	if err != nil {
		return nil, lookupError(err, apperr.ErrCompanyNotFound)
	}
	return &company, nil
}

// SearchByName finds a company by its exact name, ignoring case.
func (s *CompanyService) SearchByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).Where("company_name = ?", normalizeName(name)).First(&company).Error
	if err != nil {
		return nil, lookupError(err, apperr.ErrCompanyNotFound)
	}
	return &company, nil
}

// ApplicationsForJob lists the applications to a job the caller posted,
// with the applicant attached.
func (s *CompanyService) ApplicationsForJob(ctx context.Context, actor *models.User, jobID uint) ([]models.Application, error) {
	job, err := loadOwned[models.Job](ctx, s.DB, jobID, actor, apperr.ErrJobNotFound)
	if err != nil {
		return nil, err
	}
	var apps []models.Application
	err = s.DB.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", job.ID).
		Order("created_at, id").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to load applications", err)
	}
	return apps, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
