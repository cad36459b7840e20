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

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = 100000
	defaultSort     = "-createdAt"
)

// likeEscaper makes user input match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var sortColumns = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"jobTitle":   "job_title ASC",
	"-jobTitle":  "job_title DESC",
}

type JobService struct {
	DB      *gorm.DB
	Cascade *Cascader
	Logger  *slog.Logger
}

func NewJobService(db *gorm.DB, cascade *Cascader, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		DB:      db,
		Cascade: cascade,
		Logger:  logger,
	}
}

// Page is one slice of a listing plus the size of the whole listing.
type Page struct {
	Jobs  []models.Job
	Total int64
	Page  int
	Size  int
}

func (s *JobService) CreateJob(ctx context.Context, actor *models.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	db := s.DB.WithContext(ctx)

	// Only the company's HR manager posts jobs for it
	var company models.Company
	if err := db.First(&company, req.CompanyID).Error; err != nil {
		return nil, lookupError(err, apperr.ErrCompanyNotFound)
	}
	if company.CompanyHR != actor.ID {
		return nil, apperr.ErrNotAuthorized
	}

	// creating the job
	job := &models.Job{
		JobTitle:        strings.TrimSpace(req.JobTitle),
		JobLocation:     req.JobLocation,
		WorkingTime:     req.WorkingTime,
		SeniorityLevel:  req.SeniorityLevel,
		JobDescription:  req.JobDescription,
		TechnicalSkills: nonNil(req.TechnicalSkills),
		SoftSkills:      nonNil(req.SoftSkills),
		AddedBy:         actor.ID,
		CompanyID:       company.ID,
	}
	if err := db.Create(job).Error; err != nil {
		return nil, storeError(err, apperr.Conflict("job already exist"))
	}
	s.Logger.Info("job created", "job_id", job.ID, "company_id", company.ID)
	return job, nil
}

// UpdateJob applies the supplied fields to a job the caller posted.
func (s *JobService) UpdateJob(ctx context.Context, actor *models.User, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := loadOwned[models.Job](ctx, s.DB, id, actor, apperr.ErrJobNotFound)
	if err != nil {
		return nil, err
	}

	if req.JobTitle != nil {
		job.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.JobLocation != nil {
		job.JobLocation = *req.JobLocation
	}
	if req.WorkingTime != nil {
		job.WorkingTime = *req.WorkingTime
	}
	if req.SeniorityLevel != nil {
		job.SeniorityLevel = *req.SeniorityLevel
	}
	if req.JobDescription != nil {
		job.JobDescription = *req.JobDescription
	}
	if req.TechnicalSkills != nil {
		job.TechnicalSkills = nonNil(*req.TechnicalSkills)
	}
	if req.SoftSkills != nil {
		job.SoftSkills = nonNil(*req.SoftSkills)
	}

	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		return nil, storeError(err, apperr.Conflict("job already exist"))
	}
	return job, nil
}

// DeleteJob removes a job the caller posted along with its applications.
func (s *JobService) DeleteJob(ctx context.Context, actor *models.User, id uint) error {
	job, err := loadOwned[models.Job](ctx, s.DB, id, actor, apperr.ErrJobNotFound)
	if err != nil {
		return err
	}
	if err := s.Cascade.DeleteJob(ctx, job.ID); err != nil {
		return err
	}
	s.Logger.Info("job deleted", "job_id", job.ID)
	return nil
}

// ListJobs returns one page of all jobs with their company attached.
func (s *JobService) ListJobs(ctx context.Context, q dtos.PageQuery) (*Page, error) {
	page, size := q.Page, q.Size
	page = min(max(page, 1), maxPage)
	if size < 1 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	order, ok := sortColumns[q.Sort]
	if !ok {
		order = sortColumns[defaultSort]
	}

	db := s.DB.WithContext(ctx)
	var total int64
	if err := db.Model(&models.Job{}).Count(&total).Error; err != nil {
		return nil, apperr.Internal("failed to count jobs", err)
	}
	var jobs []models.Job
	err := db.Preload("Company").
		Order(order + ", id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal("failed to load jobs", err)
	}
	return &Page{Jobs: jobs, Total: total, Page: page, Size: size}, nil
}

// JobsByCompanyName lists the jobs of the company with that exact name,
// ignoring case.
func (s *JobService) JobsByCompanyName(ctx context.Context, name string) ([]models.Job, error) {
	db := s.DB.WithContext(ctx)
	var company models.Company
	if err := db.Where("company_name = ?", normalizeName(name)).First(&company).Error; err != nil {
		return nil, lookupError(err, apperr.ErrCompanyNotFound)
	}
	var jobs []models.Job
	err := db.Preload("Company").
		Where("company_id = ?", company.ID).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal("failed to load jobs", err)
	}
	return jobs, nil
}

// FilterJobs narrows jobs by the supplied fields. The title matches as a
// case-insensitive substring; a job matches the skill list when it asks
// for any of them.
func (s *JobService) FilterJobs(ctx context.Context, f dtos.JobFilter) ([]models.Job, error) {
	query := s.DB.WithContext(ctx).Preload("Company")
	if f.WorkingTime != "" {
		query = query.Where("working_time = ?", f.WorkingTime)
	}
	if f.JobLocation != "" {
		query = query.Where("job_location = ?", f.JobLocation)
	}
	if f.SeniorityLevel != "" {
		query = query.Where("seniority_level = ?", f.SeniorityLevel)
	}
	if title := strings.TrimSpace(f.JobTitle); title != "" {
		query = query.Where(`LOWER(job_title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(title))+"%")
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, apperr.Internal("failed to load jobs", err)
	}

	// Skills live in a JSON column, so they are matched here rather than in SQL
	wanted := ParseSkillQuery(f.TechnicalSkills)
	if len(wanted) == 0 {
		return jobs, nil
	}
	matched := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if MatchesAnySkill(job.TechnicalSkills, wanted) {
			matched = append(matched, job)
		}
	}
	return matched, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
