package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
	"gorm.io/gorm"
)

// Resume formats an application may carry
var resumeTypes = []string{"application/pdf", "application/msword"}

// ResumeUpload is the file an applicant attached. Content is read once to
// detect its type and again to upload it.
type ResumeUpload struct {
	Filename string
	Content  io.ReadSeeker
}

type SubmitRequest struct {
	JobID      uint
	TechSkills []string
	SoftSkills []string
	Resume     *ResumeUpload
}

type ApplicationService struct {
	DB      *gorm.DB
	Storage storage.Gateway
	Folder  string
	Logger  *slog.Logger
}

func NewApplicationService(db *gorm.DB, gw storage.Gateway, folder string, logger *slog.Logger) *ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{DB: db, Storage: gw, Folder: folder, Logger: logger}
}

// Submit records applicant's application to a job. The resume is uploaded
// only once every precondition holds, and is deleted again if the
// application cannot be stored, so a stored file always has an
// application pointing at it.
func (s *ApplicationService) Submit(ctx context.Context, applicant *models.User, req SubmitRequest) (*models.Application, error) {
	db := s.DB.WithContext(ctx)

	// 1. The job must exist
	var job models.Job
	if err := db.Select("id").First(&job, req.JobID).Error; err != nil {
		return nil, lookupError(err, apperr.ErrJobNotFound)
	}

	// 2. One application per user and job
	var existing int64
	if err := db.Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", job.ID, applicant.ID).
		Count(&existing).Error; err != nil {
		return nil, apperr.Internal("failed to check applications", err)
	}
	if existing > 0 {
		return nil, apperr.ErrDuplicateApplication
	}

	// 3. A readable resume in an accepted format
	if req.Resume == nil || req.Resume.Content == nil {
		return nil, apperr.ErrResumeRequired
	}
	if err := checkResumeType(req.Resume.Content); err != nil {
		return nil, err
	}

	// 4. Upload; from here on every exit path without Commit deletes the file
	lease, err := storage.Acquire(ctx, s.Storage, req.Resume.Content, req.Resume.Filename, s.Folder, s.Logger)
	if err != nil {
		return nil, apperr.Internal("failed to upload resume", err)
	}
	defer lease.Release(ctx)

	// 5. Persist
	file := lease.File()
	app := &models.Application{
		JobID:          job.ID,
		UserID:         applicant.ID,
		UserTechSkills: nonNil(req.TechSkills),
		UserSoftSkills: nonNil(req.SoftSkills),
		UserResume:     models.Resume{SecureURL: file.SecureURL, PublicID: file.PublicID},
	}
	res := db.Create(app)
	if res.Error != nil {
		return nil, storeError(res.Error, apperr.ErrDuplicateApplication)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Internal("fail to create application", nil)
	}

	lease.Commit()
	s.Logger.Info("application submitted",
		"application_id", app.ID,
		"job_id", job.ID,
		"user_id", applicant.ID,
	)
	return app, nil
}

// checkResumeType sniffs the content and rewinds it for the upload.
func checkResumeType(r io.ReadSeeker) error {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return apperr.Internal("failed to read resume", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return apperr.Internal("failed to read resume", err)
	}
	for _, allowed := range resumeTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return apperr.ErrInvalidFileFormat
}
