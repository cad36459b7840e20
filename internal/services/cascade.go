package services

import (
	"context"
	"log/slog"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
	"gorm.io/gorm"
)

// Cascader removes a record together with everything that depends on it.
// The rows go in one transaction; the resume files of removed applications
// are deleted from storage after commit, best effort.
type Cascader struct {
	DB      *gorm.DB
	Storage storage.Gateway
	Logger  *slog.Logger
}

func NewCascader(db *gorm.DB, gw storage.Gateway, logger *slog.Logger) *Cascader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascader{DB: db, Storage: gw, Logger: logger}
}

// DeleteJob removes the job and its applications.
func (c *Cascader) DeleteJob(ctx context.Context, jobID uint) error {
	return c.run(ctx, func(tx *gorm.DB, files *[]string) error {
		return deleteJobs(tx, []uint{jobID}, files)
	})
}

// DeleteCompany removes the company, its jobs and their applications.
func (c *Cascader) DeleteCompany(ctx context.Context, companyID uint) error {
	return c.run(ctx, func(tx *gorm.DB, files *[]string) error {
		var jobIDs []uint
		if err := tx.Model(&models.Job{}).Where("company_id = ?", companyID).Pluck("id", &jobIDs).Error; err != nil {
			return err
		}
		if err := deleteJobs(tx, jobIDs, files); err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, companyID).Error
	})
}

// DeleteUser removes the user, the applications they submitted, the
// companies they manage and every job they posted or that belongs to one
// of those companies, along with the applications to those jobs.
func (c *Cascader) DeleteUser(ctx context.Context, userID uint) error {
	return c.run(ctx, func(tx *gorm.DB, files *[]string) error {
		// 1. Their own applications
		if err := deleteApplications(tx, files, "user_id = ?", userID); err != nil {
			return err
		}

		// 2. Jobs they posted or that hang off their companies
		var companyIDs []uint
		if err := tx.Model(&models.Company{}).Where("company_hr = ?", userID).Pluck("id", &companyIDs).Error; err != nil {
			return err
		}
		jobs := tx.Model(&models.Job{}).Where("added_by = ?", userID)
		if len(companyIDs) > 0 {
			jobs = jobs.Or("company_id IN ?", companyIDs)
		}
		var jobIDs []uint
		if err := jobs.Pluck("id", &jobIDs).Error; err != nil {
			return err
		}
		if err := deleteJobs(tx, jobIDs, files); err != nil {
			return err
		}

		// 3. Their companies, then the account itself
		if len(companyIDs) > 0 {
			if err := tx.Where("id IN ?", companyIDs).Delete(&models.Company{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

func (c *Cascader) run(ctx context.Context, fn func(tx *gorm.DB, files *[]string) error) error {
	var files []string
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &files)
	})
	if err != nil {
		return apperr.Internal("failed to delete records", err)
	}
	c.purge(ctx, files)
	return nil
}

// purge deletes the given resume files, logging failures.
func (c *Cascader) purge(ctx context.Context, publicIDs []string) {
	if c.Storage == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := c.Storage.Delete(ctx, id); err != nil {
			c.Logger.Warn("failed to delete resume of removed application", "public_id", id, "error", err)
		}
	}
}

func deleteJobs(tx *gorm.DB, jobIDs []uint, files *[]string) error {
	if len(jobIDs) == 0 {
		return nil
	}
	if err := deleteApplications(tx, files, "job_id IN ?", jobIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", jobIDs).Delete(&models.Job{}).Error
}

// deleteApplications removes the matching applications and records their
// resume ids.
func deleteApplications(tx *gorm.DB, files *[]string, query string, args ...any) error {
	var ids []string
	if err := tx.Model(&models.Application{}).Where(query, args...).Pluck("resume_public_id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	*files = append(*files, ids...)
	return tx.Where(query, args...).Delete(&models.Application{}).Error
}
