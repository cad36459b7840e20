package database_test

import (
	"testing"

	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := testutil.NewDB(t)

	for _, model := range []any{&models.User{}, &models.Company{}, &models.Job{}, &models.Application{}} {
		assert.True(t, db.Migrator().HasTable(model), "%T table missing", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Application{}, "idx_application_job_user"))
}

func TestDuplicateKeysAreTranslated(t *testing.T) {
	db := testutil.NewDB(t)
	hr := testutil.CreateUser(t, db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, db, models.RoleUser)
	job := testutil.CreateJob(t, db, testutil.CreateCompany(t, db, hr))
	testutil.CreateApplication(t, db, job, applicant)

	dup := &models.Application{
		JobID:      job.ID,
		UserID:     applicant.ID,
		UserResume: models.Resume{SecureURL: "u", PublicID: "p"},
	}
	err := db.Create(dup).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSkillListsRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	hr := testutil.CreateUser(t, db, models.RoleCompanyHR)
	job := testutil.CreateJob(t, db, testutil.CreateCompany(t, db, hr))

	var loaded models.Job
	require.NoError(t, db.First(&loaded, job.ID).Error)
	assert.Equal(t, []string{"go", "postgres"}, []string(loaded.TechnicalSkills))
	assert.Equal(t, []string{"teamwork"}, []string(loaded.SoftSkills))
}
