package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))

	app, err := e.apps.Submit(context.Background(), applicant, SubmitRequest{
		JobID:      job.ID,
		TechSkills: []string{"node"},
		SoftSkills: []string{"communication"},
		Resume:     pdfResume(),
	})
	require.NoError(t, err)

	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, applicant.ID, app.UserID)
	assert.Equal(t, []string{"node"}, []string(app.UserTechSkills))
	assert.NotEmpty(t, app.UserResume.SecureURL)
	require.Len(t, e.storage.Uploads, 1)
	assert.Equal(t, e.storage.Uploads[0], app.UserResume.PublicID)
	assert.True(t, strings.HasPrefix(app.UserResume.PublicID, testFolder+"/"))
	assert.Equal(t, pdf, e.storage.Files[app.UserResume.PublicID])
	assert.Empty(t, e.storage.Deletes)

	var stored models.Application
	require.NoError(t, e.db.First(&stored, app.ID).Error)
	assert.Equal(t, app.UserResume, stored.UserResume)
	assert.Equal(t, []string{"communication"}, []string(stored.UserSoftSkills))
}

func TestSubmitRejectsBeforeUploading(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))

	applied := testutil.CreateUser(t, e.db, models.RoleUser)
	testutil.CreateApplication(t, e.db, job, applied)

	tests := []struct {
		name      string
		applicant *models.User
		req       SubmitRequest
		want      error
	}{
		{
			name:      "missing job",
			applicant: applicant,
			req:       SubmitRequest{JobID: job.ID + 100, Resume: pdfResume()},
			want:      apperr.ErrJobNotFound,
		},
		{
			name:      "duplicate application",
			applicant: applied,
			req:       SubmitRequest{JobID: job.ID, Resume: pdfResume()},
			want:      apperr.ErrDuplicateApplication,
		},
		{
			name:      "no resume",
			applicant: applicant,
			req:       SubmitRequest{JobID: job.ID},
			want:      apperr.ErrResumeRequired,
		},
		{
			name:      "plain text resume",
			applicant: applicant,
			req: SubmitRequest{JobID: job.ID, Resume: &ResumeUpload{
				Filename: "cv.pdf",
				Content:  bytes.NewReader([]byte("just some text, not a document")),
			}},
			want: apperr.ErrInvalidFileFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.apps.Submit(context.Background(), tt.applicant, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, e.storage.Uploads)
		})
	}

	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitRollsBackUploadWhenStoreFails(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))
	testutil.FailCreates(t, e.db, "applications", errors.New("connection reset"))

	_, err := e.apps.Submit(context.Background(), applicant, SubmitRequest{
		JobID:  job.ID,
		Resume: pdfResume(),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	require.Len(t, e.storage.Uploads, 1)
	assert.Equal(t, e.storage.Uploads, e.storage.Deletes)
	assert.Zero(t, e.storage.Stored())

	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitSurfacesStoreErrorWhenRollbackFails(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))
	storeErr := errors.New("connection reset")
	testutil.FailCreates(t, e.db, "applications", storeErr)
	e.storage.DeleteErr = errors.New("storage unavailable")

	_, err := e.apps.Submit(context.Background(), applicant, SubmitRequest{
		JobID:  job.ID,
		Resume: pdfResume(),
	})
	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, e.storage.Deletes, 1)
}

func TestSubmitUploadFailure(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))
	e.storage.UploadErr = errors.New("quota exceeded")

	_, err := e.apps.Submit(context.Background(), applicant, SubmitRequest{
		JobID:  job.ID,
		Resume: pdfResume(),
	})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Empty(t, e.storage.Deletes)

	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRollsBackOnZeroRows(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))
	testutil.ZeroRowCreates(t, e.db, "applications")

	_, err := e.apps.Submit(context.Background(), applicant, SubmitRequest{
		JobID:  job.ID,
		Resume: pdfResume(),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	require.Len(t, e.storage.Uploads, 1)
	assert.Equal(t, e.storage.Uploads, e.storage.Deletes)
	assert.Zero(t, e.storage.Stored())

	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRollsBackOnPanic(t *testing.T) {
	e := newEnv(t)
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	job := testutil.CreateJob(t, e.db, testutil.CreateCompany(t, e.db, hr))
	testutil.PanicOnCreates(t, e.db, "applications", "driver crashed")

	assert.PanicsWithValue(t, "driver crashed", func() {
		_, _ = e.apps.Submit(context.Background(), applicant, SubmitRequest{
			JobID:  job.ID,
			Resume: pdfResume(),
		})
	})

	require.Len(t, e.storage.Uploads, 1)
	assert.Equal(t, e.storage.Uploads, e.storage.Deletes)
	assert.Zero(t, e.storage.Stored())

	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}
