package services

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestApplicationsForDay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	hr := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	applicant := testutil.CreateUser(t, e.db, models.RoleUser)
	late := testutil.CreateUser(t, e.db, models.RoleUser)
	company := testutil.CreateCompany(t, e.db, hr)
	job := testutil.CreateJob(t, e.db, company)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	onDay := testutil.CreateApplication(t, e.db, job, applicant)
	nextDay := testutil.CreateApplication(t, e.db, job, late)
	require.NoError(t, e.db.Model(onDay).Update("created_at", day.Add(9*time.Hour)).Error)
	require.NoError(t, e.db.Model(nextDay).Update("created_at", day.Add(25*time.Hour)).Error)

	export, err := e.exporter.ApplicationsForDay(ctx, hr, company.ID, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "applications_"+uintString(company.ID)+"_2026-03-02.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"JobID", "Applicant", "Email", "TechSkills", "SoftSkills", "Resume", "AppliedAt"}, rows[0])
	assert.Equal(t, uintString(job.ID), rows[1][0])
	assert.Equal(t, applicant.FirstName+" "+applicant.LastName, rows[1][1])
	assert.Equal(t, applicant.Email, rows[1][2])
	assert.Equal(t, onDay.UserResume.SecureURL, rows[1][5])

	other := testutil.CreateUser(t, e.db, models.RoleCompanyHR)
	_, err = e.exporter.ApplicationsForDay(ctx, other, company.ID, day)
	assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

	_, err = e.exporter.ApplicationsForDay(ctx, hr, company.ID, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, errNoApplications)
}

func uintString(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
