package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/testutil"
	"gorm.io/gorm"
)

const testFolder = "job-board/resumes"

// pdf is enough of a PDF for content sniffing
var pdf = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

type env struct {
	db       *gorm.DB
	storage  *testutil.Storage
	mailer   *testutil.Mailer
	cascade  *Cascader
	users    *UserService
	company  *CompanyService
	jobs     *JobService
	apps     *ApplicationService
	exporter *ExportService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	store := testutil.NewStorage()
	mail := &testutil.Mailer{}
	logger := testutil.Logger()

	cascade := NewCascader(db, store, logger)
	email := NewEmailService(mail, logger)
	email.Backoff = time.Millisecond

	return &env{
		db:       db,
		storage:  store,
		mailer:   mail,
		cascade:  cascade,
		users:    NewUserService(db, auth.NewTokenIssuer("test-secret", time.Hour), email, cascade, 10*time.Minute, logger),
		company:  NewCompanyService(db, cascade, logger),
		jobs:     NewJobService(db, cascade, logger),
		apps:     NewApplicationService(db, store, testFolder, logger),
		exporter: NewExportService(db),
	}
}

func pdfResume() *ResumeUpload {
	return &ResumeUpload{Filename: "cv.pdf", Content: bytes.NewReader(pdf)}
}

func ptr[T any](v T) *T { return &v }
