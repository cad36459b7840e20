// Package testutil holds fixtures shared by package tests: a throwaway
// SQLite store, an in-memory storage gateway and a recording mailer.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/mailer"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := database.Config()
	cfg.Logger = logger.Discard

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), cfg)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FailCreates makes every INSERT into table fail with err.
func FailCreates(t *testing.T, db *gorm.DB, table string, err error) {
	t.Helper()
	name := "testutil:fail_create_" + table
	cb := db.Callback().Create().Before("gorm:create")
	if regErr := cb.Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(err)
		}
	}); regErr != nil {
		t.Fatalf("register callback: %v", regErr)
	}
}

// ZeroRowCreates turns every INSERT into table into a no-op that reports
// zero rows affected and no error. Other tables insert as usual.
func ZeroRowCreates(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	create := db.Callback().Create()
	insert := create.Get("gorm:create")
	if insert == nil {
		t.Fatal("gorm:create callback not registered")
	}
	if err := create.Replace("gorm:create", func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.RowsAffected = 0
			return
		}
		insert(tx)
	}); err != nil {
		t.Fatalf("replace create callback: %v", err)
	}
}

// PanicOnCreates makes every INSERT into table panic with v before any SQL
// runs.
func PanicOnCreates(t *testing.T, db *gorm.DB, table string, v any) {
	t.Helper()
	name := "testutil:panic_create_" + table
	cb := db.Callback().Create().Before("gorm:begin_transaction")
	if err := cb.Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			panic(v)
		}
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

// Storage is an in-memory storage.Gateway that records every call.
type Storage struct {
	mu        sync.Mutex
	seq       int
	Files     map[string][]byte
	Uploads   []string
	Deletes   []string
	UploadErr error
	DeleteErr error
}

func NewStorage() *Storage {
	return &Storage{Files: map[string][]byte{}}
}

func (s *Storage) Upload(_ context.Context, r io.Reader, filename, folder string) (storage.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		return storage.File{}, s.UploadErr
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return storage.File{}, err
	}
	s.seq++
	id := fmt.Sprintf("%s/%d-%s", folder, s.seq, filename)
	s.Files[id] = content
	s.Uploads = append(s.Uploads, id)
	return storage.File{SecureURL: "https://files.test/" + id, PublicID: id}, nil
}

func (s *Storage) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes = append(s.Deletes, publicID)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Files, publicID)
	return nil
}

// Stored is the number of files currently held.
func (s *Storage) Stored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}

// Mailer records messages instead of sending them.
type Mailer struct {
	mu   sync.Mutex
	Sent []mailer.Message
	Err  error
}

func (m *Mailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailer) Last() (mailer.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

var fixtureSeq struct {
	sync.Mutex
	n int
}

func nextSeq() int {
	fixtureSeq.Lock()
	defer fixtureSeq.Unlock()
	fixtureSeq.n++
	return fixtureSeq.n
}

// CreateUser inserts a user with the given role. Its password hash is
// not a real hash; use the user service when a login is needed.
func CreateUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	n := nextSeq()
	user := &models.User{
		FirstName:    "user",
		LastName:     fmt.Sprint(n),
		Username:     fmt.Sprintf("user_%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		Password:     "unused",
		DOB:          time.Date(1995, 5, 17, 0, 0, 0, 0, time.UTC),
		MobileNumber: fmt.Sprintf("0101%07d", n),
		Role:         role,
		Status:       models.StatusOffline,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateCompany(t *testing.T, db *gorm.DB, hr *models.User) *models.Company {
	t.Helper()
	n := nextSeq()
	company := &models.Company{
		CompanyName:       fmt.Sprintf("company %d", n),
		Description:       "builds things",
		Industry:          "software",
		Address:           "cairo",
		NumberOfEmployees: "11-20",
		CompanyEmail:      fmt.Sprintf("hr%d@company.test", n),
		CompanyHR:         hr.ID,
		CreatedBy:         hr.ID,
	}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func CreateJob(t *testing.T, db *gorm.DB, company *models.Company) *models.Job {
	t.Helper()
	job := &models.Job{
		JobTitle:        "backend engineer",
		JobLocation:     models.LocationRemotely,
		WorkingTime:     models.FullTime,
		SeniorityLevel:  models.SeniorityJunior,
		JobDescription:  "write go",
		TechnicalSkills: []string{"go", "postgres"},
		SoftSkills:      []string{"teamwork"},
		AddedBy:         company.CompanyHR,
		CompanyID:       company.ID,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func CreateApplication(t *testing.T, db *gorm.DB, job *models.Job, user *models.User) *models.Application {
	t.Helper()
	app := &models.Application{
		JobID:          job.ID,
		UserID:         user.ID,
		UserTechSkills: []string{"go"},
		UserSoftSkills: []string{"teamwork"},
		UserResume: models.Resume{
			SecureURL: fmt.Sprintf("https://files.test/resume-%d-%d.pdf", job.ID, user.ID),
			PublicID:  fmt.Sprintf("resume-%d-%d", job.ID, user.ID),
		},
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
	return app
}
