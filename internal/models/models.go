package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName     string    `gorm:"not null" json:"firstName"`
	LastName      string    `gorm:"not null" json:"lastName"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	RecoveryEmail string    `gorm:"index" json:"recoveryEmail,omitempty"`
	DOB           time.Time `json:"DOB"`
	MobileNumber  string    `gorm:"uniqueIndex;not null" json:"mobileNumber"`
	Role          Role      `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	Status        Status    `gorm:"type:varchar(10);not null;default:'offline'" json:"status"`

	// Password reset state. Both are cleared once the code is used.
	OTP          string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
}

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Stored lower-cased so uniqueness is case-insensitive
	CompanyName       string        `gorm:"uniqueIndex;not null" json:"companyName"`
	Description       string        `gorm:"type:text;not null" json:"description"`
	Industry          string        `gorm:"not null" json:"industry"`
	Address           string        `gorm:"not null" json:"address"`
	NumberOfEmployees EmployeeRange `gorm:"type:varchar(10);not null" json:"numberOfEmployees"`
	CompanyEmail      string        `gorm:"uniqueIndex;not null" json:"companyEmail"`
	CompanyHR         uint          `gorm:"index;not null" json:"companyHR"`
	CreatedBy         uint          `gorm:"not null" json:"createdBy"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

// OwnerID is the HR user allowed to change or remove the company.
func (c *Company) OwnerID() uint { return c.CompanyHR }

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	JobTitle        string                      `gorm:"not null" json:"jobTitle"`
	JobLocation     JobLocation                 `gorm:"type:varchar(20);not null" json:"jobLocation"`
	WorkingTime     WorkingTime                 `gorm:"type:varchar(20);not null" json:"workingTime"`
	SeniorityLevel  SeniorityLevel              `gorm:"type:varchar(20);not null" json:"seniorityLevel"`
	JobDescription  string                      `gorm:"type:text;not null" json:"jobDescription"`
	TechnicalSkills datatypes.JSONSlice[string] `json:"technicalSkills"`
	SoftSkills      datatypes.JSONSlice[string] `json:"softSkills"`
	AddedBy         uint                        `gorm:"index;not null" json:"addedBy"`

	// Foreign Key
	CompanyID uint `gorm:"index;not null" json:"companyId"`
	// Association: GORM needs Preload() to fill this
	Company *Company `json:"company,omitempty"`
}

// OwnerID is the HR user that posted the job.
func (j *Job) OwnerID() uint { return j.AddedBy }

// Resume points at the uploaded file backing an application.
type Resume struct {
	SecureURL string `gorm:"not null" json:"secure_url"`
	PublicID  string `gorm:"not null" json:"public_id"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	JobID          uint                        `gorm:"not null;uniqueIndex:idx_application_job_user" json:"jobId"`
	UserID         uint                        `gorm:"not null;uniqueIndex:idx_application_job_user;index" json:"userId"`
	UserTechSkills datatypes.JSONSlice[string] `json:"userTechSkills"`
	UserSoftSkills datatypes.JSONSlice[string] `json:"userSoftSkills"`
	UserResume     Resume                      `gorm:"embedded;embeddedPrefix:resume_" json:"userResume"`

	Job  *Job  `json:"job,omitempty"`
	User *User `json:"user,omitempty"`
}
