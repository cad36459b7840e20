package dtos

import "github.com/justsurfingit/job-board/internal/models"

type CompanyCreationRequest struct {
	CompanyName       string               `json:"companyName" binding:"required,notblank"`
	Description       string               `json:"description" binding:"required,notblank,max=2000"`
	Industry          string               `json:"industry" binding:"required,notblank"`
	Address           string               `json:"address" binding:"required,notblank"`
	NumberOfEmployees models.EmployeeRange `json:"numberOfEmployees" binding:"required,employees"`
	CompanyEmail      string               `json:"companyEmail" binding:"required,email"`
	// Defaults to the creating user
	CompanyHR *uint `json:"companyHR" binding:"omitempty,min=1"`
}

type CompanyUpdateRequest struct {
	CompanyName       *string               `json:"companyName" binding:"omitempty,notblank"`
	Description       *string               `json:"description" binding:"omitempty,notblank,max=2000"`
	Industry          *string               `json:"industry" binding:"omitempty,notblank"`
	Address           *string               `json:"address" binding:"omitempty,notblank"`
	NumberOfEmployees *models.EmployeeRange `json:"numberOfEmployees" binding:"omitempty,employees"`
	CompanyEmail      *string               `json:"companyEmail" binding:"omitempty,email"`
}

type ExportQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
