package dtos

import "github.com/justsurfingit/job-board/internal/models"

type JobCreationRequest struct {
	JobTitle       string                `json:"jobTitle" binding:"required,notblank"`
	JobLocation    models.JobLocation    `json:"jobLocation" binding:"required,joblocation"`
	WorkingTime    models.WorkingTime    `json:"workingTime" binding:"required,workingtime"`
	SeniorityLevel models.SeniorityLevel `json:"seniorityLevel" binding:"required,seniority"`
	JobDescription string                `json:"jobDescription" binding:"required,notblank,max=2000"`
	CompanyID      uint                  `json:"companyId" binding:"required"`

	// Optional Fields
	TechnicalSkills StringList `json:"technicalSkills"`
	SoftSkills      StringList `json:"softSkills"`
}

// JobUpdateRequest is a merge patch: nil fields keep their stored value.
type JobUpdateRequest struct {
	JobTitle        *string                `json:"jobTitle" binding:"omitempty,notblank"`
	JobLocation     *models.JobLocation    `json:"jobLocation" binding:"omitempty,joblocation"`
	WorkingTime     *models.WorkingTime    `json:"workingTime" binding:"omitempty,workingtime"`
	SeniorityLevel  *models.SeniorityLevel `json:"seniorityLevel" binding:"omitempty,seniority"`
	JobDescription  *string                `json:"jobDescription" binding:"omitempty,notblank,max=2000"`
	TechnicalSkills *StringList            `json:"technicalSkills"`
	SoftSkills      *StringList            `json:"softSkills"`
}

type JobFilter struct {
	WorkingTime    models.WorkingTime    `form:"workingTime" binding:"omitempty,workingtime"`
	JobLocation    models.JobLocation    `form:"jobLocation" binding:"omitempty,joblocation"`
	SeniorityLevel models.SeniorityLevel `form:"seniorityLevel" binding:"omitempty,seniority"`
	JobTitle       string                `form:"jobTitle"`
	// Comma separated; a job matches when it lists any of them
	TechnicalSkills string `form:"technicalSkills"`
}

type PageQuery struct {
	Page int    `form:"page" binding:"omitempty,min=1,max=100000"`
	Size int    `form:"size" binding:"omitempty,min=1,max=100"`
	Sort string `form:"sort" binding:"omitempty,oneof=createdAt -createdAt jobTitle -jobTitle"`
}

type CompanyNameQuery struct {
	CompanyName string `form:"companyName" binding:"required,notblank"`
}
