package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

const (
	resumeField       = "userResume"
	// older clients send the file under this name
	legacyResumeField = "pdf"
	maxResumeSize     = 5 << 20
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: apps}
}

// Apply is POST /jobs/:jobId/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, err := idParam(c, "jobId")
	if err != nil {
		fail(c, err)
		return
	}
	h.submit(c, func(map[string][]string) (uint, error) { return jobID, nil })
}

// AddApplication is POST /applications with the job id in the form
func (h *ApplicationHandler) AddApplication(c *gin.Context) {
	h.submit(c, func(values map[string][]string) (uint, error) {
		raw := strings.TrimSpace(first(values["jobId"]))
		if raw == "" {
			return 0, apperr.Validation("jobId is required")
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return 0, apperr.Validation("jobId must be a positive integer")
		}
		return uint(id), nil
	})
}

func (h *ApplicationHandler) submit(c *gin.Context, jobID func(map[string][]string) (uint, error)) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, apperr.Validation("request must be multipart/form-data").Wrap(err))
		return
	}
	// Spilled temp files go once the request is done
	defer form.RemoveAll()

	id, err := jobID(form.Value)
	if err != nil {
		fail(c, err)
		return
	}
	tech, err := dtos.ParseStringList(form.Value["userTechSkills"])
	if err != nil {
		fail(c, apperr.Validation("userTechSkills "+err.Error()))
		return
	}
	soft, err := dtos.ParseStringList(form.Value["userSoftSkills"])
	if err != nil {
		fail(c, apperr.Validation("userSoftSkills "+err.Error()))
		return
	}

	req := services.SubmitRequest{JobID: id, TechSkills: tech, SoftSkills: soft}
	files := form.File[resumeField]
	if len(files) == 0 {
		files = form.File[legacyResumeField]
	}
	if len(files) > 0 {
		header := files[0]
		if header.Size > maxResumeSize {
			fail(c, apperr.Validation(fmt.Sprintf("resume must be at most %d MB", maxResumeSize>>20)))
			return
		}
		file, err := header.Open()
		if err != nil {
			fail(c, apperr.Internal("failed to read resume", err))
			return
		}
		defer file.Close()
		req.Resume = &services.ResumeUpload{Filename: header.Filename, Content: file}
	}

	app, err := h.ApplicationService.Submit(c.Request.Context(), actor(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, applicationMessages.CreateSuccessfully, app)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
