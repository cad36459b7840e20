package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

// Dependency injection
type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// creating the job
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), actor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, jobMessages.CreateSuccessfully, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := idParam(c, "jobId")
	if err != nil {
		fail(c, err)
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), actor(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, jobMessages.UpdateSuccessfully, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := idParam(c, "jobId")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.JobService.DeleteJob(c.Request.Context(), actor(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, jobMessages.DeleteSuccessfully, nil)
}

// ListJobs is GET /jobs?page=&size=&sort=
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	page, err := h.JobService.ListJobs(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": jobMessages.FetchedSuccessfully,
		"success": true,
		"data":    page.Jobs,
		"results": len(page.Jobs),
		"total":   page.Total,
		"page":    page.Page,
		"size":    page.Size,
	})
}

func (h *JobHandler) JobsByCompany(c *gin.Context) {
	var q dtos.CompanyNameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	jobs, err := h.JobService.JobsByCompanyName(c.Request.Context(), q.CompanyName)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, jobMessages.FetchedSuccessfully, jobs)
}

func (h *JobHandler) FilterJobs(c *gin.Context) {
	var f dtos.JobFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		fail(c, bindError(err))
		return
	}
	jobs, err := h.JobService.FilterJobs(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, jobMessages.FetchedSuccessfully, jobs)
}
