package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
	ExportService  *services.ExportService
}

func NewCompanyHandler(companies *services.CompanyService, exports *services.ExportService) *CompanyHandler {
	return &CompanyHandler{CompanyService: companies, ExportService: exports}
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dtos.CompanyCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	company, err := h.CompanyService.Create(c.Request.Context(), actor(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, companyMessages.CreateSuccessfully, company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, err := idParam(c, "companyId")
	if err != nil {
		fail(c, err)
		return
	}
	var req dtos.CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	company, err := h.CompanyService.Update(c.Request.Context(), actor(c), id, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, companyMessages.UpdateSuccessfully, company)
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, err := idParam(c, "companyId")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.CompanyService.Delete(c.Request.Context(), actor(c), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, companyMessages.DeleteSuccessfully, nil)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := idParam(c, "companyId")
	if err != nil {
		fail(c, err)
		return
	}
	company, err := h.CompanyService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, companyMessages.FetchedSuccessfully, company)
}

func (h *CompanyHandler) SearchCompany(c *gin.Context) {
	var q dtos.CompanyNameQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	company, err := h.CompanyService.SearchByName(c.Request.Context(), q.CompanyName)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, companyMessages.FetchedSuccessfully, company)
}

func (h *CompanyHandler) ApplicationsForJob(c *gin.Context) {
	jobID, err := idParam(c, "jobId")
	if err != nil {
		fail(c, err)
		return
	}
	apps, err := h.CompanyService.ApplicationsForJob(c.Request.Context(), actor(c), jobID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, applicationMessages.FetchedSuccessfully, apps)
}

// ExportApplications streams the day's applications as an xlsx attachment.
// The day defaults to today (UTC).
func (h *CompanyHandler) ExportApplications(c *gin.Context) {
	id, err := idParam(c, "companyId")
	if err != nil {
		fail(c, err)
		return
	}
	var q dtos.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, bindError(err))
		return
	}
	day := time.Now().UTC()
	if q.Date != "" {
		if day, err = time.Parse(dtos.DateLayout, q.Date); err != nil {
			fail(c, apperr.Validation("date must be formatted YYYY-MM-DD"))
			return
		}
	}

	export, err := h.ExportService.ApplicationsForDay(c.Request.Context(), actor(c), id, day)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.Filename)
	c.Data(http.StatusOK, services.XLSXContentType, export.Content)
}
