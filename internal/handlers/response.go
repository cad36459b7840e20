package handlers

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/models"
)

// entityMessages are the success and failure texts used for one resource.
type entityMessages struct {
	NotFound            string
	CreateSuccessfully  string
	UpdateSuccessfully  string
	DeleteSuccessfully  string
	FetchedSuccessfully string
}

func generateMessage(entity string) entityMessages {
	return entityMessages{
		NotFound:            entity + " not found",
		CreateSuccessfully:  "create " + entity + " Successfully",
		UpdateSuccessfully:  "update " + entity + " Successfully",
		DeleteSuccessfully:  "delete " + entity + " Successfully",
		FetchedSuccessfully: entity + " fetched Successfully",
	}
}

var (
	userMessages        = generateMessage("user")
	companyMessages     = generateMessage("company")
	jobMessages         = generateMessage("job")
	applicationMessages = generateMessage("application")
)

func ok(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
		if v := reflect.ValueOf(data); v.Kind() == reflect.Slice {
			body["results"] = v.Len()
		}
	}
	c.JSON(status, body)
}

func created(c *gin.Context, message string, data any) {
	ok(c, http.StatusCreated, message, data)
}

// fail hands err to middleware.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return uint(id), nil
}

// actor is the authenticated user; routes using it sit behind Authenticate.
func actor(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}
