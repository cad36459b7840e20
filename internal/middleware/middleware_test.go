package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userMap map[uint]*models.User

func (m userMap) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrUserNotFound
}

func newRouter(tokens TokenVerifier, users UserLookup, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(nil))
	chain := []gin.HandlerFunc{Authenticate(tokens, users)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user.ID})
	})
	r.GET("/me", chain...)
	return r
}

type envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    uint   `json:"data"`
}

func do(t *testing.T, r http.Handler, header, value string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	users := userMap{7: {ID: 7, Role: models.RoleUser}}
	r := newRouter(issuer, users)

	valid, err := issuer.Issue(7, "u@example.com")
	require.NoError(t, err)
	orphan, err := issuer.Issue(99, "gone@example.com")
	require.NoError(t, err)
	foreign, err := auth.NewTokenIssuer("other", time.Hour).Issue(7, "u@example.com")
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		value       string
		wantStatus  int
		wantMessage string
	}{
		{"missing token", "", "", http.StatusUnauthorized, apperr.ErrTokenMissing.Message},
		{"garbage token", "Authorization", "Bearer nope", http.StatusUnauthorized, apperr.ErrTokenInvalid.Message},
		{"foreign signature", "token", foreign, http.StatusUnauthorized, apperr.ErrTokenInvalid.Message},
		{"deleted user", "Authorization", "Bearer " + orphan, http.StatusNotFound, apperr.ErrUserNotFound.Message},
		{"bearer header", "Authorization", "Bearer " + valid, http.StatusOK, ""},
		{"token header", "token", valid, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, r, tt.header, tt.value)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, body.Success)
				assert.Equal(t, uint(7), body.Data)
				return
			}
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	users := userMap{
		1: {ID: 1, Role: models.RoleUser},
		2: {ID: 2, Role: models.RoleCompanyHR},
	}
	r := newRouter(issuer, users, models.RoleCompanyHR)

	applicant, err := issuer.Issue(1, "a@example.com")
	require.NoError(t, err)
	hr, err := issuer.Issue(2, "hr@example.com")
	require.NoError(t, err)

	status, body := do(t, r, "token", applicant)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "user not authorized", body.Message)

	status, _ = do(t, r, "token", hr)
	assert.Equal(t, http.StatusOK, status)
}

func TestErrorHandlerHidesInternalCauses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	r := gin.New()
	r.Use(ErrorHandler(slog.New(slog.NewTextHandler(&logs, nil))))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperr.Conflict("email already exists"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.JSONEq(t, `{"message":"`+internalMessage+`","success":false}`, w.Body.String())
	assert.Contains(t, logs.String(), "pq: password authentication failed")
	logs.Reset()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"email already exists","success":false}`, w.Body.String())
	assert.Empty(t, logs.String())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(nil))
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
