package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: users}
}

// Signup is POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	user, err := h.UserService.Signup(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, userMessages.CreateSuccessfully, user)
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	token, user, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successfully",
		"success": true,
		"token":   token,
		"data":    user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "logout successfully", nil)
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}
	var req dtos.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	user, err := h.UserService.UpdateAccount(c.Request.Context(), actor(c), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userMessages.UpdateSuccessfully, user)
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.UserService.DeleteAccount(c.Request.Context(), actor(c), userID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userMessages.DeleteSuccessfully, nil)
}

func (h *AuthHandler) GetAccount(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}
	user, err := h.UserService.GetAccount(c.Request.Context(), actor(c), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", user)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := idParam(c, "userId")
	if err != nil {
		fail(c, err)
		return
	}
	user, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "", user)
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dtos.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	if err := h.UserService.UpdatePassword(c.Request.Context(), actor(c), &req); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userMessages.UpdateSuccessfully, nil)
}

func (h *AuthHandler) ForgetPassword(c *gin.Context) {
	var req dtos.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	if err := h.UserService.SendResetOTP(c.Request.Context(), &req); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "OTP sent to your email address", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dtos.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), &req); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userMessages.UpdateSuccessfully, nil)
}

func (h *AuthHandler) AccountsByRecoveryEmail(c *gin.Context) {
	var req dtos.RecoveryEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	users, err := h.UserService.AccountsByRecoveryEmail(c.Request.Context(), req.RecoveryEmail)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Accounts associated with the recovery email found successfully", users)
}
