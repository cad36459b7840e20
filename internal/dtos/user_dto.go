package dtos

import "github.com/justsurfingit/job-board/internal/models"

const DateLayout = "2006-01-02"

type SignupRequest struct {
	FirstName     string      `json:"firstName" binding:"required,notblank"`
	LastName      string      `json:"lastName" binding:"required,notblank"`
	Email         string      `json:"email" binding:"required,email"`
	Password      string      `json:"password" binding:"required,strongpassword"`
	MobileNumber  string      `json:"mobileNumber" binding:"required,mobile"`
	DOB           string      `json:"DOB" binding:"required,datetime=2006-01-02"`
	RecoveryEmail string      `json:"recoveryEmail" binding:"omitempty,email"`
	Role          models.Role `json:"role" binding:"omitempty,role"`
}

// LoginRequest identifies the account by email or by mobile number.
type LoginRequest struct {
	Email        string `json:"email" binding:"omitempty,email"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,mobile"`
	Password     string `json:"password" binding:"required"`
}

type UpdateAccountRequest struct {
	FirstName     *string `json:"firstName" binding:"omitempty,notblank"`
	LastName      *string `json:"lastName" binding:"omitempty,notblank"`
	Email         *string `json:"email" binding:"omitempty,email"`
	MobileNumber  *string `json:"mobileNumber" binding:"omitempty,mobile"`
	RecoveryEmail *string `json:"recoveryEmail" binding:"omitempty,email"`
	DOB           *string `json:"DOB" binding:"omitempty,datetime=2006-01-02"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,strongpassword"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,strongpassword"`
}

type RecoveryEmailRequest struct {
	RecoveryEmail string `json:"recoveryEmail" binding:"required,email"`
}
