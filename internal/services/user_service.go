package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm"
)

var (
	errUserExists    = apperr.Conflict("user already exist")
	errContactTaken  = apperr.Conflict("email or mobile number already exists")
	errWrongPassword = apperr.Validation("current password is incorrect")
	errLoginIdentity = apperr.Validation("email or mobileNumber is required")
	errInvalidDOB    = apperr.Validation("DOB must be a date formatted YYYY-MM-DD")
)

type UserService struct {
	DB      *gorm.DB
	Tokens  *auth.TokenIssuer
	Email   *EmailService
	Cascade *Cascader
	OTPTTL  time.Duration
	Logger  *slog.Logger
	Clock   func() time.Time
}

func NewUserService(db *gorm.DB, tokens *auth.TokenIssuer, email *EmailService, cascade *Cascader, otpTTL time.Duration, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		DB:      db,
		Tokens:  tokens,
		Email:   email,
		Cascade: cascade,
		OTPTTL:  otpTTL,
		Logger:  logger,
		Clock:   time.Now,
	}
}

func (s *UserService) Signup(ctx context.Context, req *dtos.SignupRequest) (*models.User, error) {
	db := s.DB.WithContext(ctx)
	email := normalizeEmail(req.Email)

	// 1. Email and mobile number are both unique
	var existing int64
	if err := db.Model(&models.User{}).
		Where("email = ? OR mobile_number = ?", email, req.MobileNumber).
		Count(&existing).Error; err != nil {
		return nil, apperr.Internal("failed to check user", err)
	}
	if existing > 0 {
		return nil, errUserExists
	}

	dob, err := time.Parse(dtos.DateLayout, req.DOB)
	if err != nil {
		return nil, errInvalidDOB.Wrap(err)
	}
	username, err := s.freeUsername(ctx, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	// 2. Persist
	user := &models.User{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Username:      username,
		Email:         email,
		Password:      hash,
		RecoveryEmail: normalizeEmail(req.RecoveryEmail),
		DOB:           dob,
		MobileNumber:  req.MobileNumber,
		Role:          role,
		Status:        models.StatusOffline,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, storeError(err, errUserExists)
	}
	s.Logger.Info("user signed up", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// freeUsername derives first_last, adding a short random suffix when the
// plain form is taken.
func (s *UserService) freeUsername(ctx context.Context, first, last string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(first)) + "_" + strings.ToLower(strings.TrimSpace(last))
	var taken int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", base).Count(&taken).Error; err != nil {
		return "", apperr.Internal("failed to check username", err)
	}
	if taken == 0 {
		return base, nil
	}
	return base + "_" + uuid.NewString()[:8], nil
}

// Login checks the credentials, marks the user online and returns a token.
func (s *UserService) Login(ctx context.Context, req *dtos.LoginRequest) (string, *models.User, error) {
	db := s.DB.WithContext(ctx)

	query := db.Model(&models.User{})
	switch {
	case req.Email != "":
		query = query.Where("email = ?", normalizeEmail(req.Email))
	case req.MobileNumber != "":
		query = query.Where("mobile_number = ?", req.MobileNumber)
	default:
		return "", nil, errLoginIdentity
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		return "", nil, lookupError(err, apperr.ErrInvalidCredentials)
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, apperr.Internal("failed to issue token", err)
	}
	if err := db.Model(&user).Update("status", models.StatusOnline).Error; err != nil {
		return "", nil, apperr.Internal("failed to update status", err)
	}
	return token, &user, nil
}

func (s *UserService) Logout(ctx context.Context, actor *models.User) error {
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", actor.ID).
		Update("status", models.StatusOffline).Error
	if err != nil {
		return apperr.Internal("failed to update status", err)
	}
	return nil
}

// FindByID loads a user, reporting apperr.ErrUserNotFound when absent.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupError(err, apperr.ErrUserNotFound)
	}
	return &user, nil
}

// self loads userID and requires it to be the actor.
func (s *UserService) self(ctx context.Context, actor *models.User, userID uint) (*models.User, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.ID != user.ID {
		return nil, apperr.ErrNotAuthorized
	}
	return user, nil
}

// GetAccount returns the caller's own account.
func (s *UserService) GetAccount(ctx context.Context, actor *models.User, userID uint) (*models.User, error) {
	return s.self(ctx, actor, userID)
}

// GetProfile returns any user's public profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.FindByID(ctx, userID)
}

func (s *UserService) UpdateAccount(ctx context.Context, actor *models.User, userID uint, req *dtos.UpdateAccountRequest) (*models.User, error) {
	user, err := s.self(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	// 1. New contact details must not belong to someone else
	if req.Email != nil || req.MobileNumber != nil {
		query := db.Model(&models.User{}).Where("id <> ?", user.ID)
		switch {
		case req.Email != nil && req.MobileNumber != nil:
			query = query.Where("(email = ? OR mobile_number = ?)", normalizeEmail(*req.Email), *req.MobileNumber)
		case req.Email != nil:
			query = query.Where("email = ?", normalizeEmail(*req.Email))
		default:
			query = query.Where("mobile_number = ?", *req.MobileNumber)
		}
		var clashes int64
		if err := query.Count(&clashes).Error; err != nil {
			return nil, apperr.Internal("failed to check user", err)
		}
		if clashes > 0 {
			return nil, errContactTaken
		}
	}

	// 2. Merge the supplied fields
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.MobileNumber != nil {
		user.MobileNumber = *req.MobileNumber
	}
	if req.RecoveryEmail != nil {
		user.RecoveryEmail = normalizeEmail(*req.RecoveryEmail)
	}
	if req.DOB != nil {
		dob, err := time.Parse(dtos.DateLayout, *req.DOB)
		if err != nil {
			return nil, errInvalidDOB.Wrap(err)
		}
		user.DOB = dob
	}

	if err := db.Save(user).Error; err != nil {
		return nil, storeError(err, errContactTaken)
	}
	return user, nil
}

// DeleteAccount removes the caller's account and everything hanging off it.
func (s *UserService) DeleteAccount(ctx context.Context, actor *models.User, userID uint) error {
	user, err := s.self(ctx, actor, userID)
	if err != nil {
		return err
	}
	if err := s.Cascade.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	s.Logger.Info("user deleted", "user_id", user.ID)
	return nil
}

func (s *UserService) UpdatePassword(ctx context.Context, actor *models.User, req *dtos.UpdatePasswordRequest) error {
	user, err := s.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return errWrongPassword
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("failed to update password", err)
	}
	if err := s.DB.WithContext(ctx).Model(user).Update("password", hash).Error; err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

// SendResetOTP stores a hashed one-time code on the account and mails the
// plain code to its email address.
func (s *UserService) SendResetOTP(ctx context.Context, req *dtos.ForgetPasswordRequest) error {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return apperr.Internal("failed to generate otp", err)
	}
	hash, err := auth.HashPassword(otp)
	if err != nil {
		return apperr.Internal("failed to generate otp", err)
	}
	expires := s.Clock().Add(s.OTPTTL)
	err = s.DB.WithContext(ctx).Model(user).Updates(map[string]any{
		"otp":            hash,
		"otp_expires_at": expires,
	}).Error
	if err != nil {
		return apperr.Internal("failed to store otp", err)
	}

	if err := s.Email.SendPasswordResetOTP(ctx, user.Email, otp, s.OTPTTL); err != nil {
		return apperr.Internal("failed to send otp", err)
	}
	return nil
}

// ResetPassword sets a new password when otp matches the stored, unexpired
// code. The code is single use.
func (s *UserService) ResetPassword(ctx context.Context, req *dtos.ResetPasswordRequest) error {
	user, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user.OTP == "" || user.OTPExpiresAt == nil {
		return apperr.ErrInvalidOTP
	}
	if s.Clock().After(*user.OTPExpiresAt) || !auth.CheckPassword(user.OTP, req.OTP) {
		return apperr.ErrInvalidOTP
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("failed to reset password", err)
	}
	err = s.DB.WithContext(ctx).Model(user).Updates(map[string]any{
		"password":       hash,
		"otp":            "",
		"otp_expires_at": nil,
	}).Error
	if err != nil {
		return apperr.Internal("failed to reset password", err)
	}
	return nil
}

func (s *UserService) AccountsByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("recovery_email = ?", normalizeEmail(recoveryEmail)).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal("failed to load users", err)
	}
	if len(users) == 0 {
		return nil, apperr.ErrUserNotFound
	}
	return users, nil
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, lookupError(err, apperr.ErrUserNotFound)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
