package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/auth"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

var studentNoRegex = regexp.MustCompile(`^[A-Z]?\d{7,12}$`)

// UserStore is the account persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// TokenStore is the refresh token persistence surface
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and token refresh
type AuthService struct {
	userStore      UserStore
	tokenStore     TokenStore
	studentStore   StudentStore
	departmentRepo DepartmentStore
	jwtService     *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	tokenStore TokenStore,
	studentStore StudentStore,
	departmentStore DepartmentStore,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userStore:      userStore,
		tokenStore:     tokenStore,
		studentStore:   studentStore,
		departmentRepo: departmentStore,
		jwtService:     jwtService,
	}
}

// validatePassword checks if the password meets the minimum requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewBadRequestError("password must be at least 8 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewBadRequestError("password must contain at least one letter and one digit")
	}

	return nil
}

// Register creates a student account with its profile. The student number
// doubles as the login name.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	studentNo := strings.ToUpper(strings.TrimSpace(req.StudentNo))
	if !studentNoRegex.MatchString(studentNo) {
		return nil, apperrors.NewBadRequestError("invalid student number format")
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		exists, err := s.departmentRepo.Exists(ctx, *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrDepartmentNotFound
		}
	}

	taken, err := s.userStore.UsernameExists(ctx, studentNo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrStudentNoExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: studentNo,
		Password: hashed,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		RoleType: models.RoleStudent,
		IsActive: true,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	student := &models.Student{
		UserID:         user.ID,
		StudentNo:      studentNo,
		Name:           strings.TrimSpace(req.Name),
		Program:        req.Program,
		EnrollmentYear: req.EnrollmentYear,
		DepartmentID:   req.DepartmentID,
		IsFulltime:     true,
		Status:         models.EnrollmentEnrolled,
	}
	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Str("studentNo", studentNo).Int64("userID", user.ID).Msg("Student registered")
	return user, nil
}

// Login authenticates a user and issues a token pair. The role claim in the
// access token is the single source of authorization downstream.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token into a new pair. The presented token
// is revoked whether or not a new pair is issued for it again.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenStore.RevokeToken(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	err = s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userStore.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		RoleType:         string(user.RoleType),
	}, nil
}
