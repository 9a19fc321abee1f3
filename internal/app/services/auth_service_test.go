package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/auth"
)

type memUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (m *memUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return apperrors.ErrStudentNoExists
		}
	}
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *memUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUserStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (m *memUserStore) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type memToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type memTokenStore struct {
	tokens map[string]*memToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]*memToken)}
}

func (m *memTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	m.tokens[token] = &memToken{userID: userID, expiry: expiryDate}
	return nil
}

func (m *memTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := m.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiry, t.revoked, nil
}

func (m *memTokenStore) RevokeToken(_ context.Context, token string) error {
	t, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (m *memTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, t := range m.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

type memDepartmentStore struct {
	departments map[int64]*models.Department
}

func (m *memDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	var out []*models.Department
	for _, d := range m.departments {
		out = append(out, d)
	}
	return out, nil
}

func (m *memDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return d, nil
}

func (m *memDepartmentStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.departments[id]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *memUserStore, *memStudentStore, *memTokenStore) {
	t.Helper()

	users := newMemUserStore()
	tokens := newMemTokenStore()
	students := newMemStudentStore()
	departments := &memDepartmentStore{departments: map[int64]*models.Department{
		1: {ID: 1, Name: "Computer Science", Code: "CS"},
	}}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-at-least-32-characters!!",
		TokenIssuer:     "taportal.test",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
	})

	svc := NewAuthService(users, tokens, students, departments, jwtService)
	return svc, users, students, tokens
}

func registerReq() *dto.RegisterRequest {
	deptID := int64(1)
	return &dto.RegisterRequest{
		StudentNo:      "S2023001",
		Password:       "passw0rd1",
		Name:           "Li Ming",
		Email:          "liming@univ.edu",
		Program:        "CS PhD",
		EnrollmentYear: 2023,
		DepartmentID:   &deptID,
	}
}

func TestRegister_CreatesUserAndStudentProfile(t *testing.T) {
	svc, _, students, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.RoleType)
	assert.Equal(t, "S2023001", user.Username)
	assert.NotEqual(t, "passw0rd1", user.Password)

	student, err := students.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "S2023001", student.StudentNo)
	assert.False(t, student.Verified)
	assert.False(t, student.HasJob)
}

func TestRegister_DuplicateStudentNoDenied(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, apperrors.ErrStudentNoExists)
}

func TestRegister_WeakPasswordDenied(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	req := registerReq()
	req.Password = "lettersonly"
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestRegister_UnknownDepartmentDenied(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	req := registerReq()
	missing := int64(99)
	req.DepartmentID = &missing
	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

func TestLogin_IssuesTokenPairWithRoleClaim(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "S2023001",
		Password: "passw0rd1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, string(models.RoleStudent), resp.RoleType)
}

func TestLogin_WrongPasswordDenied(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Username: "S2023001",
		Password: "wrongpass1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownUserMasksCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "S9999999",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	svc, _, _, tokens := newAuthFixture(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "S2023001", Password: "passw0rd1"})
	require.NoError(t, err)

	second, err := svc.RefreshToken(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, _, revoked, err := tokens.GetTokenByValue(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	// The old token cannot be replayed
	_, err = svc.RefreshToken(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
