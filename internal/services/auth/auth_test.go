package services_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customjwt "github.com/magabrotheeeer/classroom-roster/internal/lib/jwt"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/password"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
	services "github.com/magabrotheeeer/classroom-roster/internal/services/auth"
)

// Мок для AuthRepository
type AuthRepoMock struct {
	mock.Mock
}

func (m *AuthRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthRepoMock) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthRepoMock) CreateSession(ctx context.Context, userID int, token string) (int, error) {
	args := m.Called(ctx, userID, token)
	return args.Int(0), args.Error(1)
}

func (m *AuthRepoMock) SessionExists(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *AuthRepoMock) DeleteSessionsByUser(ctx context.Context, userID int) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(userID int, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func mustHash(t *testing.T, raw string) string {
	t.Helper()
	h, err := password.Hash(raw)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestAuthService_Login(t *testing.T) {
	teacherHash := func(t *testing.T) string { return mustHash(t, "password123") }

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(t *testing.T, r *AuthRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "successful login issues token and session",
			email:    "teacher@school.com",
			password: "password123",
			setupMocks: func(t *testing.T, r *AuthRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "teacher@school.com").
					Return(&models.User{ID: 1, Email: "teacher@school.com", Role: models.RoleTeacher,
						PasswordHash: teacherHash(t)}, nil).Once()
				j.On("GenerateToken", 1, "teacher@school.com", models.RoleTeacher).
					Return("tok", nil).Once()
				r.On("CreateSession", mock.Anything, 1, "tok").Return(1, nil).Once()
			},
			wantToken: "tok",
		},
		{
			name:     "unknown email",
			email:    "nobody@school.com",
			password: "password123",
			setupMocks: func(_ *testing.T, r *AuthRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@school.com").
					Return(nil, fmt.Errorf("storage.GetUserByEmail: %w", sql.ErrNoRows)).Once()
			},
			wantErr: services.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "teacher@school.com",
			password: "wrong-password",
			setupMocks: func(t *testing.T, r *AuthRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "teacher@school.com").
					Return(&models.User{ID: 1, Email: "teacher@school.com", Role: models.RoleTeacher,
						PasswordHash: teacherHash(t)}, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(AuthRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(t, repoMock, jwtMock)

			svc := services.NewAuthService(repoMock, jwtMock)
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.wantToken, token)
			}
			repoMock.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	repoMock := new(AuthRepoMock)
	jwtMock := new(JwtMakerMock)
	repoMock.On("DeleteSessionsByUser", mock.Anything, 7).Return(3, nil).Once()

	svc := services.NewAuthService(repoMock, jwtMock)
	count, err := svc.Logout(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	repoMock.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	user := &models.User{ID: 1, Email: "teacher@school.com", Role: models.RoleTeacher}

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *AuthRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:  "valid token with active session",
			token: "tok",
			setupMocks: func(r *AuthRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").
					Return(&customjwt.CustomClaims{UserID: 1, Email: user.Email, Role: user.Role}, nil).Once()
				r.On("SessionExists", mock.Anything, "tok").Return(true, nil).Once()
				r.On("GetUserByID", mock.Anything, 1).Return(user, nil).Once()
			},
		},
		{
			name:  "malformed token",
			token: "garbage",
			setupMocks: func(_ *AuthRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "garbage").Return(nil, errors.New("jwt.ParseToken: invalid token")).Once()
			},
			wantErr: services.ErrInvalidToken,
		},
		{
			name:  "revoked session",
			token: "tok",
			setupMocks: func(r *AuthRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").
					Return(&customjwt.CustomClaims{UserID: 1, Email: user.Email, Role: user.Role}, nil).Once()
				r.On("SessionExists", mock.Anything, "tok").Return(false, nil).Once()
			},
			wantErr: services.ErrInvalidToken,
		},
		{
			name:  "user deleted after token issued",
			token: "tok",
			setupMocks: func(r *AuthRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "tok").
					Return(&customjwt.CustomClaims{UserID: 1, Email: user.Email, Role: user.Role}, nil).Once()
				r.On("SessionExists", mock.Anything, "tok").Return(true, nil).Once()
				r.On("GetUserByID", mock.Anything, 1).
					Return(nil, fmt.Errorf("storage.GetUserByID: %w", sql.ErrNoRows)).Once()
			},
			wantErr: services.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(AuthRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repoMock, jwtMock)

			svc := services.NewAuthService(repoMock, jwtMock)
			got, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user, got)
			}
			repoMock.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
