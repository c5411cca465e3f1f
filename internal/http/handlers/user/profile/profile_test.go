package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
	rosterservice "github.com/magabrotheeeer/classroom-roster/internal/services/roster"
)

type RosterServiceMock struct {
	mock.Mock
}

func (m *RosterServiceMock) Profile(ctx context.Context, caller *models.User, id int) (*models.User, error) {
	args := m.Called(ctx, caller, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestProfileHandler_ServeHTTP(t *testing.T) {
	teacher := &models.User{ID: 1, Name: "Teacher A", Email: "a@school.com", Role: models.RoleTeacher}

	tests := []struct {
		name           string
		query          string
		caller         *models.User
		mockID         int
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantStatus     float64
		wantMsg        string
	}{
		{
			name:   "own student found",
			query:  "?id=2",
			caller: teacher,
			mockID: 2,
			mockUser: &models.User{ID: 2, Name: "John", Email: "john@school.com",
				Role: models.RoleStudent, Teacher: "a@school.com"},
			wantStatusCode: http.StatusOK,
			wantStatus:     1,
			wantMsg:        "this is the user profile",
		},
		{
			name:           "student of another teacher",
			query:          "?id=7",
			caller:         teacher,
			mockID:         7,
			mockErr:        rosterservice.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     0,
			wantMsg:        "user not found",
		},
		{
			name:           "missing id",
			query:          "",
			caller:         teacher,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     0,
			wantMsg:        "invalid id",
		},
		{
			name:           "non-numeric id",
			query:          "?id=abc",
			caller:         teacher,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     0,
			wantMsg:        "invalid id",
		},
		{
			name:           "no caller in context",
			query:          "?id=2",
			caller:         nil,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     0,
			wantMsg:        "unauthorized",
		},
		{
			name:           "storage failure",
			query:          "?id=2",
			caller:         teacher,
			mockID:         2,
			mockErr:        errors.New("storage down"),
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     0,
			wantMsg:        "could not read user profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(RosterServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.mockID != 0 {
				serviceMock.On("Profile", mock.Anything, tt.caller, tt.mockID).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/api/userprofile"+tt.query, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.caller != nil {
				ctx = context.WithValue(ctx, middlewarectx.Caller, tt.caller)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			assert.Contains(t, got["msg"].(string), tt.wantMsg)

			if tt.mockUser != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "john@school.com", data["email"])
				assert.NotContains(t, data, "password_hash")
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
