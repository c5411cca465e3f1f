// Package services содержит логику бизнес-уровня для аутентификации пользователей:
// вход по email и паролю, выдачу и массовый отзыв bearer-токенов, проверку токена.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/classroom-roster/internal/lib/jwt"
	"github.com/magabrotheeeer/classroom-roster/internal/lib/password"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
)

// Ошибки уровня аутентификации, по которым обработчики выбирают HTTP-статус.
var (
	// ErrUserNotFound — пользователь с таким email не зарегистрирован.
	ErrUserNotFound = errors.New("user not registered")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("incorrect password")
	// ErrInvalidToken — токен не прошёл проверку подписи или был отозван.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthRepository описывает контракт для работы с пользователями и сессиями в базе данных.
type AuthRepository interface {
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID возвращает пользователя по ID.
	GetUserByID(ctx context.Context, id int) (*models.User, error)

	// CreateSession сохраняет выданный токен.
	CreateSession(ctx context.Context, userID int, token string) (int, error)

	// SessionExists сообщает, активен ли токен.
	SessionExists(ctx context.Context, token string) (bool, error)

	// DeleteSessionsByUser удаляет все сессии пользователя.
	DeleteSessionsByUser(ctx context.Context, userID int) (int, error)
}

// AuthService отвечает за вход, выход и валидацию bearer-токенов.
type AuthService struct {
	repo     AuthRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo AuthRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		repo:     repo,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя, генерирует JWT и записывает его как
// активную сессию. У пользователя может быть сколько угодно параллельных сессий.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if err := password.Verify(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.repo.CreateSession(ctx, user.ID, token); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout отзывает все активные сессии пользователя разом
// и возвращает количество удалённых токенов.
func (s *AuthService) Logout(ctx context.Context, userID int) (int, error) {
	return s.repo.DeleteSessionsByUser(ctx, userID)
}

// ValidateToken проверяет подпись JWT, наличие активной сессии
// и возвращает актуальную запись пользователя из хранилища.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ValidateToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	exists, err := s.repo.SessionExists(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
