// Package services содержит бизнес-логику ведения списка учеников преподавателя:
// регистрацию, выборку, чтение профиля, обновление и удаление учётных записей,
// включая кеширование профилей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/classroom-roster/internal/lib/password"
	"github.com/magabrotheeeer/classroom-roster/internal/models"
)

// Ошибки уровня справочника пользователей.
var (
	// ErrUserNotFound — запись с таким ID не найдена (или не входит в список преподавателя).
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken — email уже занят другой учётной записью.
	ErrEmailTaken = errors.New("email has already been taken")
	// ErrSelfUpdate — попытка пользователя обновить собственную запись.
	ErrSelfUpdate = errors.New("you cannot update yourself")
)

// RosterRepository определяет методы для работы с пользователями в хранилище.
type RosterRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID без фильтра по ролям.
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// ListStudents возвращает учеников преподавателя.
	ListStudents(ctx context.Context, teacherEmail string) ([]*models.User, error)
	// GetStudent возвращает одного ученика преподавателя по ID.
	GetStudent(ctx context.Context, teacherEmail string, id int) (*models.User, error)
	// UpdateUser перезаписывает имя, email и хэш пароля по ID.
	UpdateUser(ctx context.Context, id int, name, email, passwordHash string) (int, error)
	// DeleteUser удаляет пользователя по ID.
	DeleteUser(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// RosterService реализует операции над списком учеников, включая кеширование профилей.
type RosterService struct {
	repo  RosterRepository
	cache Cache
	log   *slog.Logger
}

// NewRosterService создает новый экземпляр RosterService.
func NewRosterService(repo RosterRepository, cache Cache, log *slog.Logger) *RosterService {
	return &RosterService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Ключ кеша скоупится на email преподавателя, чтобы профиль чужого ученика
// не был виден через кеш.
func profileKey(teacherEmail string, id int) string {
	return fmt.Sprintf("student:%s:%d", teacherEmail, id)
}

// Register создает нового ученика, привязанного к вызывающему преподавателю.
// Email проверяется на уникальность до вставки.
func (s *RosterService) Register(ctx context.Context, caller *models.User, req models.DummyRegister) (*models.User, error) {
	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleStudent,
		Teacher:      caller.Email,
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.log.Info("registered new student",
		slog.Int("id", id), slog.String("teacher", caller.Email))
	return &user, nil
}

// ListStudents возвращает список учеников вызывающего преподавателя.
// Чужие ученики, преподаватели и суперадмины в список не попадают.
func (s *RosterService) ListStudents(ctx context.Context, caller *models.User) ([]*models.User, error) {
	return s.repo.ListStudents(ctx, caller.Email)
}

// Profile возвращает профиль одного ученика преподавателя, используя кеш или хранилище.
// Для ученика из чужого списка возвращается ErrUserNotFound, даже если ID существует.
func (s *RosterService) Profile(ctx context.Context, caller *models.User, id int) (*models.User, error) {
	var result *models.User
	cacheKey := profileKey(caller.Email, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetStudent(ctx, caller.Email, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache student profile", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update перезаписывает имя, email и пароль пользователя по ID.
// Запись ищется без фильтра по списку преподавателя. Обновление собственной
// записи запрещено и возвращает ErrSelfUpdate.
func (s *RosterService) Update(ctx context.Context, caller *models.User, id int, req models.DummyUpdate) (*models.User, error) {
	target, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if caller.ID == target.ID {
		return nil, ErrSelfUpdate
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.UpdateUser(ctx, id, req.Name, req.Email, hashed); err != nil {
		return nil, err
	}
	s.log.Info("updated user in storage", slog.Int("id", id))

	cacheKey := profileKey(target.Teacher, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cached profile", slog.String("key", cacheKey), slog.Any("err", err))
	}

	target.Name = req.Name
	target.Email = req.Email
	target.PasswordHash = hashed
	return target, nil
}

// Remove удаляет пользователя по ID без проверки принадлежности списку,
// возвращает количество удалённых записей.
func (s *RosterService) Remove(ctx context.Context, id int) (int, error) {
	target, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	cacheKey := profileKey(target.Teacher, id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cached profile", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}
