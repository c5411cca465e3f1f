package repository

import (
	"context"
	"fmt"
)

// CreateSession сохраняет выданный токен и возвращает ID записи сессии.
func (s *Storage) CreateSession(ctx context.Context, userID int, token string) (int, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO sessions (user_id, token)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, userID, token).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SessionExists сообщает, числится ли токен среди активных сессий.
// Отозванный токен (после logout) перестаёт существовать в таблице.
func (s *Storage) SessionExists(ctx context.Context, token string) (bool, error) {
	const op = "storage.SessionExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM sessions WHERE token = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// DeleteSessionsByUser удаляет все сессии пользователя разом
// и возвращает количество удалённых строк.
func (s *Storage) DeleteSessionsByUser(ctx context.Context, userID int) (int, error) {
	const op = "storage.DeleteSessionsByUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sessions WHERE user_id = $1`
	result, err := s.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
