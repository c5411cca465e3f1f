package models

import "time"

// Session представляет выданный bearer-токен пользователя.
// У одного пользователя может быть несколько активных сессий,
// logout удаляет их все разом.
type Session struct {
	ID        int       // Идентификатор записи сессии
	UserID    int       // Владелец токена
	Token     string    // Подписанный JWT
	CreatedAt time.Time // Время выдачи
}
