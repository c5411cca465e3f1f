// Package models содержит доменную модель пользователя системы:
// учётную запись ученика или преподавателя, хэш пароля и привязку
// ученика к своему преподавателю. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

// Роли пользователей. Ученик — обычная запись, привязанная к преподавателю.
// Преподаватель владеет списком своих учеников. Суперадмин — служебная
// учётная запись, исключаемая из обычных списков.
const (
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleSuperAdmin = "superadmin"
)

// User представляет учётную запись пользователя системы.
type User struct {
	ID           int    `json:"id"`      // Уникальный идентификатор пользователя
	Name         string `json:"name"`    // Имя пользователя
	Email        string `json:"email"`   // Электронная почта (уникальная)
	PasswordHash string `json:"-"`       // Хэш пароля, наружу не отдаётся
	Role         string `json:"role"`    // Роль: student, teacher или superadmin
	Teacher      string `json:"teacher"` // Email преподавателя, пустой для не-учеников
}

// IsAdmin сообщает, проходит ли пользователь административный гейт.
// Преподаватель и суперадмин считаются администраторами.
func (u *User) IsAdmin() bool {
	return u.Role == RoleTeacher || u.Role == RoleSuperAdmin
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса,
// прежде чем создавать нового ученика.
type DummyRegister struct {
	Name                 string `json:"name" validate:"required"`                          // Имя нового ученика
	Email                string `json:"email" validate:"required,email"`                   // Email (должен быть уникален)
	Password             string `json:"password" validate:"required"`                      // Пароль
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"` // Подтверждение пароля
}

// DummyUpdate используется для приёма данных обновления пользователя.
// Поля перезаписываются без повторной проверки уникальности.
type DummyUpdate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
