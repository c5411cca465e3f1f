// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса: 1 при успехе, 0 при доменной ошибке.
// Поле Msg — человекочитаемое сообщение.
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}

// LoginResponse — ответ на успешную авторизацию: пользователь и bearer-токен
// идут на верхнем уровне, а не внутри data.
type LoginResponse struct {
	Status      int    `json:"status"`
	Msg         string `json:"msg"`
	User        any    `json:"user"`
	AccessToken string `json:"access_token"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = 1
	// StatusError — значение статуса для ответа с доменной ошибкой.
	StatusError = 0
)

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{
		Status: StatusOK,
		Msg:    msg,
	}
}

// OKWithData возвращает успешный Response с сообщением и данными.
func OKWithData(msg string, data any) Response {
	return Response{
		Status: StatusOK,
		Msg:    msg,
		Data:   data,
	}
}

// Error возвращает Response с доменной ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status: StatusError,
		Msg:    msg,
	}
}

// Login возвращает LoginResponse для успешного входа.
func Login(user any, accessToken string) LoginResponse {
	return LoginResponse{
		Status:      StatusOK,
		Msg:         "you are logged in",
		User:        user,
		AccessToken: accessToken,
	}
}

// ValidationError формирует Response со статусом 0 на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "eqfield":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s does not match its confirmation", err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Msg:    strings.Join(errsMsgs, ", "),
	}
}
