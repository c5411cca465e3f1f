// Package classroomroster собирает приложение и регистрирует маршруты API.
package classroomroster

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/current"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/classroom-roster/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/classroom-roster/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/classroom-roster/internal/services/auth"
	rosterservice "github.com/magabrotheeeer/classroom-roster/internal/services/roster"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, rosterService *rosterservice.RosterService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытая конечная точка: вход без лимитов и без токена
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с проверкой bearer-токена
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Get("/user", current.New(logger).ServeHTTP)
			r.Get("/logout", logout.New(logger, authService).ServeHTTP)

			// Административная группа: только преподаватели и суперадмины
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminMiddleware(logger))
				r.Use(middlewarectx.RateLimitMiddleware(logger))
				r.Post("/register", register.New(logger, rosterService).ServeHTTP)
				r.Get("/users", list.New(logger, rosterService).ServeHTTP)
				r.Get("/userprofile", profile.New(logger, rosterService).ServeHTTP)
				r.Patch("/update/{id}", update.New(logger, rosterService).ServeHTTP)
				r.Delete("/delete/{id}", remove.New(logger, rosterService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
