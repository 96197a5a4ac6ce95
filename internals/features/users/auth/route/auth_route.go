// internals/features/users/auth/route/auth_route.go
package routes

import (
	authCtl "asramaku_backend/internals/features/users/auth/controller"
	"asramaku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// rute publik (tanpa JWT)
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authCtl.NewAuthController(db)

	grp := r.Group("/auth")
	grp.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	grp.Post("/refresh-token", ctrl.RefreshToken)
}

// rute di belakang JWT
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authCtl.NewAuthController(db)

	grp := r.Group("/auth")
	grp.Post("/logout", ctrl.Logout)
	grp.Get("/me", ctrl.Me)
}
