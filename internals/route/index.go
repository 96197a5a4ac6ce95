// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	routeDetails "asramaku_backend/internals/route/details"
	authMiddleware "asramaku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	// login, refresh token, webhook Midtrans — tanpa JWT
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/api")
	routeDetails.PublicRoutes(public, db)

	// ===================== ADMIN (per asrama) =====================
	// semua fitur operasional di belakang JWT + blacklist check
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db))
	routeDetails.AdminRoutes(admin, db)
}
