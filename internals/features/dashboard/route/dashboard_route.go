// internals/features/dashboard/route/dashboard_route.go
package routes

import (
	dashCtl "asramaku_backend/internals/features/dashboard/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := dashCtl.NewDashboardController(db)
	r.Get("/dashboard", ctrl.GetRegistrationDashboard)
}
