// internals/features/meals/reports/route/report_route.go
package routes

import (
	reportCtl "asramaku_backend/internals/features/meals/reports/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReportAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := reportCtl.NewReportController(db)

	grp := r.Group("/reports")
	grp.Get("/meal-absence", ctrl.GetMealAbsenceReport)
	grp.Get("/daily-absence", ctrl.GetDailyAbsenceReport)
	grp.Get("/monthly-absence", ctrl.GetMonthlyAbsenceReport)
	grp.Get("/restaurant-daily", ctrl.GetRestaurantDailyReport)
}
