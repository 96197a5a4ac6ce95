// file: internals/route/details/admin_routes.go
package details

import (
	dashboardRoutes "asramaku_backend/internals/features/dashboard/route"
	asramaRoutes "asramaku_backend/internals/features/dormitory/asramas/route"
	holidayRoutes "asramaku_backend/internals/features/dormitory/holidays/route"
	studentRoutes "asramaku_backend/internals/features/dormitory/students/route"
	paymentRoutes "asramaku_backend/internals/features/finance/payments/route"
	mealRoutes "asramaku_backend/internals/features/meals/meal_transactions/route"
	reportRoutes "asramaku_backend/internals/features/meals/reports/route"
	authRoutes "asramaku_backend/internals/features/users/auth/route"
	userRoutes "asramaku_backend/internals/features/users/user/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Semua fitur operasional asrama, di belakang AuthMiddleware (group /api/a).
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	authRoutes.AuthProtectedRoutes(r, db)
	userRoutes.UserAdminRoutes(r, db)

	asramaRoutes.AsramaAdminRoutes(r, db)
	studentRoutes.StudentAdminRoutes(r, db)
	holidayRoutes.HolidayAdminRoutes(r, db)

	mealRoutes.MealTransactionAdminRoutes(r, db)
	reportRoutes.ReportAdminRoutes(r, db)
	dashboardRoutes.DashboardAdminRoutes(r, db)

	paymentRoutes.PaymentAdminRoutes(r, db)
}
