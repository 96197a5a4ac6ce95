// internals/features/meals/meal_transactions/route/meal_transaction_route.go
package routes

import (
	mealCtl "asramaku_backend/internals/features/meals/meal_transactions/controller"
	"asramaku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func MealTransactionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := mealCtl.NewMealTransactionController(db)

	grp := r.Group("/meal-transactions")
	// scan dibatasi rate-limit tersendiri (alat scan bisa spam)
	grp.Post("/scan", middlewares.ScanRateLimiter(), ctrl.ScanMeal)
	grp.Get("/", ctrl.GetTransactions)
}
