// internals/features/dormitory/holidays/route/holiday_route.go
package routes

import (
	holidayCtl "asramaku_backend/internals/features/dormitory/holidays/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func HolidayAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := holidayCtl.NewHolidayController(db)

	grp := r.Group("/holidays")
	grp.Post("/", ctrl.CreateHoliday)
	grp.Get("/", ctrl.GetHolidays)
	grp.Put("/:id", ctrl.UpdateHoliday)
	grp.Delete("/:id", ctrl.DeleteHoliday)
}
