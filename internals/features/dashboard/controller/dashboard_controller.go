// file: internals/features/dashboard/controller/dashboard_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/dashboard/service"
	helper "asramaku_backend/internals/helpers"
	"asramaku_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewDashboardService(db)}
}

// =============================
// 📈 GET /api/a/dashboard?date=
// =============================
func (ctrl *DashboardController) GetRegistrationDashboard(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// default: hari ini dalam timezone asrama
	day := dbtime.NowInAsrama(c)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format date harus YYYY-MM-DD")
		}
		day = parsed
	}

	stats, err := ctrl.Service.GetRegistrationDashboardStats(asramaID, day)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat dashboard")
	}
	return helper.JsonOK(c, "Statistik dashboard", stats)
}
