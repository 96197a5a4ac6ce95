// file: internals/features/meals/reports/controller/report_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/meals/reports/dto"
	"asramaku_backend/internals/features/meals/reports/service"
	helper "asramaku_backend/internals/helpers"
	"asramaku_backend/internals/helpers/dbtime"
)

type ReportController struct {
	Service  *service.ReportService
	Validate *validator.Validate
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		Service:  service.NewReportService(db),
		Validate: validator.New(),
	}
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Parameter "+name+" wajib diisi (YYYY-MM-DD)")
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Format "+name+" harus YYYY-MM-DD")
	}
	return dbtime.DateOnly(d), nil
}

func optionalString(c *fiber.Ctx, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}

// =============================
// 📊 GET /api/a/reports/meal-absence?from=&to=&building_number=&...
// =============================
func (ctrl *ReportController) GetMealAbsenceReport(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if from.After(to) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal from tidak boleh setelah to")
	}

	filters := &dto.MealAbsenceFilters{
		BuildingNumber: optionalString(c, "building_number"),
		Government:     optionalString(c, "government"),
		District:       optionalString(c, "district"),
		Faculty:        optionalString(c, "faculty"),
	}

	report, err := ctrl.Service.GetMealAbsenceReport(asramaID, from, to, filters)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan bolos makan")
	}
	return helper.JsonOK(c, "Laporan bolos makan", report)
}

// =============================
// 📊 GET /api/a/reports/daily-absence?date=
// =============================
func (ctrl *ReportController) GetDailyAbsenceReport(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	report, err := ctrl.Service.GetDailyAbsenceReport(asramaID, date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan harian")
	}
	return helper.JsonOK(c, "Laporan bolos makan harian", report)
}

// =============================
// 📊 GET /api/a/reports/monthly-absence?from=&to=
// =============================
func (ctrl *ReportController) GetMonthlyAbsenceReport(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if from.After(to) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal from tidak boleh setelah to")
	}

	report, err := ctrl.Service.GetMonthlyAbsenceReport(asramaID, from, to)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan bulanan")
	}
	return helper.JsonOK(c, "Laporan bolos makan bulanan", report)
}

// =============================
// 🍛 GET /api/a/reports/restaurant-daily?date=&building_number=
// =============================
func (ctrl *ReportController) GetRestaurantDailyReport(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	report, err := ctrl.Service.GetRestaurantDailyReport(asramaID, date, optionalString(c, "building_number"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan restoran")
	}
	return helper.JsonOK(c, "Laporan restoran harian", report)
}
