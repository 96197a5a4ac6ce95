// file: internals/features/dormitory/holidays/controller/holiday_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/dormitory/holidays/dto"
	"asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	helper "asramaku_backend/internals/helpers"
	"asramaku_backend/internals/helpers/dbtime"
)

type HolidayController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{DB: db, Validate: validator.New()}
}

// =============================
// ➕ POST /api/a/holidays
// =============================
func (ctrl *HolidayController) CreateHoliday(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	start = dbtime.DateOnly(start)
	end = dbtime.DateOnly(end)
	if start.After(end) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal mulai tidak boleh setelah tanggal selesai")
	}

	// pastikan penghuninya milik asrama ini
	var student studentModel.StudentModel
	if err := ctrl.DB.
		Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", req.StudentID, asramaID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Penghuni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa penghuni")
	}

	holiday := model.HolidayModel{
		HolidayAsramaID:  asramaID,
		HolidayStudentID: req.StudentID,
		HolidayStartDate: start,
		HolidayEndDate:   end,
		HolidayReason:    req.Reason,
	}
	if err := ctrl.DB.Create(&holiday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan izin pulang")
	}
	return helper.JsonCreated(c, "Izin pulang berhasil dicatat", dto.NewHolidayResponse(&holiday))
}

// =============================
// 📄 GET /api/a/holidays?student_id=&active_on=
// =============================
func (ctrl *HolidayController) GetHolidays(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.HolidayModel{}).
		Where("holiday_asrama_id = ? AND holiday_deleted_at IS NULL", asramaID)

	if v := c.Query("student_id"); v != "" {
		q = q.Where("holiday_student_id = ?", v)
	}
	if v := c.Query("active_on"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format active_on harus YYYY-MM-DD")
		}
		day := dbtime.DateOnly(d)
		q = q.Where("holiday_start_date <= ? AND holiday_end_date >= ?", day, day)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung izin pulang")
	}

	var rows []model.HolidayModel
	if err := q.Order("holiday_start_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil izin pulang")
	}

	resp := make([]*dto.HolidayResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.NewHolidayResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar izin pulang", resp,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// ✏️ PUT /api/a/holidays/:id
// =============================
func (ctrl *HolidayController) UpdateHoliday(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateHolidayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var holiday model.HolidayModel
	if err := ctrl.DB.
		Where("holiday_id = ? AND holiday_asrama_id = ? AND holiday_deleted_at IS NULL", id, asramaID).
		First(&holiday).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Izin pulang tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil izin pulang")
	}

	if req.StartDate != nil {
		d, _ := time.Parse("2006-01-02", *req.StartDate)
		holiday.HolidayStartDate = dbtime.DateOnly(d)
	}
	if req.EndDate != nil {
		d, _ := time.Parse("2006-01-02", *req.EndDate)
		holiday.HolidayEndDate = dbtime.DateOnly(d)
	}
	if holiday.HolidayStartDate.After(holiday.HolidayEndDate) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal mulai tidak boleh setelah tanggal selesai")
	}
	if req.Reason != nil {
		holiday.HolidayReason = req.Reason
	}
	holiday.HolidayUpdatedAt = time.Now()

	if err := ctrl.DB.Save(&holiday).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui izin pulang")
	}
	return helper.JsonUpdated(c, "Izin pulang berhasil diperbarui", dto.NewHolidayResponse(&holiday))
}

// =============================
// 🗑️ DELETE /api/a/holidays/:id (soft delete)
// =============================
func (ctrl *HolidayController) DeleteHoliday(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.HolidayModel{}).
		Where("holiday_id = ? AND holiday_asrama_id = ? AND holiday_deleted_at IS NULL", id, asramaID).
		Update("holiday_deleted_at", &now)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus izin pulang")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Izin pulang tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Izin pulang berhasil dihapus", fiber.Map{"holiday_id": id})
}
