// file: internals/features/finance/payments/controller/exemption_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/finance/payments/dto"
	"asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/finance/payments/service"
	helper "asramaku_backend/internals/helpers"
	"asramaku_backend/internals/helpers/dbtime"
)

type ExemptionController struct {
	DB       *gorm.DB
	Service  *service.PaymentService
	Validate *validator.Validate
}

func NewExemptionController(db *gorm.DB) *ExemptionController {
	return &ExemptionController{
		DB:       db,
		Service:  service.NewPaymentService(db),
		Validate: validator.New(),
	}
}

// =============================
// ➕ POST /api/a/payment-exemptions
// =============================
func (ctrl *ExemptionController) CreateExemption(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateExemptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	exemption, err := ctrl.Service.CreateExemption(asramaID, req.StudentID,
		dbtime.DateOnly(start), dbtime.DateOnly(end), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDateRange):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrExemptionOverlap):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan dispensasi")
		}
	}
	return helper.JsonCreated(c, "Dispensasi berhasil dibuat", dto.NewExemptionResponse(exemption))
}

// =============================
// 📄 GET /api/a/payment-exemptions?student_id=&active=
// =============================
func (ctrl *ExemptionController) GetExemptions(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentExemptionModel{}).
		Where("exemption_asrama_id = ? AND exemption_deleted_at IS NULL", asramaID)
	if v := c.Query("student_id"); v != "" {
		q = q.Where("exemption_student_id = ?", v)
	}
	if v := c.Query("active"); v == "true" {
		q = q.Where("exemption_is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung dispensasi")
	}

	var rows []model.PaymentExemptionModel
	if err := q.Order("exemption_start_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil dispensasi")
	}

	resp := make([]*dto.ExemptionResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.NewExemptionResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar dispensasi", resp,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// ✏️ PUT /api/a/payment-exemptions/:id
// =============================
func (ctrl *ExemptionController) UpdateExemption(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateExemptionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	exemption, err := ctrl.Service.UpdateExemption(asramaID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExemptionNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidDateRange):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrExemptionOverlap):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui dispensasi")
		}
	}
	return helper.JsonUpdated(c, "Dispensasi berhasil diperbarui", dto.NewExemptionResponse(exemption))
}

// =============================
// 🗑️ DELETE /api/a/payment-exemptions/:id (soft delete)
// =============================
func (ctrl *ExemptionController) DeleteExemption(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Service.DeleteExemption(asramaID, id); err != nil {
		if errors.Is(err, service.ErrExemptionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus dispensasi")
	}
	return helper.JsonDeleted(c, "Dispensasi berhasil dihapus", fiber.Map{"exemption_id": id})
}
