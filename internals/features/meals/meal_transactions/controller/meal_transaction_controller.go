// file: internals/features/meals/meal_transactions/controller/meal_transaction_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/meals/meal_transactions/dto"
	"asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/features/meals/meal_transactions/service"
	helper "asramaku_backend/internals/helpers"
	"asramaku_backend/internals/helpers/dbtime"
)

type MealTransactionController struct {
	DB       *gorm.DB
	Service  *service.ScanService
	Validate *validator.Validate
}

func NewMealTransactionController(db *gorm.DB) *MealTransactionController {
	return &MealTransactionController{
		DB:       db,
		Service:  service.NewScanService(db),
		Validate: validator.New(),
	}
}

// =============================
// 🍽️ POST /api/a/meal-transactions/scan
// =============================
func (ctrl *MealTransactionController) ScanMeal(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ScanMealRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Jam scan mengikuti timezone asrama, bukan jam server
	now, err := dbtime.GetDBTime(c)
	if err != nil {
		now = dbtime.NowInAsrama(c)
	}

	var recordedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		recordedBy = &uid
	}

	result, err := ctrl.Service.ScanMeal(asramaID, req.NationalID, req.MealTypeID, now, recordedBy)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses scan")
	}

	// Scan ditolak tetap HTTP 200 — penolakan adalah hasil bisnis, bukan error
	return helper.JsonOK(c, result.Message, result)
}

// =============================
// 📄 GET /api/a/meal-transactions
// =============================
func (ctrl *MealTransactionController) GetTransactions(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.MealTransactionModel{}).
		Where("meal_transaction_asrama_id = ? AND meal_transaction_deleted_at IS NULL", asramaID)

	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
		}
		q = q.Where("meal_transaction_date = ?", dbtime.DateOnly(d))
	}
	if raw := c.Query("meal_type_id"); raw != "" {
		q = q.Where("meal_transaction_meal_type_id = ?", raw)
	}
	if raw := c.Query("student_id"); raw != "" {
		q = q.Where("meal_transaction_student_id = ?", raw)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung transaksi")
	}

	var rows []model.MealTransactionModel
	if err := q.Order("meal_transaction_scanned_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil transaksi")
	}

	resp := make([]*dto.TransactionResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.NewTransactionResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar transaksi makan", resp,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}
