// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/finance/payments/dto"
	"asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/finance/payments/service"
	helper "asramaku_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Service  *service.PaymentService
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:       db,
		Service:  service.NewPaymentService(db),
		Validate: validator.New(),
	}
}

// =============================
// 💰 POST /api/a/payments
// =============================
func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var recordedBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		recordedBy = &uid
	}

	resp, err := ctrl.Service.CreatePayment(asramaID, &req, recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidAmount):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat pembayaran")
		}
	}
	return helper.JsonCreated(c, "Pembayaran berhasil dicatat", resp)
}

// =============================
// 📄 GET /api/a/payments?student_id=&status=
// =============================
func (ctrl *PaymentController) GetPayments(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentTransactionModel{}).
		Where("payment_transaction_asrama_id = ? AND payment_transaction_deleted_at IS NULL", asramaID)
	if v := c.Query("student_id"); v != "" {
		q = q.Where("payment_transaction_student_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("payment_transaction_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}

	var rows []model.PaymentTransactionModel
	if err := q.Order("payment_transaction_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.JsonList(c, "Daftar pembayaran", rows,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// 🗑️ DELETE /api/a/payments/:id (soft delete + pengembalian potongan)
// =============================
func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctrl.Service.DeletePayment(asramaID, id); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membatalkan pembayaran")
	}
	return helper.JsonDeleted(c, "Pembayaran dibatalkan", fiber.Map{"payment_transaction_id": id})
}

// =============================
// 🔔 POST /api/payments/notification (webhook Midtrans, tanpa JWT)
// =============================
func (ctrl *PaymentController) HandleNotification(c *fiber.Ctx) error {
	var req dto.GatewayNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.Service.HandleGatewayNotification(req.OrderID, req.TransactionStatus); err != nil {
		if errors.Is(err, service.ErrGatewayOrderExists) {
			return helper.JsonError(c, fiber.StatusNotFound, "Order tidak dikenal")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}
	return helper.JsonOK(c, "Notifikasi diproses", fiber.Map{"order_id": req.OrderID})
}
