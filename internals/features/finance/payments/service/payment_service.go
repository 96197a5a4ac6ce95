// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	"asramaku_backend/internals/features/finance/payments/dto"
	"asramaku_backend/internals/features/finance/payments/model"
)

var (
	ErrStudentNotFound    = errors.New("penghuni tidak ditemukan")
	ErrInvalidAmount      = errors.New("nominal pembayaran harus lebih dari 0")
	ErrPaymentNotFound    = errors.New("transaksi pembayaran tidak ditemukan")
	ErrExemptionOverlap   = errors.New("rentang dispensasi bertabrakan dengan dispensasi aktif lain")
	ErrExemptionNotFound  = errors.New("dispensasi tidak ditemukan")
	ErrInvalidDateRange   = errors.New("tanggal mulai tidak boleh setelah tanggal selesai")
	ErrGatewayOrderExists = errors.New("order gateway tidak dikenal")
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

/* =========================================================
   PAYMENT TRANSACTIONS
========================================================= */

// CreatePayment mencatat pembayaran tunggakan.
// - cash / bank_transfer / other → langsung paid, tunggakan dipotong
// - gateway → pending, terbit Snap token; potongan baru terjadi saat webhook settlement
// Semua dalam 1 transaksi DB; baris student dikunci (FOR UPDATE).
func (s *PaymentService) CreatePayment(asramaID uuid.UUID, req *dto.CreatePaymentRequest, recordedBy *uuid.UUID) (*dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var resp *dto.PaymentResponse
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", req.StudentID, asramaID).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		payment := model.PaymentTransactionModel{
			PaymentTransactionID:         uuid.New(),
			PaymentTransactionAsramaID:   asramaID,
			PaymentTransactionStudentID:  student.StudentID,
			PaymentTransactionAmount:     req.Amount,
			PaymentTransactionMethod:     model.PaymentMethod(req.Method),
			PaymentTransactionStatus:     model.PaymentStatusPaid,
			PaymentTransactionNote:       req.Note,
			PaymentTransactionMeta:       req.Meta,
			PaymentTransactionRecordedBy: recordedBy,
		}

		if payment.PaymentTransactionMethod == model.PaymentMethodGateway {
			payment.PaymentTransactionStatus = model.PaymentStatusPending
			externalID := payment.PaymentTransactionID.String()
			payment.PaymentTransactionExternalID = &externalID

			// token Snap sudah terkandung di redirect URL
			_, redirectURL, err := GenerateSnapToken(&payment, &student)
			if err != nil {
				return err
			}
			payment.PaymentTransactionCheckoutURL = &redirectURL
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// potongan tunggakan hanya untuk pembayaran yang sudah paid
		if payment.PaymentTransactionStatus == model.PaymentStatusPaid {
			student.SetOutstanding(student.StudentOutstandingAmount.Sub(req.Amount))
			student.StudentUpdatedAt = time.Now()
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}

		resp = dto.NewPaymentResponse(&payment, student.StudentOutstandingAmount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeletePayment membatalkan catatan pembayaran (soft delete) dan
// mengembalikan potongan tunggakannya kalau statusnya paid.
func (s *PaymentService) DeletePayment(asramaID, paymentID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var payment model.PaymentTransactionModel
		if err := tx.
			Where("payment_transaction_id = ? AND payment_transaction_asrama_id = ? AND payment_transaction_deleted_at IS NULL", paymentID, asramaID).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.PaymentTransactionModel{}).
			Where("payment_transaction_id = ?", payment.PaymentTransactionID).
			Update("payment_transaction_deleted_at", &now).Error; err != nil {
			return err
		}

		if payment.PaymentTransactionStatus != model.PaymentStatusPaid {
			return nil
		}

		var student studentModel.StudentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ?", payment.PaymentTransactionStudentID).
			First(&student).Error; err != nil {
			return err
		}
		student.SetOutstanding(student.StudentOutstandingAmount.Add(payment.PaymentTransactionAmount))
		student.StudentUpdatedAt = now
		return tx.Save(&student).Error
	})
}

// HandleGatewayNotification memproses webhook Midtrans.
// settlement/capture → paid + potong tunggakan; expire/cancel/deny → canceled.
func (s *PaymentService) HandleGatewayNotification(orderID, transactionStatus string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var payment model.PaymentTransactionModel
		if err := tx.
			Where("payment_transaction_external_id = ? AND payment_transaction_deleted_at IS NULL", orderID).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGatewayOrderExists
			}
			return err
		}

		// webhook bisa datang berulang; hanya transisi dari pending yang diproses
		if payment.PaymentTransactionStatus != model.PaymentStatusPending {
			return nil
		}

		switch transactionStatus {
		case "settlement", "capture":
			if err := tx.Model(&model.PaymentTransactionModel{}).
				Where("payment_transaction_id = ?", payment.PaymentTransactionID).
				Update("payment_transaction_status", model.PaymentStatusPaid).Error; err != nil {
				return err
			}
			var student studentModel.StudentModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("student_id = ?", payment.PaymentTransactionStudentID).
				First(&student).Error; err != nil {
				return err
			}
			student.SetOutstanding(student.StudentOutstandingAmount.Sub(payment.PaymentTransactionAmount))
			student.StudentUpdatedAt = time.Now()
			return tx.Save(&student).Error
		case "expire", "cancel", "deny":
			return tx.Model(&model.PaymentTransactionModel{}).
				Where("payment_transaction_id = ?", payment.PaymentTransactionID).
				Update("payment_transaction_status", model.PaymentStatusCanceled).Error
		default:
			// pending / authorize → biarkan
			return nil
		}
	})
}

/* =========================================================
   PAYMENT EXEMPTIONS
========================================================= */

// CreateExemption menolak rentang yang overlap dengan dispensasi aktif
// lain milik penghuni yang sama.
func (s *PaymentService) CreateExemption(asramaID uuid.UUID, studentID uuid.UUID, start, end time.Time, reason *string) (*model.PaymentExemptionModel, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	var exemption *model.PaymentExemptionModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.
			Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", studentID, asramaID).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		var overlap int64
		if err := tx.Model(&model.PaymentExemptionModel{}).
			Where("exemption_student_id = ? AND exemption_is_active = ? AND exemption_deleted_at IS NULL", studentID, true).
			Where("exemption_start_date <= ? AND exemption_end_date >= ?", end, start).
			Count(&overlap).Error; err != nil {
			return err
		}
		if overlap > 0 {
			return ErrExemptionOverlap
		}

		exemption = &model.PaymentExemptionModel{
			ExemptionID:        uuid.New(),
			ExemptionAsramaID:  asramaID,
			ExemptionStudentID: studentID,
			ExemptionStartDate: start,
			ExemptionEndDate:   end,
			ExemptionIsActive:  true,
			ExemptionReason:    reason,
		}
		return tx.Create(exemption).Error
	})
	if err != nil {
		return nil, err
	}
	return exemption, nil
}

func (s *PaymentService) UpdateExemption(asramaID, exemptionID uuid.UUID, req *dto.UpdateExemptionRequest) (*model.PaymentExemptionModel, error) {
	var exemption model.PaymentExemptionModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("exemption_id = ? AND exemption_asrama_id = ? AND exemption_deleted_at IS NULL", exemptionID, asramaID).
			First(&exemption).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrExemptionNotFound
			}
			return err
		}

		if req.StartDate != nil {
			d, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				return ErrInvalidDateRange
			}
			exemption.ExemptionStartDate = d
		}
		if req.EndDate != nil {
			d, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				return ErrInvalidDateRange
			}
			exemption.ExemptionEndDate = d
		}
		if exemption.ExemptionStartDate.After(exemption.ExemptionEndDate) {
			return ErrInvalidDateRange
		}
		if req.Reason != nil {
			exemption.ExemptionReason = req.Reason
		}
		if req.IsActive != nil {
			exemption.ExemptionIsActive = *req.IsActive
		}

		// rentang baru tetap tidak boleh tabrakan dengan dispensasi aktif lain
		if exemption.ExemptionIsActive {
			var overlap int64
			if err := tx.Model(&model.PaymentExemptionModel{}).
				Where("exemption_student_id = ? AND exemption_is_active = ? AND exemption_deleted_at IS NULL", exemption.ExemptionStudentID, true).
				Where("exemption_id <> ?", exemption.ExemptionID).
				Where("exemption_start_date <= ? AND exemption_end_date >= ?", exemption.ExemptionEndDate, exemption.ExemptionStartDate).
				Count(&overlap).Error; err != nil {
				return err
			}
			if overlap > 0 {
				return ErrExemptionOverlap
			}
		}

		exemption.ExemptionUpdatedAt = time.Now()
		return tx.Save(&exemption).Error
	})
	if err != nil {
		return nil, err
	}
	return &exemption, nil
}

func (s *PaymentService) DeleteExemption(asramaID, exemptionID uuid.UUID) error {
	now := time.Now()
	res := s.DB.Model(&model.PaymentExemptionModel{}).
		Where("exemption_id = ? AND exemption_asrama_id = ? AND exemption_deleted_at IS NULL", exemptionID, asramaID).
		Update("exemption_deleted_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExemptionNotFound
	}
	return nil
}

// total tunggakan satu asrama (dipakai laporan keuangan ringkas)
func (s *PaymentService) TotalOutstanding(asramaID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.DB.Model(&studentModel.StudentModel{}).
		Select("SUM(student_outstanding_amount)").
		Where("student_asrama_id = ? AND student_deleted_at IS NULL", asramaID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
