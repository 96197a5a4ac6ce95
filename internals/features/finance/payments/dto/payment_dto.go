// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"asramaku_backend/internals/features/finance/payments/model"
)

/* ===== PAYMENT TRANSACTION ===== */

type CreatePaymentRequest struct {
	StudentID uuid.UUID       `json:"payment_transaction_student_id" validate:"required"`
	Amount    decimal.Decimal `json:"payment_transaction_amount" validate:"required"`
	Method    string          `json:"payment_transaction_method" validate:"required,oneof=cash bank_transfer gateway other"`
	Note      *string         `json:"payment_transaction_note" validate:"omitempty,max=255"`
	Meta      datatypes.JSON  `json:"payment_transaction_meta"`
}

type PaymentResponse struct {
	PaymentTransactionID uuid.UUID           `json:"payment_transaction_id"`
	StudentID            uuid.UUID           `json:"payment_transaction_student_id"`
	Amount               decimal.Decimal     `json:"payment_transaction_amount"`
	Method               model.PaymentMethod `json:"payment_transaction_method"`
	Status               model.PaymentStatus `json:"payment_transaction_status"`
	ExternalID           *string             `json:"payment_transaction_external_id,omitempty"`
	CheckoutURL          *string             `json:"payment_transaction_checkout_url,omitempty"`
	Note                 *string             `json:"payment_transaction_note"`
	CreatedAt            time.Time           `json:"payment_transaction_created_at"`

	// saldo tunggakan setelah transaksi ini diproses
	RemainingOutstanding decimal.Decimal `json:"remaining_outstanding"`
}

func NewPaymentResponse(m *model.PaymentTransactionModel, remaining decimal.Decimal) *PaymentResponse {
	return &PaymentResponse{
		PaymentTransactionID: m.PaymentTransactionID,
		StudentID:            m.PaymentTransactionStudentID,
		Amount:               m.PaymentTransactionAmount,
		Method:               m.PaymentTransactionMethod,
		Status:               m.PaymentTransactionStatus,
		ExternalID:           m.PaymentTransactionExternalID,
		CheckoutURL:          m.PaymentTransactionCheckoutURL,
		Note:                 m.PaymentTransactionNote,
		CreatedAt:            m.PaymentTransactionCreatedAt,
		RemainingOutstanding: remaining,
	}
}

/* ===== GATEWAY NOTIFICATION (webhook Midtrans) ===== */

type GatewayNotificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
}

/* ===== PAYMENT EXEMPTION ===== */

type CreateExemptionRequest struct {
	StudentID uuid.UUID `json:"exemption_student_id" validate:"required"`
	StartDate string    `json:"exemption_start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"exemption_end_date" validate:"required,datetime=2006-01-02"`
	Reason    *string   `json:"exemption_reason" validate:"omitempty,max=255"`
}

type UpdateExemptionRequest struct {
	StartDate *string `json:"exemption_start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"exemption_end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"exemption_reason" validate:"omitempty,max=255"`
	IsActive  *bool   `json:"exemption_is_active"`
}

type ExemptionResponse struct {
	ExemptionID uuid.UUID `json:"exemption_id"`
	StudentID   uuid.UUID `json:"exemption_student_id"`
	StartDate   time.Time `json:"exemption_start_date"`
	EndDate     time.Time `json:"exemption_end_date"`
	IsActive    bool      `json:"exemption_is_active"`
	Reason      *string   `json:"exemption_reason"`
	CreatedAt   time.Time `json:"exemption_created_at"`
}

func NewExemptionResponse(m *model.PaymentExemptionModel) *ExemptionResponse {
	return &ExemptionResponse{
		ExemptionID: m.ExemptionID,
		StudentID:   m.ExemptionStudentID,
		StartDate:   m.ExemptionStartDate,
		EndDate:     m.ExemptionEndDate,
		IsActive:    m.ExemptionIsActive,
		Reason:      m.ExemptionReason,
		CreatedAt:   m.ExemptionCreatedAt,
	}
}
