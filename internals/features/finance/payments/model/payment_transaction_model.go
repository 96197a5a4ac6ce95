// file: internals/features/finance/payments/model/payment_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodGateway      PaymentMethod = "gateway"
	PaymentMethodOther        PaymentMethod = "other"
)

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

/*
  payment_transactions = catatan pembayaran tunggakan (immutable)
  - Create → kurangi student_outstanding_amount (lewat SetOutstanding, dalam 1 tx DB)
  - Soft delete → kembalikan potongannya
  - Tidak pernah di-update setelah dibuat
*/

type PaymentTransactionModel struct {
	PaymentTransactionID        uuid.UUID `gorm:"column:payment_transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_transaction_id"`
	PaymentTransactionAsramaID  uuid.UUID `gorm:"column:payment_transaction_asrama_id;type:uuid;not null;index" json:"payment_transaction_asrama_id"`
	PaymentTransactionStudentID uuid.UUID `gorm:"column:payment_transaction_student_id;type:uuid;not null;index" json:"payment_transaction_student_id"`

	PaymentTransactionAmount decimal.Decimal `gorm:"column:payment_transaction_amount;type:numeric(12,2);not null" json:"payment_transaction_amount"`
	PaymentTransactionMethod PaymentMethod   `gorm:"column:payment_transaction_method;not null;default:'cash'" json:"payment_transaction_method"`
	PaymentTransactionStatus PaymentStatus   `gorm:"column:payment_transaction_status;not null;default:'paid'" json:"payment_transaction_status"`

	// Gateway (Snap) — terisi hanya untuk method=gateway
	PaymentTransactionExternalID  *string `gorm:"column:payment_transaction_external_id" json:"payment_transaction_external_id"`
	PaymentTransactionCheckoutURL *string `gorm:"column:payment_transaction_checkout_url" json:"payment_transaction_checkout_url"`

	PaymentTransactionNote *string        `gorm:"column:payment_transaction_note" json:"payment_transaction_note"`
	PaymentTransactionMeta datatypes.JSON `gorm:"column:payment_transaction_meta;type:jsonb" json:"payment_transaction_meta"`

	PaymentTransactionRecordedBy *uuid.UUID `gorm:"column:payment_transaction_recorded_by;type:uuid" json:"payment_transaction_recorded_by"`

	PaymentTransactionCreatedAt time.Time  `gorm:"column:payment_transaction_created_at;not null;default:now()" json:"payment_transaction_created_at"`
	PaymentTransactionDeletedAt *time.Time `gorm:"column:payment_transaction_deleted_at;index" json:"payment_transaction_deleted_at"`
}

func (PaymentTransactionModel) TableName() string {
	return "payment_transactions"
}
