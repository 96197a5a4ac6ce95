// file: internals/features/meals/meal_transactions/model/meal_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"asramaku_backend/internals/helpers/dbtime"
)

// Dua jenis makan dengan id tetap (breakfast+dinner satu paket, lunch sendiri)
const (
	MealTypeBreakfastDinner = 1
	MealTypeLunch           = 2
)

func MealTypeName(id int) string {
	switch id {
	case MealTypeBreakfastDinner:
		return "Sarapan & Makan Malam"
	case MealTypeLunch:
		return "Makan Siang"
	default:
		return "Tidak dikenal"
	}
}

/*
  meal_transactions = bukti scan makan (immutable)
  - Dibuat HANYA oleh ScanService, tidak pernah di-update
  - Unik per (student, meal_type, tanggal) — ditegakkan unique index komposit,
    bukan cuma pengecekan aplikasi, supaya dua scan paralel tidak dobel insert
*/

type MealTransactionModel struct {
	MealTransactionID       uuid.UUID `gorm:"column:meal_transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"meal_transaction_id"`
	MealTransactionAsramaID uuid.UUID `gorm:"column:meal_transaction_asrama_id;type:uuid;not null;index" json:"meal_transaction_asrama_id"`

	MealTransactionStudentID  uuid.UUID `gorm:"column:meal_transaction_student_id;type:uuid;not null;uniqueIndex:uq_meal_tx_student_type_date" json:"meal_transaction_student_id"`
	MealTransactionMealTypeID int       `gorm:"column:meal_transaction_meal_type_id;not null;uniqueIndex:uq_meal_tx_student_type_date" json:"meal_transaction_meal_type_id"`
	MealTransactionDate       time.Time `gorm:"column:meal_transaction_date;type:date;not null;uniqueIndex:uq_meal_tx_student_type_date" json:"meal_transaction_date"`

	MealTransactionTime      dbtime.Tod `gorm:"column:meal_transaction_time;type:time" json:"meal_transaction_time"`
	MealTransactionScannedAt time.Time  `gorm:"column:meal_transaction_scanned_at;not null;default:now()" json:"meal_transaction_scanned_at"`

	MealTransactionRecordedBy *uuid.UUID `gorm:"column:meal_transaction_recorded_by;type:uuid" json:"meal_transaction_recorded_by"`

	MealTransactionCreatedAt time.Time  `gorm:"column:meal_transaction_created_at;not null;default:now()" json:"meal_transaction_created_at"`
	MealTransactionDeletedAt *time.Time `gorm:"column:meal_transaction_deleted_at;index" json:"meal_transaction_deleted_at"`
}

func (MealTransactionModel) TableName() string {
	return "meal_transactions"
}
