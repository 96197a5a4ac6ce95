// file: internals/features/meals/meal_transactions/dto/scan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	mealModel "asramaku_backend/internals/features/meals/meal_transactions/model"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// ScanMealRequest: satu kali scan kartu/NIK di pos makan
type ScanMealRequest struct {
	NationalID string `json:"national_id" validate:"required,min=5,max=20"`
	MealTypeID int    `json:"meal_type_id" validate:"required,oneof=1 2"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// StudentSnapshot: potret penghuni untuk layar petugas scan
type StudentSnapshot struct {
	StudentID             uuid.UUID       `json:"student_id"`
	StudentNationalID     string          `json:"student_national_id"`
	StudentCode           string          `json:"student_code"`
	StudentFullName       string          `json:"student_full_name"`
	StudentBuildingNumber *string         `json:"student_building_number"`
	StudentRoomNumber     *string         `json:"student_room_number"`
	StudentIsExempt       bool            `json:"student_is_exempt_from_fees"`
	StudentHasOutstanding bool            `json:"student_has_outstanding_payment"`
	StudentOutstanding    decimal.Decimal `json:"student_outstanding_amount"`
	StudentIsDeleted      bool            `json:"student_is_deleted"`
}

func NewStudentSnapshot(m *studentModel.StudentModel) *StudentSnapshot {
	if m == nil {
		return nil
	}
	return &StudentSnapshot{
		StudentID:             m.StudentID,
		StudentNationalID:     m.StudentNationalID,
		StudentCode:           m.StudentCode,
		StudentFullName:       m.StudentFullName,
		StudentBuildingNumber: m.StudentBuildingNumber,
		StudentRoomNumber:     m.StudentRoomNumber,
		StudentIsExempt:       m.StudentIsExemptFromFees,
		StudentHasOutstanding: m.StudentHasOutstandingPayment,
		StudentOutstanding:    m.StudentOutstandingAmount,
		StudentIsDeleted:      m.IsDeleted(),
	}
}

// ScanResultResponse: hasil bisnis satu scan.
// success=false adalah outcome normal (bukan error HTTP) — pesan untuk layar petugas.
type ScanResultResponse struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	MealTypeID   int              `json:"meal_type_id"`
	MealTypeName string           `json:"meal_type_name"`
	Student      *StudentSnapshot `json:"student,omitempty"`
	// Saat duplikat: waktu transaksi PERTAMA, bukan waktu percobaan kedua
	ScanTime *time.Time `json:"scan_time,omitempty"`
}

// TransactionResponse: representasi baris meal_transactions
type TransactionResponse struct {
	MealTransactionID uuid.UUID  `json:"meal_transaction_id"`
	StudentID         uuid.UUID  `json:"student_id"`
	MealTypeID        int        `json:"meal_type_id"`
	MealTypeName      string     `json:"meal_type_name"`
	Date              time.Time  `json:"date"`
	ScannedAt         time.Time  `json:"scanned_at"`
	RecordedBy        *uuid.UUID `json:"recorded_by,omitempty"`
}

func NewTransactionResponse(m *mealModel.MealTransactionModel) *TransactionResponse {
	return &TransactionResponse{
		MealTransactionID: m.MealTransactionID,
		StudentID:         m.MealTransactionStudentID,
		MealTypeID:        m.MealTransactionMealTypeID,
		MealTypeName:      mealModel.MealTypeName(m.MealTransactionMealTypeID),
		Date:              m.MealTransactionDate,
		ScannedAt:         m.MealTransactionScannedAt,
		RecordedBy:        m.MealTransactionRecordedBy,
	}
}
