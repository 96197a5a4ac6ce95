// file: internals/features/dormitory/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"asramaku_backend/internals/features/dormitory/students/model"
)

/* ===== REQUEST ===== */

type CreateStudentRequest struct {
	StudentNationalID string  `json:"student_national_id" validate:"required,min=5,max=20"`
	StudentCode       string  `json:"student_code" validate:"required,max=30"`
	StudentFullName   string  `json:"student_full_name" validate:"required,max=100"`
	BuildingNumber    *string `json:"student_building_number" validate:"omitempty,max=10"`
	RoomNumber        *string `json:"student_room_number" validate:"omitempty,max=10"`
	Government        *string `json:"student_government" validate:"omitempty,max=50"`
	District          *string `json:"student_district" validate:"omitempty,max=50"`
	Faculty           *string `json:"student_faculty" validate:"omitempty,max=50"`
	Phone             *string `json:"student_phone" validate:"omitempty,max=20"`
	IsExemptFromFees  *bool   `json:"student_is_exempt_from_fees"`
	// saldo awal tunggakan (mis. migrasi data lama); boleh kosong
	OutstandingAmount *decimal.Decimal `json:"student_outstanding_amount"`
}

type UpdateStudentRequest struct {
	StudentCode       *string          `json:"student_code" validate:"omitempty,max=30"`
	StudentFullName   *string          `json:"student_full_name" validate:"omitempty,max=100"`
	BuildingNumber    *string          `json:"student_building_number" validate:"omitempty,max=10"`
	RoomNumber        *string          `json:"student_room_number" validate:"omitempty,max=10"`
	Government        *string          `json:"student_government" validate:"omitempty,max=50"`
	District          *string          `json:"student_district" validate:"omitempty,max=50"`
	Faculty           *string          `json:"student_faculty" validate:"omitempty,max=50"`
	Phone             *string          `json:"student_phone" validate:"omitempty,max=20"`
	IsExemptFromFees  *bool            `json:"student_is_exempt_from_fees"`
	OutstandingAmount *decimal.Decimal `json:"student_outstanding_amount"`
}

/* ===== RESPONSE ===== */

type StudentResponse struct {
	StudentID             uuid.UUID       `json:"student_id"`
	StudentNationalID     string          `json:"student_national_id"`
	StudentCode           string          `json:"student_code"`
	StudentFullName       string          `json:"student_full_name"`
	BuildingNumber        *string         `json:"student_building_number"`
	RoomNumber            *string         `json:"student_room_number"`
	Government            *string         `json:"student_government"`
	District              *string         `json:"student_district"`
	Faculty               *string         `json:"student_faculty"`
	Phone                 *string         `json:"student_phone"`
	IsExemptFromFees      bool            `json:"student_is_exempt_from_fees"`
	HasOutstandingPayment bool            `json:"student_has_outstanding_payment"`
	OutstandingAmount     decimal.Decimal `json:"student_outstanding_amount"`
	CreatedAt             time.Time       `json:"student_created_at"`
	UpdatedAt             time.Time       `json:"student_updated_at"`
}

func NewStudentResponse(m *model.StudentModel) *StudentResponse {
	return &StudentResponse{
		StudentID:             m.StudentID,
		StudentNationalID:     m.StudentNationalID,
		StudentCode:           m.StudentCode,
		StudentFullName:       m.StudentFullName,
		BuildingNumber:        m.StudentBuildingNumber,
		RoomNumber:            m.StudentRoomNumber,
		Government:            m.StudentGovernment,
		District:              m.StudentDistrict,
		Faculty:               m.StudentFaculty,
		Phone:                 m.StudentPhone,
		IsExemptFromFees:      m.StudentIsExemptFromFees,
		HasOutstandingPayment: m.StudentHasOutstandingPayment,
		OutstandingAmount:     m.StudentOutstandingAmount,
		CreatedAt:             m.StudentCreatedAt,
		UpdatedAt:             m.StudentUpdatedAt,
	}
}
