// file: internals/features/dormitory/holidays/dto/holiday_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"asramaku_backend/internals/features/dormitory/holidays/model"
)

type CreateHolidayRequest struct {
	StudentID uuid.UUID `json:"holiday_student_id" validate:"required"`
	StartDate string    `json:"holiday_start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"holiday_end_date" validate:"required,datetime=2006-01-02"`
	Reason    *string   `json:"holiday_reason" validate:"omitempty,max=255"`
}

type UpdateHolidayRequest struct {
	StartDate *string `json:"holiday_start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"holiday_end_date" validate:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"holiday_reason" validate:"omitempty,max=255"`
}

type HolidayResponse struct {
	HolidayID uuid.UUID `json:"holiday_id"`
	StudentID uuid.UUID `json:"holiday_student_id"`
	StartDate time.Time `json:"holiday_start_date"`
	EndDate   time.Time `json:"holiday_end_date"`
	Reason    *string   `json:"holiday_reason"`
	CreatedAt time.Time `json:"holiday_created_at"`
}

func NewHolidayResponse(m *model.HolidayModel) *HolidayResponse {
	return &HolidayResponse{
		HolidayID: m.HolidayID,
		StudentID: m.HolidayStudentID,
		StartDate: m.HolidayStartDate,
		EndDate:   m.HolidayEndDate,
		Reason:    m.HolidayReason,
		CreatedAt: m.HolidayCreatedAt,
	}
}
