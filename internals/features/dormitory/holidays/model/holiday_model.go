// file: internals/features/dormitory/holidays/model/holiday_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/*
  holidays = izin pulang / cuti penghuni
  - Interval tanggal inklusif [start, end], kolom DATE (jam 00:00 UTC)
  - Boleh lebih dari satu per student
  - Dipakai untuk men-skip hitungan "missed meal" selama interval
*/

type HolidayModel struct {
	HolidayID       uuid.UUID `gorm:"column:holiday_id;type:uuid;default:gen_random_uuid();primaryKey" json:"holiday_id"`
	HolidayAsramaID uuid.UUID `gorm:"column:holiday_asrama_id;type:uuid;not null;index" json:"holiday_asrama_id"`
	HolidayStudentID uuid.UUID `gorm:"column:holiday_student_id;type:uuid;not null;index" json:"holiday_student_id"`

	HolidayStartDate time.Time `gorm:"column:holiday_start_date;type:date;not null" json:"holiday_start_date"`
	HolidayEndDate   time.Time `gorm:"column:holiday_end_date;type:date;not null" json:"holiday_end_date"`

	HolidayReason *string `gorm:"column:holiday_reason" json:"holiday_reason"`

	HolidayCreatedAt time.Time  `gorm:"column:holiday_created_at;not null;default:now()" json:"holiday_created_at"`
	HolidayUpdatedAt time.Time  `gorm:"column:holiday_updated_at;not null;default:now()" json:"holiday_updated_at"`
	HolidayDeletedAt *time.Time `gorm:"column:holiday_deleted_at;index" json:"holiday_deleted_at"`
}

func (HolidayModel) TableName() string {
	return "holidays"
}

// Covers: true kalau date (date-only) ada di [start, end] inklusif.
func (m *HolidayModel) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(m.HolidayStartDate) && !d.After(m.HolidayEndDate)
}
