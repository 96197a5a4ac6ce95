// file: internals/features/finance/payments/model/payment_exemption_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/*
  payment_exemptions = dispensasi tunggakan
  - Interval [start, end] inklusif; student boleh makan walau masih nunggak
  - Invariant (dicek saat create/update): exemption aktif milik 1 student
    tidak boleh saling overlap (start ≤ other.end AND end ≥ other.start)
*/

type PaymentExemptionModel struct {
	ExemptionID        uuid.UUID `gorm:"column:exemption_id;type:uuid;default:gen_random_uuid();primaryKey" json:"exemption_id"`
	ExemptionAsramaID  uuid.UUID `gorm:"column:exemption_asrama_id;type:uuid;not null;index" json:"exemption_asrama_id"`
	ExemptionStudentID uuid.UUID `gorm:"column:exemption_student_id;type:uuid;not null;index" json:"exemption_student_id"`

	ExemptionStartDate time.Time `gorm:"column:exemption_start_date;type:date;not null" json:"exemption_start_date"`
	ExemptionEndDate   time.Time `gorm:"column:exemption_end_date;type:date;not null" json:"exemption_end_date"`
	ExemptionIsActive  bool      `gorm:"column:exemption_is_active;not null;default:true" json:"exemption_is_active"`

	ExemptionReason *string `gorm:"column:exemption_reason" json:"exemption_reason"`

	ExemptionCreatedAt time.Time  `gorm:"column:exemption_created_at;not null;default:now()" json:"exemption_created_at"`
	ExemptionUpdatedAt time.Time  `gorm:"column:exemption_updated_at;not null;default:now()" json:"exemption_updated_at"`
	ExemptionDeletedAt *time.Time `gorm:"column:exemption_deleted_at;index" json:"exemption_deleted_at"`
}

func (PaymentExemptionModel) TableName() string {
	return "payment_exemptions"
}

// CoversDate: exemption aktif dan date (date-only) ada di intervalnya.
func (m *PaymentExemptionModel) CoversDate(date time.Time) bool {
	if !m.ExemptionIsActive {
		return false
	}
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(m.ExemptionStartDate) && !d.After(m.ExemptionEndDate)
}

// OverlapsRange: tes overlap interval standar (inklusif dua sisi).
func (m *PaymentExemptionModel) OverlapsRange(start, end time.Time) bool {
	return !m.ExemptionStartDate.After(end) && !m.ExemptionEndDate.Before(start)
}
