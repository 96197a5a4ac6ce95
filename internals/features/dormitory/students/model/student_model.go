// file: internals/features/dormitory/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
  students = penghuni asrama
  - Identitas utama: NIK (national id), sekunder: kode mahasiswa
  - 1 student milik tepat 1 asrama (tenant) seumur hidupnya
  - student_has_outstanding_payment adalah cache dari (outstanding_amount > 0);
    SELALU mutasi lewat SetOutstanding, jangan tulis dua kolom itu terpisah.
*/

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentAsramaID uuid.UUID `gorm:"column:student_asrama_id;type:uuid;not null;index" json:"student_asrama_id"`

	StudentNationalID string `gorm:"column:student_national_id;uniqueIndex;not null" json:"student_national_id"`
	StudentCode       string `gorm:"column:student_code;index" json:"student_code"`
	StudentFullName   string `gorm:"column:student_full_name;not null" json:"student_full_name"`

	StudentBuildingNumber *string `gorm:"column:student_building_number;index" json:"student_building_number"`
	StudentRoomNumber     *string `gorm:"column:student_room_number" json:"student_room_number"`
	StudentGovernment     *string `gorm:"column:student_government" json:"student_government"`
	StudentDistrict       *string `gorm:"column:student_district" json:"student_district"`
	StudentFaculty        *string `gorm:"column:student_faculty" json:"student_faculty"`
	StudentPhone          *string `gorm:"column:student_phone" json:"student_phone"`

	StudentIsExemptFromFees bool `gorm:"column:student_is_exempt_from_fees;not null;default:false" json:"student_is_exempt_from_fees"`

	// Pasangan denormalized, invariant: has == amount.GreaterThan(0)
	StudentHasOutstandingPayment bool            `gorm:"column:student_has_outstanding_payment;not null;default:false" json:"student_has_outstanding_payment"`
	StudentOutstandingAmount     decimal.Decimal `gorm:"column:student_outstanding_amount;type:numeric(12,2);not null;default:0" json:"student_outstanding_amount"`

	StudentCreatedAt time.Time  `gorm:"column:student_created_at;not null;default:now()" json:"student_created_at"`
	StudentUpdatedAt time.Time  `gorm:"column:student_updated_at;not null;default:now()" json:"student_updated_at"`
	StudentDeletedAt *time.Time `gorm:"column:student_deleted_at;index" json:"student_deleted_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

// SetOutstanding: satu-satunya pintu mutasi pasangan outstanding.
func (m *StudentModel) SetOutstanding(amount decimal.Decimal) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	m.StudentOutstandingAmount = amount
	m.StudentHasOutstandingPayment = amount.GreaterThan(decimal.Zero)
}

// AddOutstanding: tambah (atau kurangi dengan nilai negatif) tunggakan.
func (m *StudentModel) AddOutstanding(delta decimal.Decimal) {
	m.SetOutstanding(m.StudentOutstandingAmount.Add(delta))
}

func (m *StudentModel) IsDeleted() bool {
	return m.StudentDeletedAt != nil
}
