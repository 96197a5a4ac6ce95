// file: internals/features/meals/meal_transactions/service/eligibility_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/helpers/dbtime"
)

func todAt(h, m, s int) dbtime.Tod {
	return dbtime.From(time.Date(2026, 3, 2, h, m, s, 0, time.UTC))
}

func dateAt(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func TestIsMealTimeWindowOpen(t *testing.T) {
	cases := []struct {
		name       string
		mealTypeID int
		tod        dbtime.Tod
		want       bool
	}{
		// sarapan: [07:00, 10:00] inklusif dua sisi
		{"sarapan sebelum buka", model.MealTypeBreakfastDinner, todAt(6, 59, 59), false},
		{"sarapan tepat buka", model.MealTypeBreakfastDinner, todAt(7, 0, 0), true},
		{"sarapan tepat tutup", model.MealTypeBreakfastDinner, todAt(10, 0, 0), true},
		{"sarapan sedetik lewat tutup", model.MealTypeBreakfastDinner, todAt(10, 0, 1), false},
		// jeda siang: paket sarapan+malam tutup
		{"paket 1 jam makan siang", model.MealTypeBreakfastDinner, todAt(13, 30, 0), false},
		// makan malam: [18:00, 21:00]
		{"malam sebelum buka", model.MealTypeBreakfastDinner, todAt(17, 59, 59), false},
		{"malam tepat buka", model.MealTypeBreakfastDinner, todAt(18, 0, 0), true},
		{"malam tepat tutup", model.MealTypeBreakfastDinner, todAt(21, 0, 0), true},
		{"malam lewat tutup", model.MealTypeBreakfastDinner, todAt(21, 0, 1), false},
		// makan siang: 13:00 sampai ganti hari
		{"siang sebelum buka", model.MealTypeLunch, todAt(12, 59, 59), false},
		{"siang tepat buka", model.MealTypeLunch, todAt(13, 0, 0), true},
		{"siang larut malam", model.MealTypeLunch, todAt(23, 59, 59), true},
		{"siang pagi hari", model.MealTypeLunch, todAt(8, 0, 0), false},
		// meal type tak dikenal → selalu tutup
		{"meal type tak dikenal", 99, todAt(12, 0, 0), false},
		{"meal type nol", 0, todAt(8, 0, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMealTimeWindowOpen(tc.mealTypeID, tc.tod))
		})
	}
}

func TestIsStudentEligibleForDate(t *testing.T) {
	date := dateAt(2026, 3, 10)
	covering := paymentModel.PaymentExemptionModel{
		ExemptionIsActive:  true,
		ExemptionStartDate: dateAt(2026, 3, 1),
		ExemptionEndDate:   dateAt(2026, 3, 31),
	}
	notCovering := paymentModel.PaymentExemptionModel{
		ExemptionIsActive:  true,
		ExemptionStartDate: dateAt(2026, 2, 1),
		ExemptionEndDate:   dateAt(2026, 2, 28),
	}
	inactive := covering
	inactive.ExemptionIsActive = false

	cases := []struct {
		name       string
		student    studentModel.StudentModel
		exemptions []paymentModel.PaymentExemptionModel
		want       bool
	}{
		{
			name:    "tanpa tunggakan selalu boleh",
			student: studentModel.StudentModel{},
			want:    true,
		},
		{
			name: "bebas iuran menang atas tunggakan",
			student: studentModel.StudentModel{
				StudentIsExemptFromFees:      true,
				StudentHasOutstandingPayment: true,
			},
			want: true,
		},
		{
			name:    "nunggak tanpa dispensasi ditolak",
			student: studentModel.StudentModel{StudentHasOutstandingPayment: true},
			want:    false,
		},
		{
			name:       "nunggak dengan dispensasi yang meliputi tanggal",
			student:    studentModel.StudentModel{StudentHasOutstandingPayment: true},
			exemptions: []paymentModel.PaymentExemptionModel{covering},
			want:       true,
		},
		{
			name:       "dispensasi di luar tanggal tidak menolong",
			student:    studentModel.StudentModel{StudentHasOutstandingPayment: true},
			exemptions: []paymentModel.PaymentExemptionModel{notCovering},
			want:       false,
		},
		{
			name:       "dispensasi nonaktif tidak dihitung",
			student:    studentModel.StudentModel{StudentHasOutstandingPayment: true},
			exemptions: []paymentModel.PaymentExemptionModel{inactive},
			want:       false,
		},
		{
			name:       "cukup satu dari beberapa dispensasi",
			student:    studentModel.StudentModel{StudentHasOutstandingPayment: true},
			exemptions: []paymentModel.PaymentExemptionModel{notCovering, inactive, covering},
			want:       true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStudentEligibleForDate(&tc.student, tc.exemptions, date))
		})
	}
}

func TestIsOnHoliday(t *testing.T) {
	h := holidayModel.HolidayModel{
		HolidayID:        uuid.New(),
		HolidayStartDate: dateAt(2026, 3, 5),
		HolidayEndDate:   dateAt(2026, 3, 8),
	}
	holidays := []holidayModel.HolidayModel{h}

	assert.False(t, IsOnHoliday(holidays, dateAt(2026, 3, 4)), "sehari sebelum mulai")
	assert.True(t, IsOnHoliday(holidays, dateAt(2026, 3, 5)), "hari pertama inklusif")
	assert.True(t, IsOnHoliday(holidays, dateAt(2026, 3, 6)))
	assert.True(t, IsOnHoliday(holidays, dateAt(2026, 3, 8)), "hari terakhir inklusif")
	assert.False(t, IsOnHoliday(holidays, dateAt(2026, 3, 9)), "sehari setelah selesai")
	assert.False(t, IsOnHoliday(nil, dateAt(2026, 3, 6)), "tanpa izin pulang")

	// jam berapa pun di hari yang sama tetap dihitung libur
	assert.True(t, IsOnHoliday(holidays, time.Date(2026, 3, 8, 23, 30, 0, 0, time.UTC)))
}
