// file: internals/features/meals/meal_transactions/service/eligibility_service.go
package service

import (
	"time"

	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	mealModel "asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/helpers/dbtime"
)

/*
  Aturan kelayakan makan. Semua fungsi pure (tanpa DB) supaya gampang ditest,
  dipakai identik oleh scan, laporan harian, dan laporan rentang tanggal.
*/

// Jendela waktu per meal type (detik sejak 00:00, inklusif dua sisi)
const (
	breakfastOpen  = 7 * 3600  // 07:00
	breakfastClose = 10 * 3600 // 10:00
	dinnerOpen     = 18 * 3600 // 18:00
	dinnerClose    = 21 * 3600 // 21:00
	lunchOpen      = 13 * 3600 // 13:00 (tutup = akhir hari)
)

// IsMealTimeWindowOpen: apakah meal type boleh discan pada jam tsb.
// Meal type tak dikenal → selalu tutup (default aman, bukan error).
func IsMealTimeWindowOpen(mealTypeID int, t dbtime.Tod) bool {
	sod := t.SecondOfDay()
	switch mealTypeID {
	case mealModel.MealTypeBreakfastDinner:
		return (sod >= breakfastOpen && sod <= breakfastClose) ||
			(sod >= dinnerOpen && sod <= dinnerClose)
	case mealModel.MealTypeLunch:
		return sod >= lunchOpen // 24:00 inklusif = sampai ganti hari
	default:
		return false
	}
}

// IsStudentEligibleForDate: boleh makan pada tanggal tsb?
// - Bebas iuran → selalu boleh
// - Masih nunggak → boleh hanya kalau ada exemption aktif yang meliputi tanggal itu
// - Selain itu → boleh
func IsStudentEligibleForDate(st *studentModel.StudentModel, exemptions []paymentModel.PaymentExemptionModel, date time.Time) bool {
	if st.StudentIsExemptFromFees {
		return true
	}
	if st.StudentHasOutstandingPayment {
		for i := range exemptions {
			if exemptions[i].CoversDate(date) {
				return true
			}
		}
		return false
	}
	return true
}

// IsOnHoliday: ada izin pulang yang meliputi tanggal tsb?
// Hari libur tidak pernah dihitung missed meal.
func IsOnHoliday(holidays []holidayModel.HolidayModel, date time.Time) bool {
	for i := range holidays {
		if holidays[i].Covers(date) {
			return true
		}
	}
	return false
}
