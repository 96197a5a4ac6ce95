// file: internals/features/meals/meal_transactions/service/scan_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/meals/meal_transactions/dto"
	mealModel "asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/helpers/dbtime"
)

/*
  ScanService = pintu tunggal pembuatan meal_transactions.
  Urutan pengecekan menentukan pesan yang dilihat petugas; cabang pertama yang
  kena yang menang. Insert + pengecekan duplikat jalan dalam satu transaksi DB,
  dan unique index (student, meal_type, date) jadi pagar terakhir kalau ada dua
  scan paralel.
*/

type ScanService struct {
	DB *gorm.DB
}

func NewScanService(db *gorm.DB) *ScanService {
	return &ScanService{DB: db}
}

// Pesan bisnis (bukan error HTTP)
const (
	MsgStudentNotFound   = "Data penghuni tidak ditemukan"
	MsgStudentInactive   = "Akun penghuni sudah nonaktif"
	MsgWrongAsrama       = "Penghuni terdaftar di asrama lain"
	MsgOutsideMealWindow = "Di luar jam makan untuk jenis makan ini"
	MsgStudentOnLeave    = "Penghuni sedang izin pulang"
	MsgOutstandingUnpaid = "Masih ada tunggakan dan tidak ada dispensasi aktif"
	MsgAlreadyScanned    = "Jatah makan ini sudah diambil hari ini"
	MsgScanOK            = "Scan berhasil, selamat makan 🍽️"
)

// IsTimeValidForMealType: cek jendela waktu saja (untuk pre-check UI petugas).
func (s *ScanService) IsTimeValidForMealType(mealTypeID int, now time.Time) bool {
	return IsMealTimeWindowOpen(mealTypeID, dbtime.From(now))
}

// ScanMeal memproses satu permintaan scan. Error hanya untuk kondisi teknis
// (DB down, data korup); semua penolakan bisnis dikembalikan sebagai
// ScanResultResponse{success:false}.
func (s *ScanService) ScanMeal(asramaID uuid.UUID, nationalID string, mealTypeID int, now time.Time, recordedBy *uuid.UUID) (*dto.ScanResultResponse, error) {
	res := &dto.ScanResultResponse{
		Success:      false,
		MealTypeID:   mealTypeID,
		MealTypeName: mealModel.MealTypeName(mealTypeID),
	}
	today := dbtime.DateOnly(now)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 1) Lookup by NIK — sengaja TANPA filter soft-delete & tenant,
		//    supaya cabang 2 & 3 bisa kasih pesan yang tepat.
		var st studentModel.StudentModel
		if err := tx.Where("student_national_id = ?", strings.TrimSpace(nationalID)).
			Take(&st).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Message = MsgStudentNotFound
				return nil
			}
			return err
		}
		res.Student = dto.NewStudentSnapshot(&st)

		// 2) Akun nonaktif (snapshot tetap dikirim buat layar petugas)
		if st.IsDeleted() {
			res.Message = MsgStudentInactive
			return nil
		}

		// 3) Isolasi tenant
		if st.StudentAsramaID != asramaID {
			res.Message = MsgWrongAsrama
			return nil
		}

		// 4) Jendela waktu
		if !IsMealTimeWindowOpen(mealTypeID, dbtime.From(now)) {
			res.Message = MsgOutsideMealWindow
			return nil
		}

		// 5) Sedang izin pulang?
		var holidays []holidayModel.HolidayModel
		if err := tx.Where("holiday_student_id = ? AND holiday_deleted_at IS NULL", st.StudentID).
			Where("holiday_start_date <= ? AND holiday_end_date >= ?", today, today).
			Find(&holidays).Error; err != nil {
			return err
		}
		if IsOnHoliday(holidays, today) {
			res.Message = MsgStudentOnLeave
			return nil
		}

		// 6) Kelayakan pembayaran
		var exemptions []paymentModel.PaymentExemptionModel
		if st.StudentHasOutstandingPayment && !st.StudentIsExemptFromFees {
			if err := tx.Where("exemption_student_id = ? AND exemption_is_active = ? AND exemption_deleted_at IS NULL", st.StudentID, true).
				Where("exemption_start_date <= ? AND exemption_end_date >= ?", today, today).
				Find(&exemptions).Error; err != nil {
				return err
			}
		}
		if !IsStudentEligibleForDate(&st, exemptions, today) {
			res.Message = MsgOutstandingUnpaid
			return nil
		}

		// 7) Duplikat: sudah ada transaksi (student, meal_type, hari ini)?
		//    Waktu yang dikembalikan = waktu transaksi PERTAMA.
		var existing mealModel.MealTransactionModel
		err := tx.Where("meal_transaction_student_id = ? AND meal_transaction_meal_type_id = ? AND meal_transaction_date = ?",
			st.StudentID, mealTypeID, today).
			Where("meal_transaction_deleted_at IS NULL").
			Take(&existing).Error
		if err == nil {
			res.Message = MsgAlreadyScanned
			prev := existing.MealTransactionScannedAt
			res.ScanTime = &prev
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 8) Rekam transaksi baru, distempel `now` (tanggal + jam dipisah)
		m := mealModel.MealTransactionModel{
			MealTransactionID:         uuid.New(),
			MealTransactionAsramaID:   asramaID,
			MealTransactionStudentID:  st.StudentID,
			MealTransactionMealTypeID: mealTypeID,
			MealTransactionDate:       today,
			MealTransactionTime:       dbtime.From(now),
			MealTransactionScannedAt:  now,
			MealTransactionRecordedBy: recordedBy,
			MealTransactionCreatedAt:  now,
		}
		//    Insert di dalam savepoint: di Postgres pelanggaran unique
		//    meng-abort transaksi, jadi harus rollback ke savepoint dulu
		//    sebelum bisa membaca ulang pemenangnya.
		if err := tx.SavePoint("scan_insert").Error; err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			// Kalah balapan dengan scan paralel → perlakukan sebagai duplikat,
			// ambil ulang transaksi pemenangnya.
			if isUniqueViolation(err) {
				if err2 := tx.RollbackTo("scan_insert").Error; err2 != nil {
					return err2
				}
				var winner mealModel.MealTransactionModel
				if err2 := tx.Where("meal_transaction_student_id = ? AND meal_transaction_meal_type_id = ? AND meal_transaction_date = ?",
					st.StudentID, mealTypeID, today).
					Take(&winner).Error; err2 == nil {
					res.Message = MsgAlreadyScanned
					prev := winner.MealTransactionScannedAt
					res.ScanTime = &prev
					return nil
				}
				return err
			}
			return err
		}

		res.Success = true
		res.Message = MsgScanOK
		scanAt := now
		res.ScanTime = &scanAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isUniqueViolation: deteksi pelanggaran unique index lintas driver
// (pgx: SQLSTATE 23505, sqlite: "UNIQUE constraint failed").
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
