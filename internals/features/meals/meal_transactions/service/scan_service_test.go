// file: internals/features/meals/meal_transactions/service/scan_service_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/helpers/dbtime"
)

// DDL manual karena tag gorm membawa default Postgres (gen_random_uuid, jsonb)
// yang tidak dimengerti SQLite; id selalu di-set dari aplikasi.
var scanTestDDL = []string{
	`CREATE TABLE students (
		student_id TEXT PRIMARY KEY,
		student_asrama_id TEXT NOT NULL,
		student_national_id TEXT NOT NULL UNIQUE,
		student_code TEXT,
		student_full_name TEXT NOT NULL,
		student_building_number TEXT,
		student_room_number TEXT,
		student_government TEXT,
		student_district TEXT,
		student_faculty TEXT,
		student_phone TEXT,
		student_is_exempt_from_fees INTEGER NOT NULL DEFAULT 0,
		student_has_outstanding_payment INTEGER NOT NULL DEFAULT 0,
		student_outstanding_amount NUMERIC NOT NULL DEFAULT 0,
		student_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		student_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		student_deleted_at DATETIME
	)`,
	`CREATE TABLE holidays (
		holiday_id TEXT PRIMARY KEY,
		holiday_asrama_id TEXT NOT NULL,
		holiday_student_id TEXT NOT NULL,
		holiday_start_date DATETIME NOT NULL,
		holiday_end_date DATETIME NOT NULL,
		holiday_reason TEXT,
		holiday_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		holiday_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		holiday_deleted_at DATETIME
	)`,
	`CREATE TABLE payment_exemptions (
		exemption_id TEXT PRIMARY KEY,
		exemption_asrama_id TEXT NOT NULL,
		exemption_student_id TEXT NOT NULL,
		exemption_start_date DATETIME NOT NULL,
		exemption_end_date DATETIME NOT NULL,
		exemption_is_active INTEGER NOT NULL DEFAULT 1,
		exemption_reason TEXT,
		exemption_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		exemption_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		exemption_deleted_at DATETIME
	)`,
	`CREATE TABLE meal_transactions (
		meal_transaction_id TEXT PRIMARY KEY,
		meal_transaction_asrama_id TEXT NOT NULL,
		meal_transaction_student_id TEXT NOT NULL,
		meal_transaction_meal_type_id INTEGER NOT NULL,
		meal_transaction_date DATETIME NOT NULL,
		meal_transaction_time TEXT,
		meal_transaction_scanned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		meal_transaction_recorded_by TEXT,
		meal_transaction_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		meal_transaction_deleted_at DATETIME
	)`,
	`CREATE UNIQUE INDEX uq_meal_tx_student_type_date
		ON meal_transactions (meal_transaction_student_id, meal_transaction_meal_type_id, meal_transaction_date)`,
}

func newScanTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, ddl := range scanTestDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedScanStudent(t *testing.T, db *gorm.DB, asramaID uuid.UUID, nik string) *studentModel.StudentModel {
	t.Helper()
	st := &studentModel.StudentModel{
		StudentID:         uuid.New(),
		StudentAsramaID:   asramaID,
		StudentNationalID: nik,
		StudentCode:       "MHS-" + nik,
		StudentFullName:   "Penghuni " + nik,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

// 08:00 = jendela sarapan terbuka
func breakfastTime() time.Time {
	return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
}

func TestScanMeal_StudentNotFound(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)

	res, err := svc.ScanMeal(uuid.New(), "0000000000", model.MealTypeBreakfastDinner, breakfastTime(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgStudentNotFound, res.Message)
	assert.Nil(t, res.Student)
	assert.Nil(t, res.ScanTime)
}

func TestScanMeal_StudentInactive(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()

	st := seedScanStudent(t, db, asramaID, "3173010001")
	deletedAt := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(st).Update("student_deleted_at", &deletedAt).Error)

	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, breakfastTime(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgStudentInactive, res.Message)
	// snapshot tetap dikirim buat layar petugas
	require.NotNil(t, res.Student)
	assert.True(t, res.Student.StudentIsDeleted)
}

func TestScanMeal_WrongAsrama(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)

	st := seedScanStudent(t, db, uuid.New(), "3173010002")

	res, err := svc.ScanMeal(uuid.New(), st.StudentNationalID, model.MealTypeBreakfastDinner, breakfastTime(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgWrongAsrama, res.Message)
}

func TestScanMeal_OutsideMealWindow(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()
	st := seedScanStudent(t, db, asramaID, "3173010003")

	// 08:00 di luar jendela makan siang (buka 13:00)
	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeLunch, breakfastTime(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgOutsideMealWindow, res.Message)
}

func TestScanMeal_StudentOnLeave(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()
	st := seedScanStudent(t, db, asramaID, "3173010004")

	now := breakfastTime()
	today := dbtime.DateOnly(now)
	require.NoError(t, db.Create(&holidayModel.HolidayModel{
		HolidayID:        uuid.New(),
		HolidayAsramaID:  asramaID,
		HolidayStudentID: st.StudentID,
		HolidayStartDate: today.AddDate(0, 0, -1),
		HolidayEndDate:   today.AddDate(0, 0, 2),
	}).Error)

	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, now, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgStudentOnLeave, res.Message)
}

func TestScanMeal_OutstandingUnpaid(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()

	st := seedScanStudent(t, db, asramaID, "3173010005")
	st.SetOutstanding(decimal.RequireFromString("285.00"))
	require.NoError(t, db.Save(st).Error)

	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, breakfastTime(), nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgOutstandingUnpaid, res.Message)
	require.NotNil(t, res.Student)
	assert.True(t, res.Student.StudentHasOutstanding)
}

func TestScanMeal_OutstandingWithExemption(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()

	st := seedScanStudent(t, db, asramaID, "3173010006")
	st.SetOutstanding(decimal.RequireFromString("95.00"))
	require.NoError(t, db.Save(st).Error)

	now := breakfastTime()
	today := dbtime.DateOnly(now)
	require.NoError(t, db.Create(&paymentModel.PaymentExemptionModel{
		ExemptionID:        uuid.New(),
		ExemptionAsramaID:  asramaID,
		ExemptionStudentID: st.StudentID,
		ExemptionStartDate: today,
		ExemptionEndDate:   today.AddDate(0, 0, 7),
		ExemptionIsActive:  true,
	}).Error)

	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, now, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, MsgScanOK, res.Message)
}

func TestScanMeal_Success(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()
	st := seedScanStudent(t, db, asramaID, "3173010007")
	recordedBy := uuid.New()

	now := breakfastTime()
	res, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, now, &recordedBy)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, MsgScanOK, res.Message)
	assert.Equal(t, "Sarapan & Makan Malam", res.MealTypeName)
	require.NotNil(t, res.ScanTime)
	assert.WithinDuration(t, now, *res.ScanTime, time.Second)

	var tx model.MealTransactionModel
	require.NoError(t, db.Where("meal_transaction_student_id = ?", st.StudentID).Take(&tx).Error)
	assert.Equal(t, asramaID, tx.MealTransactionAsramaID)
	assert.Equal(t, model.MealTypeBreakfastDinner, tx.MealTransactionMealTypeID)
	assert.True(t, tx.MealTransactionDate.Equal(dbtime.DateOnly(now)), "tanggal dinormalkan ke DATE")
	require.NotNil(t, tx.MealTransactionRecordedBy)
	assert.Equal(t, recordedBy, *tx.MealTransactionRecordedBy)
}

func TestScanMeal_Duplicate(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()
	st := seedScanStudent(t, db, asramaID, "3173010008")

	first := breakfastTime()
	res1, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, first, nil)
	require.NoError(t, err)
	require.True(t, res1.Success)

	// percobaan kedua 30 menit kemudian → ditolak, waktu scan PERTAMA yang dipulangkan
	second := first.Add(30 * time.Minute)
	res2, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, second, nil)
	require.NoError(t, err)
	assert.False(t, res2.Success)
	assert.Equal(t, MsgAlreadyScanned, res2.Message)
	require.NotNil(t, res2.ScanTime)
	assert.WithinDuration(t, first, *res2.ScanTime, time.Second)

	// makan siang hari yang sama tetap boleh (kuota per meal type)
	lunchTime := time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC)
	res3, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeLunch, lunchTime, nil)
	require.NoError(t, err)
	assert.True(t, res3.Success)

	var count int64
	require.NoError(t, db.Model(&model.MealTransactionModel{}).
		Where("meal_transaction_student_id = ?", st.StudentID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

// Transaksi soft-delete lolos dari pengecekan duplikat (yang memfilter
// deleted_at) tapi tetap nabrak unique index — jalur replay harus rollback ke
// savepoint lalu memulangkan waktu transaksi pemenang, bukan error teknis.
func TestScanMeal_UniqueViolationReplay(t *testing.T) {
	db := newScanTestDB(t)
	svc := NewScanService(db)
	asramaID := uuid.New()
	st := seedScanStudent(t, db, asramaID, "3173010009")

	first := breakfastTime()
	res1, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, first, nil)
	require.NoError(t, err)
	require.True(t, res1.Success)

	deletedAt := first.Add(5 * time.Minute)
	require.NoError(t, db.Model(&model.MealTransactionModel{}).
		Where("meal_transaction_student_id = ?", st.StudentID).
		Update("meal_transaction_deleted_at", &deletedAt).Error)

	res2, err := svc.ScanMeal(asramaID, st.StudentNationalID, model.MealTypeBreakfastDinner, first.Add(10*time.Minute), nil)
	require.NoError(t, err)
	assert.False(t, res2.Success)
	assert.Equal(t, MsgAlreadyScanned, res2.Message)
	require.NotNil(t, res2.ScanTime)
	assert.WithinDuration(t, first, *res2.ScanTime, time.Second)
}

func TestIsTimeValidForMealType(t *testing.T) {
	svc := NewScanService(nil)
	assert.True(t, svc.IsTimeValidForMealType(model.MealTypeBreakfastDinner, breakfastTime()))
	assert.False(t, svc.IsTimeValidForMealType(model.MealTypeLunch, breakfastTime()))
}
