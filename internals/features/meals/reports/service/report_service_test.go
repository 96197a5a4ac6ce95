// file: internals/features/meals/reports/service/report_service_test.go
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
	mealModel "asramaku_backend/internals/features/meals/meal_transactions/model"
)

// DDL manual karena tag gorm membawa default Postgres (gen_random_uuid, jsonb)
// yang tidak dimengerti SQLite; id selalu di-set dari aplikasi.
var reportTestDDL = []string{
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
}

func newReportTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, ddl := range reportTestDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

var nikSeq int

func seedReportStudent(t *testing.T, db *gorm.DB, asramaID uuid.UUID, name string, building *string) *studentModel.StudentModel {
	t.Helper()
	nikSeq++
	st := &studentModel.StudentModel{
		StudentID:             uuid.New(),
		StudentAsramaID:       asramaID,
		StudentNationalID:     fmt.Sprintf("31730200%04d", nikSeq),
		StudentFullName:       name,
		StudentBuildingNumber: building,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

func seedMealTx(t *testing.T, db *gorm.DB, asramaID, studentID uuid.UUID, mealTypeID int, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&mealModel.MealTransactionModel{
		MealTransactionID:         uuid.New(),
		MealTransactionAsramaID:   asramaID,
		MealTransactionStudentID:  studentID,
		MealTransactionMealTypeID: mealTypeID,
		MealTransactionDate:       date,
		MealTransactionScannedAt:  date.Add(8 * time.Hour),
	}).Error)
}

func reportDate(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

// Rentang 3 hari, izin pulang di hari kedua, jatah siang bolos hari 1 & 3:
// hanya makan siang yang dihitung, hari libur di-skip, denda 2 × 95.
func TestGetMealAbsenceReport_HolidaySkipAndPenalty(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()

	st := seedReportStudent(t, db, asramaID, "Ahmad Fauzi", strPtr("12"))
	require.NoError(t, db.Create(&holidayModel.HolidayModel{
		HolidayID:        uuid.New(),
		HolidayAsramaID:  asramaID,
		HolidayStudentID: st.StudentID,
		HolidayStartDate: reportDate(3),
		HolidayEndDate:   reportDate(3),
	}).Error)
	// paket sarapan+malam diambil di kedua hari non-libur
	seedMealTx(t, db, asramaID, st.StudentID, mealModel.MealTypeBreakfastDinner, reportDate(2))
	seedMealTx(t, db, asramaID, st.StudentID, mealModel.MealTypeBreakfastDinner, reportDate(4))

	resp, err := svc.GetMealAbsenceReport(asramaID, reportDate(2), reportDate(4), nil)
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 1)
	g := resp.Buildings[0]
	assert.Equal(t, "12", g.BuildingNumber)
	require.Len(t, g.Students, 1)

	row := g.Students[0]
	assert.Equal(t, 0, row.MissedBreakfastCount)
	assert.Equal(t, 0, row.MissedDinnerCount)
	assert.Equal(t, 2, row.MissedLunchCount)
	assert.Equal(t, 2, row.TotalMissedMeals)
	assert.Equal(t, 1, row.DaysOnHoliday)
	assert.True(t, row.TotalPenalty.Equal(decimal.RequireFromString("190")),
		"denda = 2 × 95, dapat %s", row.TotalPenalty)

	assert.Equal(t, 1, resp.Summary.TotalStudents)
	assert.Equal(t, 2, resp.Summary.MissedLunchCount)
	assert.Equal(t, 2, resp.Summary.TotalMissedMeals)
	assert.True(t, resp.Summary.TotalPenalty.Equal(decimal.RequireFromString("190")))
}

// Sarapan & makan malam satu paket: satu hari tanpa scan paket = dua bolos.
func TestGetMealAbsenceReport_BreakfastDinnerPaired(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()

	st := seedReportStudent(t, db, asramaID, "Budi Santoso", strPtr("05"))
	seedMealTx(t, db, asramaID, st.StudentID, mealModel.MealTypeLunch, reportDate(2))

	resp, err := svc.GetMealAbsenceReport(asramaID, reportDate(2), reportDate(2), nil)
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 1)
	row := resp.Buildings[0].Students[0]
	assert.Equal(t, 1, row.MissedBreakfastCount)
	assert.Equal(t, 1, row.MissedDinnerCount)
	assert.Equal(t, row.MissedBreakfastCount, row.MissedDinnerCount)
	assert.Equal(t, 0, row.MissedLunchCount)
	assert.Equal(t, 2, row.TotalMissedMeals)
}

// Gate se-rentang: dispensasi yang cuma menutup sebagian rentang → penghuni
// dikeluarkan seluruhnya; dispensasi penuh → masuk laporan.
func TestGetMealAbsenceReport_RangeWideEligibilityGate(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()

	partial := seedReportStudent(t, db, asramaID, "Citra Lestari", strPtr("12"))
	partial.SetOutstanding(decimal.RequireFromString("285.00"))
	require.NoError(t, db.Save(partial).Error)
	require.NoError(t, db.Create(&paymentModel.PaymentExemptionModel{
		ExemptionID:        uuid.New(),
		ExemptionAsramaID:  asramaID,
		ExemptionStudentID: partial.StudentID,
		ExemptionStartDate: reportDate(2),
		ExemptionEndDate:   reportDate(3), // bolong di hari ke-4
		ExemptionIsActive:  true,
	}).Error)

	full := seedReportStudent(t, db, asramaID, "Dewi Anggraini", strPtr("12"))
	full.SetOutstanding(decimal.RequireFromString("95.00"))
	require.NoError(t, db.Save(full).Error)
	require.NoError(t, db.Create(&paymentModel.PaymentExemptionModel{
		ExemptionID:        uuid.New(),
		ExemptionAsramaID:  asramaID,
		ExemptionStudentID: full.StudentID,
		ExemptionStartDate: reportDate(1),
		ExemptionEndDate:   reportDate(10),
		ExemptionIsActive:  true,
	}).Error)

	resp, err := svc.GetMealAbsenceReport(asramaID, reportDate(2), reportDate(4), nil)
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 1)
	require.Len(t, resp.Buildings[0].Students, 1)
	assert.Equal(t, full.StudentID, resp.Buildings[0].Students[0].StudentID)
}

// Penghuni tanpa bolos tidak muncul; tanpa nomor gedung masuk bucket
// "Tanpa Gedung"; gedung terurut.
func TestGetMealAbsenceReport_GroupingAndSkip(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()
	date := reportDate(2)

	complete := seedReportStudent(t, db, asramaID, "Eko Prasetyo", strPtr("05"))
	seedMealTx(t, db, asramaID, complete.StudentID, mealModel.MealTypeBreakfastDinner, date)
	seedMealTx(t, db, asramaID, complete.StudentID, mealModel.MealTypeLunch, date)

	seedReportStudent(t, db, asramaID, "Fajar Nugroho", strPtr("12"))
	seedReportStudent(t, db, asramaID, "Gita Permata", nil)

	resp, err := svc.GetMealAbsenceReport(asramaID, date, date, nil)
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 2)
	assert.Equal(t, "12", resp.Buildings[0].BuildingNumber)
	assert.Equal(t, UnspecifiedBuilding, resp.Buildings[1].BuildingNumber)
	assert.Equal(t, 2, resp.Summary.TotalStudents)
}

func TestGetDailyAbsenceReport(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()
	date := reportDate(3)

	// bolos siang saja
	lunchOnly := seedReportStudent(t, db, asramaID, "Hadi Wijaya", strPtr("05"))
	seedMealTx(t, db, asramaID, lunchOnly.StudentID, mealModel.MealTypeBreakfastDinner, date)

	// sedang izin pulang → tidak dihitung sama sekali
	onLeave := seedReportStudent(t, db, asramaID, "Indah Sari", strPtr("05"))
	require.NoError(t, db.Create(&holidayModel.HolidayModel{
		HolidayID:        uuid.New(),
		HolidayAsramaID:  asramaID,
		HolidayStudentID: onLeave.StudentID,
		HolidayStartDate: date,
		HolidayEndDate:   date,
	}).Error)

	resp, err := svc.GetDailyAbsenceReport(asramaID, date)
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 1)
	require.Len(t, resp.Buildings[0].Students, 1)
	row := resp.Buildings[0].Students[0]
	assert.Equal(t, lunchOnly.StudentID, row.StudentID)
	assert.False(t, row.MissedBreakfastDinner)
	assert.True(t, row.MissedLunch)
	assert.Equal(t, 1, resp.Summary.TotalAbsentStudents)
	assert.Equal(t, 0, resp.Summary.MissedBreakfastDinnerCount)
	assert.Equal(t, 1, resp.Summary.MissedLunchCount)
}

// Gate bulanan lebih longgar: dispensasi yang overlap SEBAGIAN jendela sudah
// cukup; daftar tanggal bolos dedup dan terurut.
func TestGetMonthlyAbsenceReport_RelaxedGate(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()

	st := seedReportStudent(t, db, asramaID, "Joko Susilo", strPtr("12"))
	st.SetOutstanding(decimal.RequireFromString("285.00"))
	require.NoError(t, db.Save(st).Error)
	require.NoError(t, db.Create(&paymentModel.PaymentExemptionModel{
		ExemptionID:        uuid.New(),
		ExemptionAsramaID:  asramaID,
		ExemptionStudentID: st.StudentID,
		ExemptionStartDate: reportDate(2),
		ExemptionEndDate:   reportDate(3), // tidak menutup hari ke-4
		ExemptionIsActive:  true,
	}).Error)

	resp, err := svc.GetMonthlyAbsenceReport(asramaID, reportDate(2), reportDate(4))
	require.NoError(t, err)

	require.Len(t, resp.Buildings, 1)
	require.Len(t, resp.Buildings[0].Students, 1)
	row := resp.Buildings[0].Students[0]
	assert.Equal(t, 3, row.MissedBreakfastCount)
	assert.Equal(t, 3, row.MissedDinnerCount)
	assert.Equal(t, 3, row.MissedLunchCount)
	assert.Equal(t, 9, row.TotalMissedMeals)
	// bolos paket + siang di hari yang sama = satu tanggal
	require.Len(t, row.MissedDates, 3)
	assert.True(t, row.MissedDates[0].Equal(reportDate(2)))
	assert.True(t, row.MissedDates[1].Equal(reportDate(3)))
	assert.True(t, row.MissedDates[2].Equal(reportDate(4)))
	assert.True(t, row.TotalPenalty.Equal(decimal.RequireFromString("855")))
}

func TestGetMonthlyAbsenceReport_NoExemptionExcluded(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()

	st := seedReportStudent(t, db, asramaID, "Kartika Putri", strPtr("05"))
	st.SetOutstanding(decimal.RequireFromString("95.00"))
	require.NoError(t, db.Save(st).Error)

	resp, err := svc.GetMonthlyAbsenceReport(asramaID, reportDate(2), reportDate(4))
	require.NoError(t, err)
	assert.Empty(t, resp.Buildings)
	assert.Equal(t, 0, resp.Summary.TotalStudents)
}

func TestGetRestaurantDailyReport(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()
	date := reportDate(2)

	scanned := seedReportStudent(t, db, asramaID, "Lukman Hakim", strPtr("05"))
	seedMealTx(t, db, asramaID, scanned.StudentID, mealModel.MealTypeBreakfastDinner, date)
	seedReportStudent(t, db, asramaID, "Mega Utami", strPtr("05"))

	resp, err := svc.GetRestaurantDailyReport(asramaID, date, nil)
	require.NoError(t, err)

	require.Len(t, resp.MealTypes, 2)
	bd := resp.MealTypes[0]
	assert.Equal(t, mealModel.MealTypeBreakfastDinner, bd.MealTypeID)
	assert.Equal(t, 2, bd.ExpectedMeals)
	assert.Equal(t, 1, bd.ReceivedMeals)
	assert.Equal(t, 1, bd.RemainingMeals)

	lunch := resp.MealTypes[1]
	assert.Equal(t, 2, lunch.ExpectedMeals)
	assert.Equal(t, 0, lunch.ReceivedMeals)
	assert.Equal(t, 2, lunch.RemainingMeals)

	assert.Equal(t, 4, resp.Summary.TotalExpected)
	assert.Equal(t, 1, resp.Summary.TotalReceived)
	assert.Equal(t, 3, resp.Summary.TotalRemaining)
	assert.True(t, resp.Summary.AttendancePercentage.Equal(decimal.RequireFromString("25")),
		"1 dari 4 jatah = 25%%, dapat %s", resp.Summary.AttendancePercentage)
}

func TestGetRestaurantDailyReport_EmptyAsrama(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)

	resp, err := svc.GetRestaurantDailyReport(uuid.New(), reportDate(2), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.TotalExpected)
	assert.True(t, resp.Summary.AttendancePercentage.Equal(decimal.Zero), "0%% saat tidak ada jatah diharapkan")
}

func TestGetRestaurantDailyReport_BuildingFilter(t *testing.T) {
	db := newReportTestDB(t)
	svc := NewReportService(db)
	asramaID := uuid.New()
	date := reportDate(2)

	seedReportStudent(t, db, asramaID, "Nanda Pratama", strPtr("05"))
	seedReportStudent(t, db, asramaID, "Oka Mahendra", strPtr("12"))

	resp, err := svc.GetRestaurantDailyReport(asramaID, date, strPtr("05"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MealTypes[0].ExpectedMeals)
}
