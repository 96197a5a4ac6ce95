// file: internals/features/dashboard/service/dashboard_service_test.go
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
	mealModel "asramaku_backend/internals/features/meals/meal_transactions/model"
	"asramaku_backend/internals/helpers/dbtime"
)

// DDL manual karena tag gorm membawa default Postgres (gen_random_uuid, jsonb)
// yang tidak dimengerti SQLite; id selalu di-set dari aplikasi.
var dashboardTestDDL = []string{
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

func newDashboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, ddl := range dashboardTestDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedDashboardStudent(t *testing.T, db *gorm.DB, asramaID uuid.UUID, nik, name string, building *string) *studentModel.StudentModel {
	t.Helper()
	st := &studentModel.StudentModel{
		StudentID:             uuid.New(),
		StudentAsramaID:       asramaID,
		StudentNationalID:     nik,
		StudentFullName:       name,
		StudentBuildingNumber: building,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

func TestGetRegistrationDashboardStats(t *testing.T) {
	db := newDashboardTestDB(t)
	svc := NewDashboardService(db)
	asramaID := uuid.New()
	today := dbtime.DateOnly(time.Now())

	bldg := "05"
	active := seedDashboardStudent(t, db, asramaID, "3173030001", "Putra Ramadhan", &bldg)
	onLeave := seedDashboardStudent(t, db, asramaID, "3173030002", "Qori Aulia", &bldg)
	seedDashboardStudent(t, db, asramaID, "3173030003", "Rina Maulida", nil)

	require.NoError(t, db.Create(&holidayModel.HolidayModel{
		HolidayID:        uuid.New(),
		HolidayAsramaID:  asramaID,
		HolidayStudentID: onLeave.StudentID,
		HolidayStartDate: today.AddDate(0, 0, -1),
		HolidayEndDate:   today.AddDate(0, 0, 1),
	}).Error)

	// hanya si aktif yang sudah ambil paket sarapan+malam
	require.NoError(t, db.Create(&mealModel.MealTransactionModel{
		MealTransactionID:         uuid.New(),
		MealTransactionAsramaID:   asramaID,
		MealTransactionStudentID:  active.StudentID,
		MealTransactionMealTypeID: mealModel.MealTypeBreakfastDinner,
		MealTransactionDate:       today,
		MealTransactionScannedAt:  today.Add(8 * time.Hour),
	}).Error)

	resp, err := svc.GetRegistrationDashboardStats(asramaID, today)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalStudents)
	assert.Equal(t, 1, resp.OnLeaveToday)
	assert.Equal(t, 2, resp.EligibleToday, "yang izin pulang tidak diharapkan makan")

	require.Len(t, resp.MealTypes, 2)
	bd := resp.MealTypes[0]
	assert.Equal(t, mealModel.MealTypeBreakfastDinner, bd.MealTypeID)
	assert.Equal(t, 2, bd.ExpectedMeals)
	assert.Equal(t, 1, bd.ReceivedMeals)
	assert.Equal(t, 1, bd.RemainingMeals)
	lunch := resp.MealTypes[1]
	assert.Equal(t, 2, lunch.ExpectedMeals)
	assert.Equal(t, 0, lunch.ReceivedMeals)

	// 1 dari 4 jatah hari ini
	assert.True(t, resp.AttendancePercentage.Equal(decimal.RequireFromString("25")),
		"dapat %s", resp.AttendancePercentage)

	require.Len(t, resp.Buildings, 2)
	assert.Equal(t, "05", resp.Buildings[0].BuildingNumber)
	assert.Equal(t, 2, resp.Buildings[0].TotalStudents)
	assert.Equal(t, 1, resp.Buildings[0].ActiveStudents)
	assert.Equal(t, 1, resp.Buildings[0].OnLeaveStudents)
	assert.Equal(t, unspecifiedBuilding, resp.Buildings[1].BuildingNumber)
	assert.Equal(t, 1, resp.Buildings[1].TotalStudents)

	// per gedung: bentuk statistik sama seperti level atas
	require.Len(t, resp.Buildings[0].MealTypes, 2)
	assert.Equal(t, 1, resp.Buildings[0].MealTypes[0].ExpectedMeals, "hanya si aktif yang diharapkan di gedung 05")
	assert.Equal(t, 1, resp.Buildings[0].MealTypes[0].ReceivedMeals)
	assert.Equal(t, 0, resp.Buildings[0].MealTypes[0].RemainingMeals)
	assert.Equal(t, 0, resp.Buildings[0].MealTypes[1].ReceivedMeals)
	require.Len(t, resp.Buildings[1].MealTypes, 2)
	assert.Equal(t, 1, resp.Buildings[1].MealTypes[0].ExpectedMeals)
	assert.Equal(t, 0, resp.Buildings[1].MealTypes[0].ReceivedMeals)

	assert.Len(t, resp.RecentActivity.NewestStudents, 3)
	require.Len(t, resp.RecentActivity.RecentHolidays, 1)
	assert.Equal(t, "Qori Aulia", resp.RecentActivity.RecentHolidays[0].StudentFullName)
}

func TestGetRegistrationDashboardStats_EmptyAsrama(t *testing.T) {
	db := newDashboardTestDB(t)
	svc := NewDashboardService(db)

	resp, err := svc.GetRegistrationDashboardStats(uuid.New(), dbtime.DateOnly(time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalStudents)
	assert.Equal(t, 0, resp.EligibleToday)
	assert.True(t, resp.AttendancePercentage.Equal(decimal.Zero), "0%% saat asrama kosong")
	assert.Empty(t, resp.Buildings)
	assert.Empty(t, resp.RecentActivity.NewestStudents)
	assert.Empty(t, resp.RecentActivity.RecentHolidays)
}

func TestGetRegistrationDashboardStats_OutstandingNotEligible(t *testing.T) {
	db := newDashboardTestDB(t)
	svc := NewDashboardService(db)
	asramaID := uuid.New()
	today := dbtime.DateOnly(time.Now())

	st := seedDashboardStudent(t, db, asramaID, "3173030004", "Sari Wulandari", nil)
	st.SetOutstanding(decimal.RequireFromString("95.00"))
	require.NoError(t, db.Save(st).Error)

	// scan milik penghuni nunggak tetap tercatat di tabel, tapi tidak boleh
	// menggeser hitungan jatah dashboard
	require.NoError(t, db.Create(&mealModel.MealTransactionModel{
		MealTransactionID:         uuid.New(),
		MealTransactionAsramaID:   asramaID,
		MealTransactionStudentID:  st.StudentID,
		MealTransactionMealTypeID: mealModel.MealTypeBreakfastDinner,
		MealTransactionDate:       today,
		MealTransactionScannedAt:  today.Add(8 * time.Hour),
	}).Error)

	resp, err := svc.GetRegistrationDashboardStats(asramaID, today)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalStudents)
	assert.Equal(t, 0, resp.EligibleToday, "nunggak tanpa dispensasi tidak diharapkan makan")
	assert.Equal(t, 0, resp.MealTypes[0].ExpectedMeals)
	assert.Equal(t, 0, resp.MealTypes[0].ReceivedMeals, "jatah terambil hanya dihitung dari penghuni yang layak")
	assert.Equal(t, 0, resp.MealTypes[0].RemainingMeals)
	assert.True(t, resp.AttendancePercentage.Equal(decimal.Zero))
}
