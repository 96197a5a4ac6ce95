// file: internals/features/dashboard/dto/dashboard_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* =========================================================
   STATISTIK REGISTRASI / KEHADIRAN HARI INI
========================================================= */

type DashboardMealTypeStat struct {
	MealTypeID     int    `json:"meal_type_id"`
	MealTypeName   string `json:"meal_type_name"`
	ExpectedMeals  int    `json:"expected_meals"`
	ReceivedMeals  int    `json:"received_meals"`
	RemainingMeals int    `json:"remaining_meals"` // signed, tidak di-clamp
}

// Bentuk statistik per gedung mengikuti statistik atas (per jenis makan),
// ditambah hitungan penghuninya.
type DashboardBuildingStat struct {
	BuildingNumber  string                  `json:"building_number"`
	TotalStudents   int                     `json:"total_students"`
	ActiveStudents  int                     `json:"active_students"`
	OnLeaveStudents int                     `json:"on_leave_students"`
	MealTypes       []DashboardMealTypeStat `json:"meal_types"`
}

type RecentStudentItem struct {
	StudentID       uuid.UUID `json:"student_id"`
	StudentFullName string    `json:"student_full_name"`
	StudentCode     string    `json:"student_code"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecentHolidayItem struct {
	HolidayID       uuid.UUID `json:"holiday_id"`
	StudentID       uuid.UUID `json:"student_id"`
	StudentFullName string    `json:"student_full_name"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	CreatedAt       time.Time `json:"created_at"`
}

type DashboardRecentActivity struct {
	NewestStudents []RecentStudentItem `json:"newest_students"`
	RecentHolidays []RecentHolidayItem `json:"recent_holidays"`
}

type RegistrationDashboardResponse struct {
	Date                 time.Time               `json:"date"`
	TotalStudents        int                     `json:"total_students"`
	EligibleToday        int                     `json:"eligible_today"`
	OnLeaveToday         int                     `json:"on_leave_today"`
	MealTypes            []DashboardMealTypeStat `json:"meal_types"`
	AttendancePercentage decimal.Decimal         `json:"attendance_percentage"`
	Buildings            []DashboardBuildingStat `json:"buildings"`
	RecentActivity       DashboardRecentActivity `json:"recent_activity"`
}
