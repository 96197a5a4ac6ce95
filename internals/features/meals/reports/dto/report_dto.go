// file: internals/features/meals/reports/dto/report_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* =========================================================
   REQUEST DTOs
========================================================= */

// MealAbsenceFilters: filter opsional laporan rentang tanggal
type MealAbsenceFilters struct {
	BuildingNumber *string `json:"building_number,omitempty"`
	Government     *string `json:"government,omitempty"`
	District       *string `json:"district,omitempty"`
	Faculty        *string `json:"faculty,omitempty"`
}

// RangeReportQuery: ?from=YYYY-MM-DD&to=YYYY-MM-DD (+filter)
type RangeReportQuery struct {
	From           string  `query:"from" validate:"required,datetime=2006-01-02"`
	To             string  `query:"to" validate:"required,datetime=2006-01-02"`
	BuildingNumber *string `query:"building_number"`
	Government     *string `query:"government"`
	District       *string `query:"district"`
	Faculty        *string `query:"faculty"`
}

/* =========================================================
   RANGE REPORT (per gedung, per student)
========================================================= */

// StudentAbsenceRow: satu penghuni delinquent dalam laporan rentang
type StudentAbsenceRow struct {
	StudentID             uuid.UUID       `json:"student_id"`
	StudentNationalID     string          `json:"student_national_id"`
	StudentCode           string          `json:"student_code"`
	StudentFullName       string          `json:"student_full_name"`
	StudentBuildingNumber string          `json:"student_building_number"`
	MissedBreakfastCount  int             `json:"missed_breakfast_count"`
	MissedLunchCount      int             `json:"missed_lunch_count"`
	MissedDinnerCount     int             `json:"missed_dinner_count"`
	TotalMissedMeals      int             `json:"total_missed_meals"`
	TotalPenalty          decimal.Decimal `json:"total_penalty"`
	DaysOnHoliday         int             `json:"days_on_holiday"`
	IsCurrentlyOnHoliday  bool            `json:"is_currently_on_holiday"`
}

// BuildingAbsenceGroup: agregat per gedung (gedung tanpa delinquent di-drop)
type BuildingAbsenceGroup struct {
	BuildingNumber       string              `json:"building_number"`
	Students             []StudentAbsenceRow `json:"students"`
	MissedBreakfastCount int                 `json:"missed_breakfast_count"`
	MissedLunchCount     int                 `json:"missed_lunch_count"`
	MissedDinnerCount    int                 `json:"missed_dinner_count"`
	TotalMissedMeals     int                 `json:"total_missed_meals"`
	TotalPenalty         decimal.Decimal     `json:"total_penalty"`
}

// MealAbsenceSummary: agregat global lintas gedung
type MealAbsenceSummary struct {
	TotalStudents        int             `json:"total_students"`
	MissedBreakfastCount int             `json:"missed_breakfast_count"`
	MissedLunchCount     int             `json:"missed_lunch_count"`
	MissedDinnerCount    int             `json:"missed_dinner_count"`
	TotalMissedMeals     int             `json:"total_missed_meals"`
	TotalPenalty         decimal.Decimal `json:"total_penalty"`
}

type MealAbsenceReportResponse struct {
	FromDate  time.Time              `json:"from_date"`
	ToDate    time.Time              `json:"to_date"`
	Buildings []BuildingAbsenceGroup `json:"buildings"`
	Summary   MealAbsenceSummary     `json:"summary"`
}

/* =========================================================
   DAILY REPORT (spesialisasi 1 hari)
========================================================= */

type DailyStudentAbsenceRow struct {
	StudentID             uuid.UUID `json:"student_id"`
	StudentNationalID     string    `json:"student_national_id"`
	StudentFullName       string    `json:"student_full_name"`
	StudentBuildingNumber string    `json:"student_building_number"`
	MissedBreakfastDinner bool      `json:"missed_breakfast_dinner"`
	MissedLunch           bool      `json:"missed_lunch"`
}

type DailyBuildingGroup struct {
	BuildingNumber string                   `json:"building_number"`
	Students       []DailyStudentAbsenceRow `json:"students"`
}

type DailyAbsenceSummary struct {
	TotalAbsentStudents        int `json:"total_absent_students"`
	MissedBreakfastDinnerCount int `json:"missed_breakfast_dinner_count"`
	MissedLunchCount           int `json:"missed_lunch_count"`
}

type DailyAbsenceReportResponse struct {
	Date      time.Time            `json:"date"`
	Buildings []DailyBuildingGroup `json:"buildings"`
	Summary   DailyAbsenceSummary  `json:"summary"`
}

/* =========================================================
   MONTHLY REPORT (gate lebih longgar + daftar tanggal bolos)
========================================================= */

type MonthlyStudentAbsenceRow struct {
	StudentID             uuid.UUID       `json:"student_id"`
	StudentNationalID     string          `json:"student_national_id"`
	StudentFullName       string          `json:"student_full_name"`
	StudentBuildingNumber string          `json:"student_building_number"`
	MissedDates           []time.Time     `json:"missed_dates"` // dedup + sorted
	MissedBreakfastCount  int             `json:"missed_breakfast_count"`
	MissedLunchCount      int             `json:"missed_lunch_count"`
	MissedDinnerCount     int             `json:"missed_dinner_count"`
	TotalMissedMeals      int             `json:"total_missed_meals"`
	TotalPenalty          decimal.Decimal `json:"total_penalty"`
	DaysOnHoliday         int             `json:"days_on_holiday"`
}

type MonthlyBuildingGroup struct {
	BuildingNumber string                     `json:"building_number"`
	Students       []MonthlyStudentAbsenceRow `json:"students"`
}

type MonthlyAbsenceReportResponse struct {
	FromDate  time.Time              `json:"from_date"`
	ToDate    time.Time              `json:"to_date"`
	Buildings []MonthlyBuildingGroup `json:"buildings"`
	Summary   MealAbsenceSummary     `json:"summary"`
}

/* =========================================================
   RESTAURANT DAILY REPORT (per meal type)
========================================================= */

type MealTypeStat struct {
	MealTypeID     int    `json:"meal_type_id"`
	MealTypeName   string `json:"meal_type_name"`
	ExpectedMeals  int    `json:"expected_meals"`
	ReceivedMeals  int    `json:"received_meals"`
	RemainingMeals int    `json:"remaining_meals"` // signed, tidak di-clamp
}

type RestaurantDailySummary struct {
	TotalExpected        int             `json:"total_expected"`
	TotalReceived        int             `json:"total_received"`
	TotalRemaining       int             `json:"total_remaining"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
}

type RestaurantDailyReportResponse struct {
	Date      time.Time              `json:"date"`
	MealTypes []MealTypeStat         `json:"meal_types"`
	Summary   RestaurantDailySummary `json:"summary"`
}
