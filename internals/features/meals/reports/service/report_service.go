// file: internals/features/meals/reports/service/report_service.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/meals/meal_transactions/model"
	mealService "asramaku_backend/internals/features/meals/meal_transactions/service"
	"asramaku_backend/internals/features/meals/reports/dto"
	"asramaku_backend/internals/helpers/dbtime"
)

// Denda tetap per jatah makan yang bolos
var MissedMealPenalty = decimal.RequireFromString("95.00")

// Bucket untuk penghuni tanpa nomor gedung (laporan tidak boleh gagal
// gara-gara satu data jelek)
const UnspecifiedBuilding = "Tanpa Gedung"

/*
  ReportService merekonstruksi kepatuhan makan per hari dari log transaksi.
  Semua query tarik sekali per laporan, lalu dihitung in-memory lewat index
  (student+tanggal → transaksi) — tanpa query per hari.
*/

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

/* =========================================================
   LOADER + INDEX
========================================================= */

type reportData struct {
	students   []studentModel.StudentModel
	exemptions map[uuid.UUID][]paymentModel.PaymentExemptionModel
	holidays   map[uuid.UUID][]holidayModel.HolidayModel
	// studentID → epoch hari (DateOnly.Unix) → mealTypeID → transaksi pertama
	txIndex map[uuid.UUID]map[int64]map[int]*model.MealTransactionModel
}

func (s *ReportService) loadRange(asramaID uuid.UUID, from, to time.Time, filters *dto.MealAbsenceFilters) (*reportData, error) {
	d := &reportData{
		exemptions: make(map[uuid.UUID][]paymentModel.PaymentExemptionModel),
		holidays:   make(map[uuid.UUID][]holidayModel.HolidayModel),
		txIndex:    make(map[uuid.UUID]map[int64]map[int]*model.MealTransactionModel),
	}

	// 1) Students aktif (terfilter)
	q := s.DB.Where("student_asrama_id = ? AND student_deleted_at IS NULL", asramaID)
	if filters != nil {
		if filters.BuildingNumber != nil && *filters.BuildingNumber != "" {
			q = q.Where("student_building_number = ?", *filters.BuildingNumber)
		}
		if filters.Government != nil && *filters.Government != "" {
			q = q.Where("student_government = ?", *filters.Government)
		}
		if filters.District != nil && *filters.District != "" {
			q = q.Where("student_district = ?", *filters.District)
		}
		if filters.Faculty != nil && *filters.Faculty != "" {
			q = q.Where("student_faculty = ?", *filters.Faculty)
		}
	}
	if err := q.Find(&d.students).Error; err != nil {
		return nil, err
	}

	// 2) Exemption aktif yang overlap [from, to]
	var exemptions []paymentModel.PaymentExemptionModel
	if err := s.DB.
		Where("exemption_asrama_id = ? AND exemption_is_active = ? AND exemption_deleted_at IS NULL", asramaID, true).
		Where("exemption_start_date <= ? AND exemption_end_date >= ?", to, from).
		Find(&exemptions).Error; err != nil {
		return nil, err
	}
	for i := range exemptions {
		sid := exemptions[i].ExemptionStudentID
		d.exemptions[sid] = append(d.exemptions[sid], exemptions[i])
	}

	// 3) Transaksi makan dalam rentang
	var txs []model.MealTransactionModel
	if err := s.DB.
		Where("meal_transaction_asrama_id = ? AND meal_transaction_deleted_at IS NULL", asramaID).
		Where("meal_transaction_date >= ? AND meal_transaction_date <= ?", from, to).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	for i := range txs {
		t := &txs[i]
		day := dbtime.DateOnly(t.MealTransactionDate).Unix()
		byDay, ok := d.txIndex[t.MealTransactionStudentID]
		if !ok {
			byDay = make(map[int64]map[int]*model.MealTransactionModel)
			d.txIndex[t.MealTransactionStudentID] = byDay
		}
		byType, ok := byDay[day]
		if !ok {
			byType = make(map[int]*model.MealTransactionModel)
			byDay[day] = byType
		}
		if _, exists := byType[t.MealTransactionMealTypeID]; !exists {
			byType[t.MealTransactionMealTypeID] = t
		}
	}

	// 4) Holiday yang overlap [from, to]
	var holidays []holidayModel.HolidayModel
	if err := s.DB.
		Where("holiday_asrama_id = ? AND holiday_deleted_at IS NULL", asramaID).
		Where("holiday_start_date <= ? AND holiday_end_date >= ?", to, from).
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	for i := range holidays {
		sid := holidays[i].HolidayStudentID
		d.holidays[sid] = append(d.holidays[sid], holidays[i])
	}

	return d, nil
}

func (d *reportData) hasTx(studentID uuid.UUID, day time.Time, mealTypeID int) bool {
	byDay, ok := d.txIndex[studentID]
	if !ok {
		return false
	}
	byType, ok := byDay[dbtime.DateOnly(day).Unix()]
	if !ok {
		return false
	}
	_, ok = byType[mealTypeID]
	return ok
}

func buildingKey(st *studentModel.StudentModel) string {
	if st.StudentBuildingNumber == nil || *st.StudentBuildingNumber == "" {
		return UnspecifiedBuilding
	}
	return *st.StudentBuildingNumber
}

/* =========================================================
   LAPORAN RENTANG TANGGAL
========================================================= */

// GetMealAbsenceReport merekonstruksi bolos makan per hari untuk [from, to]
// inklusif. Gate kelayakan berlaku SE-RENTANG: penghuni yang tidak layak di
// satu hari mana pun dikeluarkan seluruhnya dari laporan.
func (s *ReportService) GetMealAbsenceReport(asramaID uuid.UUID, from, to time.Time, filters *dto.MealAbsenceFilters) (*dto.MealAbsenceReportResponse, error) {
	from = dbtime.DateOnly(from)
	to = dbtime.DateOnly(to)

	data, err := s.loadRange(asramaID, from, to, filters)
	if err != nil {
		return nil, err
	}

	today := dbtime.DateOnly(time.Now())
	groups := make(map[string]*dto.BuildingAbsenceGroup)

	for i := range data.students {
		st := &data.students[i]
		exs := data.exemptions[st.StudentID]
		hds := data.holidays[st.StudentID]

		// 5a) Gate se-rentang: gugur kalau ada SATU hari saja yang tidak layak
		eligibleWholeRange := true
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if !mealService.IsStudentEligibleForDate(st, exs, day) {
				eligibleWholeRange = false
				break
			}
		}
		if !eligibleWholeRange {
			continue
		}

		// 5b) Rekonstruksi hari demi hari
		var missedBreakfast, missedLunch, missedDinner, daysOnHoliday int
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if mealService.IsOnHoliday(hds, day) {
				daysOnHoliday++
				continue // hari libur tidak pernah dihitung bolos
			}
			if !data.hasTx(st.StudentID, day, model.MealTypeBreakfastDinner) {
				// sarapan & makan malam selalu dihitung berpasangan
				missedBreakfast++
				missedDinner++
			}
			if !data.hasTx(st.StudentID, day, model.MealTypeLunch) {
				missedLunch++
			}
		}

		totalMissed := missedBreakfast + missedLunch + missedDinner
		if totalMissed == 0 {
			continue
		}

		row := dto.StudentAbsenceRow{
			StudentID:             st.StudentID,
			StudentNationalID:     st.StudentNationalID,
			StudentCode:           st.StudentCode,
			StudentFullName:       st.StudentFullName,
			StudentBuildingNumber: buildingKey(st),
			MissedBreakfastCount:  missedBreakfast,
			MissedLunchCount:      missedLunch,
			MissedDinnerCount:     missedDinner,
			TotalMissedMeals:      totalMissed,
			TotalPenalty:          MissedMealPenalty.Mul(decimal.NewFromInt(int64(totalMissed))),
			DaysOnHoliday:         daysOnHoliday,
			// dievaluasi saat laporan dibuat (hari ini), bukan akhir rentang
			IsCurrentlyOnHoliday: mealService.IsOnHoliday(hds, today),
		}

		key := buildingKey(st)
		g, ok := groups[key]
		if !ok {
			g = &dto.BuildingAbsenceGroup{BuildingNumber: key, TotalPenalty: decimal.Zero}
			groups[key] = g
		}
		g.Students = append(g.Students, row)
		g.MissedBreakfastCount += missedBreakfast
		g.MissedLunchCount += missedLunch
		g.MissedDinnerCount += missedDinner
		g.TotalMissedMeals += totalMissed
		g.TotalPenalty = g.TotalPenalty.Add(row.TotalPenalty)
	}

	resp := &dto.MealAbsenceReportResponse{
		FromDate: from,
		ToDate:   to,
		Summary:  dto.MealAbsenceSummary{TotalPenalty: decimal.Zero},
	}
	for _, g := range groups {
		sort.Slice(g.Students, func(i, j int) bool {
			return g.Students[i].StudentFullName < g.Students[j].StudentFullName
		})
		resp.Buildings = append(resp.Buildings, *g)
		resp.Summary.TotalStudents += len(g.Students)
		resp.Summary.MissedBreakfastCount += g.MissedBreakfastCount
		resp.Summary.MissedLunchCount += g.MissedLunchCount
		resp.Summary.MissedDinnerCount += g.MissedDinnerCount
		resp.Summary.TotalMissedMeals += g.TotalMissedMeals
		resp.Summary.TotalPenalty = resp.Summary.TotalPenalty.Add(g.TotalPenalty)
	}
	sort.Slice(resp.Buildings, func(i, j int) bool {
		return resp.Buildings[i].BuildingNumber < resp.Buildings[j].BuildingNumber
	})
	return resp, nil
}

/* =========================================================
   LAPORAN HARIAN
========================================================= */

// GetDailyAbsenceReport: spesialisasi 1 hari — gate & holiday hanya untuk
// tanggal target; penghuni muncul sekali per gedung dengan pasangan boolean.
func (s *ReportService) GetDailyAbsenceReport(asramaID uuid.UUID, date time.Time) (*dto.DailyAbsenceReportResponse, error) {
	date = dbtime.DateOnly(date)

	data, err := s.loadRange(asramaID, date, date, nil)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*dto.DailyBuildingGroup)
	summary := dto.DailyAbsenceSummary{}

	for i := range data.students {
		st := &data.students[i]
		if !mealService.IsStudentEligibleForDate(st, data.exemptions[st.StudentID], date) {
			continue
		}
		if mealService.IsOnHoliday(data.holidays[st.StudentID], date) {
			continue
		}

		missedBD := !data.hasTx(st.StudentID, date, model.MealTypeBreakfastDinner)
		missedLunch := !data.hasTx(st.StudentID, date, model.MealTypeLunch)
		if !missedBD && !missedLunch {
			continue
		}

		key := buildingKey(st)
		g, ok := groups[key]
		if !ok {
			g = &dto.DailyBuildingGroup{BuildingNumber: key}
			groups[key] = g
		}
		g.Students = append(g.Students, dto.DailyStudentAbsenceRow{
			StudentID:             st.StudentID,
			StudentNationalID:     st.StudentNationalID,
			StudentFullName:       st.StudentFullName,
			StudentBuildingNumber: key,
			MissedBreakfastDinner: missedBD,
			MissedLunch:           missedLunch,
		})
		summary.TotalAbsentStudents++
		if missedBD {
			summary.MissedBreakfastDinnerCount++
		}
		if missedLunch {
			summary.MissedLunchCount++
		}
	}

	resp := &dto.DailyAbsenceReportResponse{Date: date, Summary: summary}
	for _, g := range groups {
		sort.Slice(g.Students, func(i, j int) bool {
			return g.Students[i].StudentFullName < g.Students[j].StudentFullName
		})
		resp.Buildings = append(resp.Buildings, *g)
	}
	sort.Slice(resp.Buildings, func(i, j int) bool {
		return resp.Buildings[i].BuildingNumber < resp.Buildings[j].BuildingNumber
	})
	return resp, nil
}

/* =========================================================
   LAPORAN BULANAN
========================================================= */

// GetMonthlyAbsenceReport: seperti laporan rentang, tapi gate-nya per
// penghuni (cukup punya SATU exemption yang overlap jendela laporan),
// plus daftar eksplisit tanggal bolos (dedup, terurut).
func (s *ReportService) GetMonthlyAbsenceReport(asramaID uuid.UUID, from, to time.Time) (*dto.MonthlyAbsenceReportResponse, error) {
	from = dbtime.DateOnly(from)
	to = dbtime.DateOnly(to)

	data, err := s.loadRange(asramaID, from, to, nil)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*dto.MonthlyBuildingGroup)
	summary := dto.MealAbsenceSummary{TotalPenalty: decimal.Zero}

	for i := range data.students {
		st := &data.students[i]
		exs := data.exemptions[st.StudentID]
		hds := data.holidays[st.StudentID]

		// Gate longgar: penghuni nunggak cukup punya exemption yang
		// overlap jendela laporan (tes overlap yang sama dengan loader).
		if !st.StudentIsExemptFromFees && st.StudentHasOutstandingPayment {
			hasOverlap := false
			for j := range exs {
				if exs[j].ExemptionIsActive && exs[j].OverlapsRange(from, to) {
					hasOverlap = true
					break
				}
			}
			if !hasOverlap {
				continue
			}
		}

		var missedBreakfast, missedLunch, missedDinner, daysOnHoliday int
		missedDateSet := make(map[int64]time.Time)
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if mealService.IsOnHoliday(hds, day) {
				daysOnHoliday++
				continue
			}
			missedToday := false
			if !data.hasTx(st.StudentID, day, model.MealTypeBreakfastDinner) {
				missedBreakfast++
				missedDinner++
				missedToday = true
			}
			if !data.hasTx(st.StudentID, day, model.MealTypeLunch) {
				missedLunch++
				missedToday = true
			}
			if missedToday {
				missedDateSet[day.Unix()] = day
			}
		}

		totalMissed := missedBreakfast + missedLunch + missedDinner
		if totalMissed == 0 {
			continue
		}

		missedDates := make([]time.Time, 0, len(missedDateSet))
		for _, d := range missedDateSet {
			missedDates = append(missedDates, d)
		}
		sort.Slice(missedDates, func(i, j int) bool { return missedDates[i].Before(missedDates[j]) })

		penalty := MissedMealPenalty.Mul(decimal.NewFromInt(int64(totalMissed)))
		key := buildingKey(st)
		g, ok := groups[key]
		if !ok {
			g = &dto.MonthlyBuildingGroup{BuildingNumber: key}
			groups[key] = g
		}
		g.Students = append(g.Students, dto.MonthlyStudentAbsenceRow{
			StudentID:             st.StudentID,
			StudentNationalID:     st.StudentNationalID,
			StudentFullName:       st.StudentFullName,
			StudentBuildingNumber: key,
			MissedDates:           missedDates,
			MissedBreakfastCount:  missedBreakfast,
			MissedLunchCount:      missedLunch,
			MissedDinnerCount:     missedDinner,
			TotalMissedMeals:      totalMissed,
			TotalPenalty:          penalty,
			DaysOnHoliday:         daysOnHoliday,
		})
		summary.TotalStudents++
		summary.MissedBreakfastCount += missedBreakfast
		summary.MissedLunchCount += missedLunch
		summary.MissedDinnerCount += missedDinner
		summary.TotalMissedMeals += totalMissed
		summary.TotalPenalty = summary.TotalPenalty.Add(penalty)
	}

	resp := &dto.MonthlyAbsenceReportResponse{FromDate: from, ToDate: to, Summary: summary}
	for _, g := range groups {
		sort.Slice(g.Students, func(i, j int) bool {
			return g.Students[i].StudentFullName < g.Students[j].StudentFullName
		})
		resp.Buildings = append(resp.Buildings, *g)
	}
	sort.Slice(resp.Buildings, func(i, j int) bool {
		return resp.Buildings[i].BuildingNumber < resp.Buildings[j].BuildingNumber
	})
	return resp, nil
}

/* =========================================================
   LAPORAN HARIAN RESTORAN (per meal type)
========================================================= */

// GetRestaurantDailyReport: expected/received/remaining per meal type untuk
// satu tanggal, opsional difilter per gedung. Remaining signed, tidak di-clamp.
func (s *ReportService) GetRestaurantDailyReport(asramaID uuid.UUID, date time.Time, buildingFilter *string) (*dto.RestaurantDailyReportResponse, error) {
	date = dbtime.DateOnly(date)

	var filters *dto.MealAbsenceFilters
	if buildingFilter != nil && *buildingFilter != "" {
		filters = &dto.MealAbsenceFilters{BuildingNumber: buildingFilter}
	}
	data, err := s.loadRange(asramaID, date, date, filters)
	if err != nil {
		return nil, err
	}

	expected := 0
	received := map[int]int{}
	for i := range data.students {
		st := &data.students[i]
		if !mealService.IsStudentEligibleForDate(st, data.exemptions[st.StudentID], date) {
			continue
		}
		if mealService.IsOnHoliday(data.holidays[st.StudentID], date) {
			continue
		}
		expected++
		if data.hasTx(st.StudentID, date, model.MealTypeBreakfastDinner) {
			received[model.MealTypeBreakfastDinner]++
		}
		if data.hasTx(st.StudentID, date, model.MealTypeLunch) {
			received[model.MealTypeLunch]++
		}
	}

	resp := &dto.RestaurantDailyReportResponse{Date: date}
	for _, id := range []int{model.MealTypeBreakfastDinner, model.MealTypeLunch} {
		stat := dto.MealTypeStat{
			MealTypeID:     id,
			MealTypeName:   model.MealTypeName(id),
			ExpectedMeals:  expected,
			ReceivedMeals:  received[id],
			RemainingMeals: expected - received[id],
		}
		resp.MealTypes = append(resp.MealTypes, stat)
		resp.Summary.TotalExpected += stat.ExpectedMeals
		resp.Summary.TotalReceived += stat.ReceivedMeals
		resp.Summary.TotalRemaining += stat.RemainingMeals
	}

	// guard bagi-nol: 0% kalau tidak ada yang diharapkan
	if resp.Summary.TotalExpected > 0 {
		resp.Summary.AttendancePercentage = decimal.NewFromInt(int64(resp.Summary.TotalReceived)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(resp.Summary.TotalExpected))).
			Round(2)
	} else {
		resp.Summary.AttendancePercentage = decimal.Zero
	}
	return resp, nil
}
