// file: internals/features/dashboard/service/dashboard_service.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/dashboard/dto"
	holidayModel "asramaku_backend/internals/features/dormitory/holidays/model"
	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	paymentModel "asramaku_backend/internals/features/finance/payments/model"
	"asramaku_backend/internals/features/meals/meal_transactions/model"
	mealService "asramaku_backend/internals/features/meals/meal_transactions/service"
	"asramaku_backend/internals/helpers/dbtime"
)

const unspecifiedBuilding = "Tanpa Gedung"

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// GetRegistrationDashboardStats merangkum satu hari: jatah makan yang
// diharapkan vs yang sudah diambil per jenis makan, sebaran per gedung,
// dan aktivitas terbaru. Semua dihitung in-memory dari 4 query.
func (s *DashboardService) GetRegistrationDashboardStats(asramaID uuid.UUID, today time.Time) (*dto.RegistrationDashboardResponse, error) {
	today = dbtime.DateOnly(today)

	// 1) Semua penghuni aktif
	var students []studentModel.StudentModel
	if err := s.DB.
		Where("student_asrama_id = ? AND student_deleted_at IS NULL", asramaID).
		Find(&students).Error; err != nil {
		return nil, err
	}

	// 2) Exemption aktif yang mencakup hari ini
	var exemptions []paymentModel.PaymentExemptionModel
	if err := s.DB.
		Where("exemption_asrama_id = ? AND exemption_is_active = ? AND exemption_deleted_at IS NULL", asramaID, true).
		Where("exemption_start_date <= ? AND exemption_end_date >= ?", today, today).
		Find(&exemptions).Error; err != nil {
		return nil, err
	}
	exByStudent := make(map[uuid.UUID][]paymentModel.PaymentExemptionModel)
	for i := range exemptions {
		sid := exemptions[i].ExemptionStudentID
		exByStudent[sid] = append(exByStudent[sid], exemptions[i])
	}

	// 3) Izin pulang yang mencakup hari ini
	var holidays []holidayModel.HolidayModel
	if err := s.DB.
		Where("holiday_asrama_id = ? AND holiday_deleted_at IS NULL", asramaID).
		Where("holiday_start_date <= ? AND holiday_end_date >= ?", today, today).
		Find(&holidays).Error; err != nil {
		return nil, err
	}
	onLeave := make(map[uuid.UUID]bool)
	for i := range holidays {
		onLeave[holidays[i].HolidayStudentID] = true
	}

	// 4) Transaksi makan hari ini
	var txs []model.MealTransactionModel
	if err := s.DB.
		Where("meal_transaction_asrama_id = ? AND meal_transaction_deleted_at IS NULL", asramaID).
		Where("meal_transaction_date = ?", today).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	resp := &dto.RegistrationDashboardResponse{
		Date:          today,
		TotalStudents: len(students),
	}

	// 5) Siapa yang diharapkan makan hari ini (layak + tidak sedang izin)
	buildings := make(map[string]*dto.DashboardBuildingStat)
	eligibleIDs := make(map[uuid.UUID]bool)
	buildingOf := make(map[uuid.UUID]string)
	eligiblePerBuilding := map[string]int{}
	expected := 0
	for i := range students {
		st := &students[i]

		key := unspecifiedBuilding
		if st.StudentBuildingNumber != nil && *st.StudentBuildingNumber != "" {
			key = *st.StudentBuildingNumber
		}
		buildingOf[st.StudentID] = key
		b, ok := buildings[key]
		if !ok {
			b = &dto.DashboardBuildingStat{BuildingNumber: key}
			buildings[key] = b
		}
		b.TotalStudents++

		if onLeave[st.StudentID] {
			b.OnLeaveStudents++
			resp.OnLeaveToday++
			continue
		}
		b.ActiveStudents++

		if mealService.IsStudentEligibleForDate(st, exByStudent[st.StudentID], today) {
			eligibleIDs[st.StudentID] = true
			eligiblePerBuilding[key]++
			expected++
		}
	}
	resp.EligibleToday = expected

	// 6) Jatah terambil: hanya transaksi milik penghuni yang diharapkan makan
	//    hari ini — scan dari penghuni izin/nunggak/nonaktif tidak dihitung.
	received := map[int]int{}
	receivedPerBuilding := make(map[string]map[int]int)
	for i := range txs {
		t := &txs[i]
		if !eligibleIDs[t.MealTransactionStudentID] {
			continue
		}
		received[t.MealTransactionMealTypeID]++
		key := buildingOf[t.MealTransactionStudentID]
		if receivedPerBuilding[key] == nil {
			receivedPerBuilding[key] = map[int]int{}
		}
		receivedPerBuilding[key][t.MealTransactionMealTypeID]++
	}

	totalReceived := 0
	for _, id := range []int{model.MealTypeBreakfastDinner, model.MealTypeLunch} {
		resp.MealTypes = append(resp.MealTypes, dto.DashboardMealTypeStat{
			MealTypeID:     id,
			MealTypeName:   model.MealTypeName(id),
			ExpectedMeals:  expected,
			ReceivedMeals:  received[id],
			RemainingMeals: expected - received[id],
		})
		totalReceived += received[id]
	}

	// 0% kalau tidak ada jatah yang diharapkan (asrama kosong / semua izin)
	totalExpected := expected * len(resp.MealTypes)
	if totalExpected > 0 {
		resp.AttendancePercentage = decimal.NewFromInt(int64(totalReceived)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(totalExpected))).
			Round(2)
	} else {
		resp.AttendancePercentage = decimal.Zero
	}

	keys := make([]string, 0, len(buildings))
	for k := range buildings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := buildings[k]
		for _, id := range []int{model.MealTypeBreakfastDinner, model.MealTypeLunch} {
			b.MealTypes = append(b.MealTypes, dto.DashboardMealTypeStat{
				MealTypeID:     id,
				MealTypeName:   model.MealTypeName(id),
				ExpectedMeals:  eligiblePerBuilding[k],
				ReceivedMeals:  receivedPerBuilding[k][id],
				RemainingMeals: eligiblePerBuilding[k] - receivedPerBuilding[k][id],
			})
		}
		resp.Buildings = append(resp.Buildings, *b)
	}

	recent, err := s.loadRecentActivity(asramaID, today)
	if err != nil {
		return nil, err
	}
	resp.RecentActivity = *recent

	return resp, nil
}

// 5 penghuni terbaru + izin pulang yang dibuat 7 hari terakhir (maks 5)
func (s *DashboardService) loadRecentActivity(asramaID uuid.UUID, today time.Time) (*dto.DashboardRecentActivity, error) {
	out := &dto.DashboardRecentActivity{
		NewestStudents: []dto.RecentStudentItem{},
		RecentHolidays: []dto.RecentHolidayItem{},
	}

	var newest []studentModel.StudentModel
	if err := s.DB.
		Where("student_asrama_id = ? AND student_deleted_at IS NULL", asramaID).
		Order("student_created_at DESC").
		Limit(5).
		Find(&newest).Error; err != nil {
		return nil, err
	}
	for i := range newest {
		out.NewestStudents = append(out.NewestStudents, dto.RecentStudentItem{
			StudentID:       newest[i].StudentID,
			StudentFullName: newest[i].StudentFullName,
			StudentCode:     newest[i].StudentCode,
			CreatedAt:       newest[i].StudentCreatedAt,
		})
	}

	weekAgo := today.AddDate(0, 0, -7)
	var recentHolidays []holidayModel.HolidayModel
	if err := s.DB.
		Where("holiday_asrama_id = ? AND holiday_deleted_at IS NULL", asramaID).
		Where("holiday_created_at >= ?", weekAgo).
		Order("holiday_created_at DESC").
		Limit(5).
		Find(&recentHolidays).Error; err != nil {
		return nil, err
	}
	if len(recentHolidays) > 0 {
		ids := make([]uuid.UUID, 0, len(recentHolidays))
		for i := range recentHolidays {
			ids = append(ids, recentHolidays[i].HolidayStudentID)
		}
		var owners []studentModel.StudentModel
		if err := s.DB.Where("student_id IN ?", ids).Find(&owners).Error; err != nil {
			return nil, err
		}
		nameByID := make(map[uuid.UUID]string, len(owners))
		for i := range owners {
			nameByID[owners[i].StudentID] = owners[i].StudentFullName
		}
		for i := range recentHolidays {
			h := &recentHolidays[i]
			out.RecentHolidays = append(out.RecentHolidays, dto.RecentHolidayItem{
				HolidayID:       h.HolidayID,
				StudentID:       h.HolidayStudentID,
				StudentFullName: nameByID[h.HolidayStudentID],
				StartDate:       h.HolidayStartDate,
				EndDate:         h.HolidayEndDate,
				CreatedAt:       h.HolidayCreatedAt,
			})
		}
	}

	return out, nil
}
