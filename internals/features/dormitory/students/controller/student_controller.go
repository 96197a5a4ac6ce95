// file: internals/features/dormitory/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/dormitory/students/dto"
	"asramaku_backend/internals/features/dormitory/students/model"
	helper "asramaku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

// =============================
// ➕ POST /api/a/students
// =============================
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// NIK unik lintas asrama (kartu identitas nasional)
	var existing model.StudentModel
	err = ctrl.DB.
		Where("student_national_id = ? AND student_deleted_at IS NULL", req.StudentNationalID).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "NIK sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa NIK")
	}

	student := model.StudentModel{
		StudentAsramaID:       asramaID,
		StudentNationalID:     strings.TrimSpace(req.StudentNationalID),
		StudentCode:           strings.TrimSpace(req.StudentCode),
		StudentFullName:       strings.TrimSpace(req.StudentFullName),
		StudentBuildingNumber: req.BuildingNumber,
		StudentRoomNumber:     req.RoomNumber,
		StudentGovernment:     req.Government,
		StudentDistrict:       req.District,
		StudentFaculty:        req.Faculty,
		StudentPhone:          req.Phone,
	}
	if req.IsExemptFromFees != nil {
		student.StudentIsExemptFromFees = *req.IsExemptFromFees
	}
	if req.OutstandingAmount != nil {
		student.SetOutstanding(*req.OutstandingAmount)
	}

	if err := ctrl.DB.Create(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan penghuni")
	}
	return helper.JsonCreated(c, "Penghuni berhasil didaftarkan", dto.NewStudentResponse(&student))
}

// =============================
// 📄 GET /api/a/students
// =============================
func (ctrl *StudentController) GetStudents(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.StudentModel{}).
		Where("student_asrama_id = ? AND student_deleted_at IS NULL", asramaID)

	if v := c.Query("building_number"); v != "" {
		q = q.Where("student_building_number = ?", v)
	}
	if v := c.Query("government"); v != "" {
		q = q.Where("student_government = ?", v)
	}
	if v := c.Query("district"); v != "" {
		q = q.Where("student_district = ?", v)
	}
	if v := c.Query("faculty"); v != "" {
		q = q.Where("student_faculty = ?", v)
	}
	if v := c.Query("has_outstanding"); v == "true" {
		q = q.Where("student_has_outstanding_payment = ?", true)
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + v + "%"
		q = q.Where("student_full_name ILIKE ? OR student_national_id LIKE ? OR student_code LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung penghuni")
	}

	var rows []model.StudentModel
	if err := q.Order("student_full_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penghuni")
	}

	resp := make([]*dto.StudentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.NewStudentResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar penghuni", resp,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// 🔍 GET /api/a/students/:id
// =============================
func (ctrl *StudentController) GetStudentByID(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var student model.StudentModel
	if err := ctrl.DB.
		Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", id, asramaID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Penghuni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penghuni")
	}
	return helper.JsonOK(c, "Detail penghuni", dto.NewStudentResponse(&student))
}

// =============================
// ✏️ PUT /api/a/students/:id
// =============================
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var student model.StudentModel
	if err := ctrl.DB.
		Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", id, asramaID).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Penghuni tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data penghuni")
	}

	if req.StudentCode != nil {
		student.StudentCode = strings.TrimSpace(*req.StudentCode)
	}
	if req.StudentFullName != nil {
		student.StudentFullName = strings.TrimSpace(*req.StudentFullName)
	}
	if req.BuildingNumber != nil {
		student.StudentBuildingNumber = req.BuildingNumber
	}
	if req.RoomNumber != nil {
		student.StudentRoomNumber = req.RoomNumber
	}
	if req.Government != nil {
		student.StudentGovernment = req.Government
	}
	if req.District != nil {
		student.StudentDistrict = req.District
	}
	if req.Faculty != nil {
		student.StudentFaculty = req.Faculty
	}
	if req.Phone != nil {
		student.StudentPhone = req.Phone
	}
	if req.IsExemptFromFees != nil {
		student.StudentIsExemptFromFees = *req.IsExemptFromFees
	}
	if req.OutstandingAmount != nil {
		// satu pintu mutasi: flag & nominal selalu konsisten
		student.SetOutstanding(*req.OutstandingAmount)
	}
	student.StudentUpdatedAt = time.Now()

	if err := ctrl.DB.Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui penghuni")
	}
	return helper.JsonUpdated(c, "Penghuni berhasil diperbarui", dto.NewStudentResponse(&student))
}

// =============================
// 🗑️ DELETE /api/a/students/:id (soft delete)
// =============================
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.StudentModel{}).
		Where("student_id = ? AND student_asrama_id = ? AND student_deleted_at IS NULL", id, asramaID).
		Update("student_deleted_at", &now)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus penghuni")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Penghuni tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Penghuni berhasil dihapus", fiber.Map{"student_id": id})
}
