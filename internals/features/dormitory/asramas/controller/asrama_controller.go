// file: internals/features/dormitory/asramas/controller/asrama_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/dormitory/asramas/dto"
	"asramaku_backend/internals/features/dormitory/asramas/model"
	helper "asramaku_backend/internals/helpers"
)

type AsramaController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAsramaController(db *gorm.DB) *AsramaController {
	return &AsramaController{DB: db, Validate: validator.New()}
}

// =============================
// ➕ POST /api/a/asramas (owner)
// =============================
func (ctrl *AsramaController) CreateAsrama(c *fiber.Ctx) error {
	var req dto.CreateAsramaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// slug dari nama, dijamin unik (suffix -2, -3, dst.)
	base := helper.GenerateSlug(req.AsramaName)
	slug, err := helper.EnsureUniqueSlug(ctrl.DB, base, "asramas", "asrama_slug")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug asrama")
	}

	asrama := model.AsramaModel{
		AsramaName:    strings.TrimSpace(req.AsramaName),
		AsramaSlug:    slug,
		AsramaAddress: req.Address,
		AsramaCity:    req.City,
	}
	if req.Timezone != nil && *req.Timezone != "" {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Timezone tidak dikenal")
		}
		asrama.AsramaTimezone = *req.Timezone
	} else {
		asrama.AsramaTimezone = "Asia/Jakarta"
	}
	if len(req.Facilities) > 0 {
		asrama.AsramaFacilities = req.Facilities
	}
	asrama.AsramaIsActive = true

	if err := ctrl.DB.Create(&asrama).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan asrama")
	}
	return helper.JsonCreated(c, "Asrama berhasil dibuat", dto.NewAsramaResponse(&asrama))
}

// =============================
// 🔍 GET /api/a/asramas/me
// =============================
func (ctrl *AsramaController) GetMyAsrama(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var asrama model.AsramaModel
	if err := ctrl.DB.
		Where("asrama_id = ? AND asrama_deleted_at IS NULL", asramaID).
		First(&asrama).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Asrama tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data asrama")
	}
	return helper.JsonOK(c, "Detail asrama", dto.NewAsramaResponse(&asrama))
}

// =============================
// ✏️ PUT /api/a/asramas/me
// =============================
func (ctrl *AsramaController) UpdateMyAsrama(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateAsramaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var asrama model.AsramaModel
	if err := ctrl.DB.
		Where("asrama_id = ? AND asrama_deleted_at IS NULL", asramaID).
		First(&asrama).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Asrama tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data asrama")
	}

	if req.AsramaName != nil && *req.AsramaName != "" && *req.AsramaName != asrama.AsramaName {
		asrama.AsramaName = strings.TrimSpace(*req.AsramaName)
		base := helper.GenerateSlug(asrama.AsramaName)
		slug, err := helper.EnsureUniqueSlug(ctrl.DB, base, "asramas", "asrama_slug")
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui slug asrama")
		}
		asrama.AsramaSlug = slug
	}
	if req.Address != nil {
		asrama.AsramaAddress = req.Address
	}
	if req.City != nil {
		asrama.AsramaCity = req.City
	}
	if req.Timezone != nil && *req.Timezone != "" {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Timezone tidak dikenal")
		}
		asrama.AsramaTimezone = *req.Timezone
	}
	if req.Facilities != nil {
		asrama.AsramaFacilities = *req.Facilities
	}
	if req.IsActive != nil {
		asrama.AsramaIsActive = *req.IsActive
	}
	asrama.AsramaUpdatedAt = time.Now()

	if err := ctrl.DB.Save(&asrama).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui asrama")
	}
	return helper.JsonUpdated(c, "Asrama berhasil diperbarui", dto.NewAsramaResponse(&asrama))
}

// =============================
// 🏢 GET /api/a/asramas/me/buildings
// =============================
func (ctrl *AsramaController) GetBuildings(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromTokenPreferStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []dto.BuildingItem
	if err := ctrl.DB.
		Table("students").
		Select("student_building_number AS building_number, COUNT(*) AS total_students").
		Where("student_asrama_id = ? AND student_deleted_at IS NULL AND student_building_number IS NOT NULL", asramaID).
		Group("student_building_number").
		Order("student_building_number ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar gedung")
	}
	return helper.JsonOK(c, "Daftar gedung", rows)
}
