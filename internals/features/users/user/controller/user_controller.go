// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "asramaku_backend/internals/features/users/auth/service"
	"asramaku_backend/internals/features/users/user/dto"
	"asramaku_backend/internals/features/users/user/model"
	helper "asramaku_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// =============================
// ➕ POST /api/a/users (admin membuat akun staff/admin asramanya)
// =============================
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var existing model.UserModel
	err = ctrl.DB.Where("user_email = ? AND user_deleted_at IS NULL", email).First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	user := model.UserModel{
		UserAsramaID: &asramaID,
		UserName:     strings.TrimSpace(req.UserName),
		UserEmail:    email,
		UserPassword: hash,
		UserRole:     req.Role,
		UserIsActive: true,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan user")
	}
	return helper.JsonCreated(c, "Akun berhasil dibuat", dto.NewUserResponse(&user))
}

// =============================
// 📄 GET /api/a/users
// =============================
func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.UserModel{}).
		Where("user_asrama_id = ? AND user_deleted_at IS NULL", asramaID)
	if v := c.Query("role"); v != "" {
		q = q.Where("user_role = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
	}

	var rows []model.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	resp := make([]*dto.UserResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.NewUserResponse(&rows[i]))
	}
	return helper.JsonList(c, "Daftar user", resp,
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// =============================
// ✏️ PUT /api/a/users/:id
// =============================
func (ctrl *UserController) UpdateUser(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	if err := ctrl.DB.
		Where("user_id = ? AND user_asrama_id = ? AND user_deleted_at IS NULL", id, asramaID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	if req.UserName != nil {
		user.UserName = strings.TrimSpace(*req.UserName)
	}
	if req.Password != nil {
		hash, err := authService.HashPassword(*req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		user.UserPassword = hash
	}
	if req.Role != nil {
		user.UserRole = *req.Role
	}
	if req.IsActive != nil {
		user.UserIsActive = *req.IsActive
	}

	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.NewUserResponse(&user))
}

// =============================
// 🗑️ DELETE /api/a/users/:id (soft delete)
// =============================
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	asramaID, err := helper.GetAsramaIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.UserModel{}).
		Where("user_id = ? AND user_asrama_id = ? AND user_deleted_at IS NULL", id, asramaID).
		Updates(map[string]interface{}{
			"user_deleted_at": &now,
			"user_is_active":  false,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"user_id": id})
}
