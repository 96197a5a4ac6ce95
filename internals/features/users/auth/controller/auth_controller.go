// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"asramaku_backend/internals/features/users/auth/dto"
	"asramaku_backend/internals/features/users/auth/service"
	userModel "asramaku_backend/internals/features/users/user/model"
	helper "asramaku_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Service  *service.AuthService
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:       db,
		Service:  service.NewAuthService(db),
		Validate: validator.New(),
	}
}

// =============================
// 🔑 POST /api/auth/login
// =============================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	resp, err := ac.Service.Login(req.Email, req.Password, &ua, &ip)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrUserInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
		}
	}
	return helper.JsonOK(c, "Login berhasil", resp)
}

// =============================
// 🔄 POST /api/auth/refresh-token
// =============================
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.RefreshToken == "" {
		req.RefreshToken = helper.GetRefreshTokenFromCookie(c)
	}
	if req.RefreshToken == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Refresh token wajib diisi")
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	resp, err := ac.Service.Refresh(req.RefreshToken, &ua, &ip)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenInvalid):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrUserInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui token")
		}
	}
	return helper.JsonOK(c, "Token diperbarui", resp)
}

// =============================
// 🚪 POST /api/a/auth/logout
// =============================
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	userIDStr, _ := c.Locals("user_id").(string)

	// ambil exp dari token supaya entri blacklist ikut kadaluarsa alami
	expiry := time.Now().Add(service.AccessTokenTTL)
	if token, _, err := new(jwt.Parser).ParseUnverified(raw, jwt.MapClaims{}); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiry = time.Unix(int64(exp), 0)
			}
		}
	}

	if err := ac.Service.Logout(raw, expiry, userIDStr); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	return helper.JsonOK(c, "Logout berhasil", fiber.Map{"user_id": userIDStr})
}

// =============================
// 👤 GET /api/a/auth/me
// =============================
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User ID tidak ada di context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Format user ID tidak valid")
	}

	var user userModel.UserModel
	if err := ac.DB.
		Where("user_id = ? AND user_deleted_at IS NULL", userID).
		First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	return helper.JsonOK(c, "Profil user", dto.UserInfo{
		UserID:   user.UserID,
		UserName: user.UserName,
		Email:    user.UserEmail,
		Role:     user.UserRole,
		AsramaID: user.UserAsramaID,
	})
}
