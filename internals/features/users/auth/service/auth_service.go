// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"asramaku_backend/internals/features/users/auth/dto"
	"asramaku_backend/internals/features/users/auth/model"
	userModel "asramaku_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials  = errors.New("email atau password salah")
	ErrUserInactive        = errors.New("akun sudah dinonaktifkan")
	ErrRefreshTokenInvalid = errors.New("refresh token tidak valid atau kadaluarsa")
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Login memverifikasi kredensial lalu menerbitkan access + refresh token.
func (s *AuthService) Login(email, password string, userAgent, ip *string) (*dto.LoginResponse, error) {
	var user userModel.UserModel
	if err := s.DB.
		Where("user_email = ? AND user_deleted_at IS NULL", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.UserIsActive {
		return nil, ErrUserInactive
	}
	if err := CheckPassword(user.UserPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user, userAgent, ip)
}

// Refresh menukar refresh token yang masih hidup dengan access token baru
// (rotasi: token lama dicabut, terbit token baru).
func (s *AuthService) Refresh(refreshPlain string, userAgent, ip *string) (*dto.LoginResponse, error) {
	hash := HashRefreshToken(refreshPlain)

	var row model.RefreshTokenModel
	if err := s.DB.
		Where("refresh_token_hash = ? AND refresh_token_revoked_at IS NULL AND refresh_token_expires_at > ?", hash, time.Now()).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}

	var user userModel.UserModel
	if err := s.DB.
		Where("user_id = ? AND user_deleted_at IS NULL", row.RefreshTokenUserID).
		First(&user).Error; err != nil {
		return nil, ErrRefreshTokenInvalid
	}
	if !user.UserIsActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	if err := s.DB.Model(&model.RefreshTokenModel{}).
		Where("refresh_token_id = ?", row.RefreshTokenID).
		Update("refresh_token_revoked_at", &now).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(&user, userAgent, ip)
}

func (s *AuthService) issueTokens(user *userModel.UserModel, userAgent, ip *string) (*dto.LoginResponse, error) {
	accessToken, expiresAt, err := GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshPlain, refreshHash, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	refreshRow := model.RefreshTokenModel{
		RefreshTokenUserID:    user.UserID,
		RefreshTokenHash:      refreshHash,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		RefreshTokenUserAgent: userAgent,
		RefreshTokenIP:        ip,
	}
	if err := s.DB.Create(&refreshRow).Error; err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshPlain,
		ExpiresAt:    expiresAt,
		User: dto.UserInfo{
			UserID:   user.UserID,
			UserName: user.UserName,
			Email:    user.UserEmail,
			Role:     user.UserRole,
			AsramaID: user.UserAsramaID,
		},
	}, nil
}

// Logout memasukkan access token ke blacklist (sampai kadaluarsa alami)
// dan mencabut semua refresh token user.
func (s *AuthService) Logout(rawAccessToken string, tokenExpiry time.Time, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		entry := model.TokenBlacklistModel{
			TokenBlacklistToken:     rawAccessToken,
			TokenBlacklistExpiredAt: tokenExpiry,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&model.RefreshTokenModel{}).
			Where("refresh_token_user_id = ? AND refresh_token_revoked_at IS NULL", userID).
			Update("refresh_token_revoked_at", &now).Error
	})
}
