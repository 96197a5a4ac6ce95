// file: internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"asramaku_backend/internals/configs"
	userModel "asramaku_backend/internals/features/users/user/model"
)

const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// GenerateAccessToken menerbitkan JWT HS256.
// Klaim asrama_* dibaca middleware untuk menentukan tenant aktif.
func GenerateAccessToken(user *userModel.UserModel) (string, time.Time, error) {
	expiresAt := time.Now().Add(AccessTokenTTL)

	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"exp":       expiresAt.Unix(),
		"iat":       time.Now().Unix(),
	}
	if user.UserAsramaID != nil {
		ids := []string{user.UserAsramaID.String()}
		switch user.UserRole {
		case "admin":
			claims["asrama_admin_ids"] = ids
		case "staff":
			claims["asrama_staff_ids"] = ids
		}
		claims["asrama_ids"] = ids
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// GenerateRefreshToken membuat token opaque acak.
// Plaintext dikirim ke client; DB hanya menyimpan hash-nya.
func GenerateRefreshToken() (plain string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashRefreshToken(plain), nil
}

func HashRefreshToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
