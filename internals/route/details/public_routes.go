// file: internals/route/details/public_routes.go
package details

import (
	paymentRoutes "asramaku_backend/internals/features/finance/payments/route"
	authRoutes "asramaku_backend/internals/features/users/auth/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Rute tanpa JWT: login, refresh token, dan webhook gateway pembayaran.
func PublicRoutes(r fiber.Router, db *gorm.DB) {
	authRoutes.AuthPublicRoutes(r, db)
	paymentRoutes.PaymentPublicRoutes(r, db)
}
