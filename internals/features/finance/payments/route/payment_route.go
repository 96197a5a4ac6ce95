// internals/features/finance/payments/route/payment_route.go
package routes

import (
	"asramaku_backend/internals/constants"
	paymentCtl "asramaku_backend/internals/features/finance/payments/controller"
	authMiddleware "asramaku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// rute admin (di belakang JWT, group /api/a)
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	payCtrl := paymentCtl.NewPaymentController(db)
	exCtrl := paymentCtl.NewExemptionController(db)

	pay := r.Group("/payments")
	pay.Post("/", payCtrl.CreatePayment)
	pay.Get("/", payCtrl.GetPayments)
	pay.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("pembatalan pembayaran"), constants.AdminAndAbove...),
		payCtrl.DeletePayment,
	)

	ex := r.Group("/payment-exemptions")
	ex.Post("/", exCtrl.CreateExemption)
	ex.Get("/", exCtrl.GetExemptions)
	ex.Put("/:id", exCtrl.UpdateExemption)
	ex.Delete("/:id", exCtrl.DeleteExemption)
}

// webhook Midtrans (publik, dikecualikan dari auth middleware)
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB) {
	payCtrl := paymentCtl.NewPaymentController(db)
	r.Post("/payments/notification", payCtrl.HandleNotification)
}
