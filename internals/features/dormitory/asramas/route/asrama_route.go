// internals/features/dormitory/asramas/route/asrama_route.go
package routes

import (
	asramaCtl "asramaku_backend/internals/features/dormitory/asramas/controller"
	"asramaku_backend/internals/constants"
	authMiddleware "asramaku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AsramaAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := asramaCtl.NewAsramaController(db)

	grp := r.Group("/asramas")
	// hanya owner platform yang boleh membuat tenant baru
	grp.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorOwner("membuat asrama"), constants.OwnerOnly...),
		ctrl.CreateAsrama,
	)
	grp.Get("/me", ctrl.GetMyAsrama)
	grp.Put("/me", ctrl.UpdateMyAsrama)
	grp.Get("/me/buildings", ctrl.GetBuildings)
}
