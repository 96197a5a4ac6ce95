// internals/features/users/user/route/user_route.go
package routes

import (
	"asramaku_backend/internals/constants"
	userCtl "asramaku_backend/internals/features/users/user/controller"
	authMiddleware "asramaku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userCtl.NewUserController(db)

	grp := r.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen akun"), constants.AdminAndAbove...),
	)
	grp.Post("/", ctrl.CreateUser)
	grp.Get("/", ctrl.GetUsers)
	grp.Put("/:id", ctrl.UpdateUser)
	grp.Delete("/:id", ctrl.DeleteUser)
}
