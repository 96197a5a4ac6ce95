// internals/features/dormitory/students/route/student_route.go
package routes

import (
	studentCtl "asramaku_backend/internals/features/dormitory/students/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := studentCtl.NewStudentController(db)

	grp := r.Group("/students")
	grp.Post("/", ctrl.CreateStudent)
	grp.Get("/", ctrl.GetStudents)
	grp.Get("/:id", ctrl.GetStudentByID)
	grp.Put("/:id", ctrl.UpdateStudent)
	grp.Delete("/:id", ctrl.DeleteStudent)
}
