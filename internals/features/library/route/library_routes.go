package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/library/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func LibraryRoutes(api fiber.Router, db *gorm.DB) {
	books := controller.NewBookController(db)
	members := controller.NewMemberController(db)
	issues := controller.NewIssueController(db)

	g := api.Group("/library", features.RequirePermission(constants.PermLibraryManage))

	g.Get("/books", books.List)
	g.Post("/books", books.Create)
	g.Get("/books/:id", books.Get)
	g.Put("/books/:id", books.Update)
	g.Delete("/books/:id", books.Delete)

	g.Get("/members", members.List)
	g.Post("/members", members.Create)
	g.Delete("/members/:id", members.Delete)

	g.Get("/issues", issues.List)
	g.Post("/issues", issues.Create)
	g.Post("/issues/:id/return", issues.Return)
}
