package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/finance/fees/controller"
	features "schoolku_backend/internals/middlewares/features"
)

func FeeRoutes(api fiber.Router, db *gorm.DB) {
	guard := features.ModuleGuard(constants.PermFeesView, constants.PermFeesManage)
	collect := features.RequirePermission(constants.PermFeesCollect)

	g := api.Group("/fees")

	types := controller.NewFeeTypeController(db)
	g.Get("/types", guard.Read, types.List)
	g.Get("/types/:id", guard.Read, types.Get)
	g.Post("/types", guard.Write, types.Create)
	g.Put("/types/:id", guard.Write, types.Update)
	g.Delete("/types/:id", guard.Write, types.Delete)

	groups := controller.NewFeeGroupController(db)
	g.Get("/groups", guard.Read, groups.List)
	g.Get("/groups/:id", guard.Read, groups.Get)
	g.Post("/groups", guard.Write, groups.Create)
	g.Put("/groups/:id", guard.Write, groups.Update)
	g.Delete("/groups/:id", guard.Write, groups.Delete)
	g.Get("/groups/:id/types", guard.Read, groups.ListTypes)
	g.Post("/groups/:id/types", guard.Write, groups.AddType)
	g.Put("/groups/:id/types/:typeId", guard.Write, groups.UpdateType)
	g.Delete("/groups/:id/types/:typeId", guard.Write, groups.DeleteType)

	masters := controller.NewFeesMasterController(db)
	g.Get("/masters", guard.Read, masters.List)
	g.Post("/masters", guard.Write, masters.Create)
	g.Post("/masters/:id/assign", guard.Write, masters.Assign)
	g.Delete("/masters/:id", guard.Write, masters.Delete)
	g.Get("/student-masters", guard.Read, masters.ListStudent)
	g.Post("/student-masters", guard.Write, masters.CreateStudent)
	g.Patch("/student-masters/:id", guard.Write, masters.PatchStudent)

	pay := controller.NewFeeCollectController(db)
	g.Get("/collect", guard.Read, pay.List)
	g.Post("/collect", collect, pay.Collect)
	g.Get("/due", guard.Read, pay.Due)
}
