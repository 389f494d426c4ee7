package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/schools/dto"
	"schoolku_backend/internals/features/schools/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

// GET /api/school
func (ctl *SchoolController) Get(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	school, err := scope.First[model.SchoolModel](t, tc.SchoolID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", school)
}

// PUT /api/school
func (ctl *SchoolController) Update(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateSchoolRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}

	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	if err := t.Updates(&model.SchoolModel{}, tc.SchoolID, req.Updates()); err != nil {
		return helper.JsonFromError(c, err)
	}
	school, err := scope.First[model.SchoolModel](t, tc.SchoolID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "School updated", school)
}
