package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	staffModel "schoolku_backend/internals/features/staff/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	"schoolku_backend/internals/features/users/users/dto"
	"schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/users?search=&roleId=&isActive=
func (ctl *UserController) List(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.UserModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(user_username) LIKE ? OR LOWER(user_full_name) LIKE ? OR LOWER(user_email) LIKE ?", s, s, s)
	}
	if id := helper.QueryUUID(c, "roleId"); id != nil {
		q = q.Where("user_role_id = ?", *id)
	}
	switch c.Query("isActive") {
	case "true":
		q = q.Where("user_is_active = ?", true)
	case "false":
		q = q.Where("user_is_active = ?", false)
	}

	rows := []model.UserModel{}
	pg, err := scope.Page(q, p, "user_full_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *UserController) Get(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	u, err := scope.First[model.UserModel](scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", u)
}

func (ctl *UserController) Create(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())

	var req dto.CreateUserRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.UserModel{}, "user_username", req.Username, uuid.Nil, "username"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.UserModel{}, "user_email", req.Email, uuid.Nil, "email"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.RoleID != nil {
		if err := t.Owns(&roleModel.RoleModel{}, *req.RoleID); err != nil {
			return helper.JsonFromError(c, err)
		}
	}

	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	u := req.ToModel(hash)
	if err := t.Create(u); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "User created", u)
}

func (ctl *UserController) Update(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.UserModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.UpdateUserRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Username.Present {
		if err := t.Unique(&model.UserModel{}, "user_username", req.Username.Get(), id, "username"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if req.Email.Present {
		if err := t.Unique(&model.UserModel{}, "user_email", req.Email.Get(), id, "email"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if req.RoleID.Set() {
		if err := t.Owns(&roleModel.RoleModel{}, req.RoleID.Get()); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if id == tc.UserID && req.IsActive.Set() && !req.IsActive.Get() {
		return helper.JsonFromError(c, helper.Conflict("isActive", "cannot deactivate your own account"))
	}

	updates := req.Updates()
	if req.Password.Present {
		hash, err := helperAuth.HashPassword(req.Password.Get())
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		updates["user_password_hash"] = hash
	}
	if err := t.Updates(&model.UserModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	u, err := scope.First[model.UserModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", u)
}

func (ctl *UserController) Delete(c *fiber.Ctx) error {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	t := scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext())
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if id == tc.UserID {
		return helper.JsonFromError(c, helper.Conflict("id", "cannot delete your own account"))
	}
	if _, err := scope.First[model.UserModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if linked, err := t.Exists(&staffModel.StaffModel{}, "staff_user_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if linked {
		return helper.JsonFromError(c, helper.Conflict("id", "user is linked to a staff record"))
	}
	if err := t.Delete(&model.UserModel{}, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted")
}
