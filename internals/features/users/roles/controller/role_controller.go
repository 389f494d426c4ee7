package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	staffModel "schoolku_backend/internals/features/staff/model"
	"schoolku_backend/internals/features/users/roles/dto"
	"schoolku_backend/internals/features/users/roles/model"
	"schoolku_backend/internals/features/users/roles/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type RoleController struct {
	DB *gorm.DB
}

func NewRoleController(db *gorm.DB) *RoleController {
	return &RoleController{DB: db}
}

func (ctl *RoleController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/permissions: katalog global.
func (ctl *RoleController) ListPermissions(c *fiber.Ctx) error {
	var rows []model.PermissionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("permission_module ASC, permission_slug ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", rows)
}

// GET /api/roles
func (ctl *RoleController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.RoleModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(role_name) LIKE ? OR LOWER(role_slug) LIKE ?", s, s)
	}
	rows := []model.RoleModel{}
	pg, err := scope.Page(q, p, "role_is_system DESC, role_name ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

// GET /api/roles/:id
func (ctl *RoleController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", res)
}

func (ctl *RoleController) load(t *scope.Tenant, id uuid.UUID) (*dto.RoleResponse, error) {
	role, err := scope.First[model.RoleModel](t, id)
	if err != nil {
		return nil, err
	}
	perms := []model.PermissionModel{}
	err = t.Global().Model(&model.PermissionModel{}).
		Joins("JOIN role_permissions ON role_permissions.role_permission_permission_id = permissions.permission_id").
		Where("role_permissions.role_permission_role_id = ? AND role_permissions.role_permission_school_id = ?", id, t.SchoolID).
		Order("permissions.permission_slug").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return &dto.RoleResponse{RoleModel: *role, Permissions: perms}, nil
}

// POST /api/roles
func (ctl *RoleController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateRoleRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.Slug == "" {
		return helper.JsonFromError(c, helper.Validation("slug", "slug is required"))
	}
	if err := t.Unique(&model.RoleModel{}, "role_name", req.Name, uuid.Nil, "name"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Unique(&model.RoleModel{}, "role_slug", req.Slug, uuid.Nil, "slug"); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.checkPermissionIDs(t, req.PermissionIDs); err != nil {
		return helper.JsonFromError(c, err)
	}

	role := req.ToModel()
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Create(role); err != nil {
			return err
		}
		return service.ReplaceRolePermissions(tx, role.RoleID, req.PermissionIDs)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ctl.load(t, role.RoleID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Role created", res)
}

// PUT /api/roles/:id
func (ctl *RoleController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cur, err := scope.First[model.RoleModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.UpdateRoleRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.JsonFromError(c, err)
	}
	if cur.RoleIsSystem && req.Renames(cur) {
		return helper.JsonFromError(c, helper.Conflict("name", "system roles cannot be renamed"))
	}
	if req.Name.Set() {
		if err := t.Unique(&model.RoleModel{}, "role_name", req.Name.Get(), id, "name"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if req.Slug.Set() {
		if err := t.Unique(&model.RoleModel{}, "role_slug", req.Slug.Get(), id, "slug"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.RoleModel{}, id, req.Updates()); err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Role updated", res)
}

// PUT /api/roles/:id/permissions: ganti seluruh set permission.
func (ctl *RoleController) SetPermissions(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.RoleModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.SetPermissionsRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.checkPermissionIDs(t, req.PermissionIDs); err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := t.Transaction(func(tx *scope.Tenant) error {
		return service.ReplaceRolePermissions(tx, id, req.PermissionIDs)
	}); err != nil {
		return helper.JsonFromError(c, err)
	}
	res, err := ctl.load(t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Role permissions updated", res)
}

// DELETE /api/roles/:id
func (ctl *RoleController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	role, err := scope.First[model.RoleModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if role.RoleIsSystem {
		return helper.JsonFromError(c, helper.Conflict("role", "system roles cannot be deleted"))
	}
	if used, err := t.Exists(&userModel.UserModel{}, "user_role_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("role", "role is assigned to users"))
	}
	if used, err := t.Exists(&staffModel.StaffModel{}, "staff_role_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if used {
		return helper.JsonFromError(c, helper.Conflict("role", "role is assigned to staff"))
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := service.ReplaceRolePermissions(tx, id, nil); err != nil {
			return err
		}
		return tx.Delete(&model.RoleModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Role deleted")
}

func (ctl *RoleController) checkPermissionIDs(t *scope.Tenant, ids []uuid.UUID) error {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := t.Global().Model(&model.PermissionModel{}).Where("permission_id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(ids) {
		return helper.Validation("permissionIds", "permissionIds contains unknown permission")
	}
	return nil
}
