package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	attendanceModel "schoolku_backend/internals/features/attendance/model"
	libraryModel "schoolku_backend/internals/features/library/model"
	"schoolku_backend/internals/features/staff/dto"
	"schoolku_backend/internals/features/staff/model"
	"schoolku_backend/internals/features/staff/service"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

func (ctl *StaffController) tenant(c *fiber.Ctx) (*scope.Tenant, error) {
	tc, err := helperAuth.GetTenant(c)
	if err != nil {
		return nil, err
	}
	return scope.For(ctl.DB, tc.SchoolID).WithContext(c.UserContext()), nil
}

// GET /api/staff?search=&roleId=&departmentId=&isActive=
func (ctl *StaffController) List(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultLimit, helper.MaxLimit)

	q := t.Query(&model.StaffModel{})
	if s := helper.QuerySearch(c); s != "" {
		q = q.Where("LOWER(staff_first_name) LIKE ? OR LOWER(staff_last_name) LIKE ? OR LOWER(staff_employee_id) LIKE ?", s, s, s)
	}
	if id := helper.QueryUUID(c, "roleId"); id != nil {
		q = q.Where("staff_role_id = ?", *id)
	}
	if id := helper.QueryUUID(c, "departmentId"); id != nil {
		q = q.Where("staff_department_id = ?", *id)
	}
	switch c.Query("isActive") {
	case "true":
		q = q.Where("staff_is_active = ?", true)
	case "false":
		q = q.Where("staff_is_active = ?", false)
	}
	rows := []model.StaffModel{}
	pg, err := scope.Page(q, p, "staff_employee_id ASC", &rows)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, rows, pg)
}

func (ctl *StaffController) Get(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.StaffModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "", m)
}

// refs memastikan user/role/department yang dirujuk milik tenant.
func refs(t *scope.Tenant, userID, roleID, departmentID *uuid.UUID) error {
	if userID != nil {
		if err := t.Owns(&userModel.UserModel{}, *userID); err != nil {
			return err
		}
	}
	if roleID != nil {
		if err := t.Owns(&roleModel.RoleModel{}, *roleID); err != nil {
			return err
		}
	}
	if departmentID != nil {
		if err := t.Owns(&model.DepartmentModel{}, *departmentID); err != nil {
			return err
		}
	}
	return nil
}

func (ctl *StaffController) Create(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateStaffRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := refs(t, req.UserID, req.RoleID, req.DepartmentID); err != nil {
		return helper.JsonFromError(c, err)
	}

	err = t.Transaction(func(tx *scope.Tenant) error {
		if m.StaffEmployeeID == "" {
			id, err := service.NextEmployeeID(tx)
			if err != nil {
				return err
			}
			m.StaffEmployeeID = id
		} else if err := tx.Unique(&model.StaffModel{}, "staff_employee_id", m.StaffEmployeeID, uuid.Nil, "employeeId"); err != nil {
			return err
		}
		return tx.Create(m)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Staff created", m)
}

func (ctl *StaffController) Update(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StaffModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateStaffRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return helper.JsonFromError(c, err)
	}
	updates, err := req.Updates()
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := refs(t, req.UserID.Value, req.RoleID.Value, req.DepartmentID.Value); err != nil {
		return helper.JsonFromError(c, err)
	}
	if req.EmployeeID.Set() {
		if err := t.Unique(&model.StaffModel{}, "staff_employee_id", req.EmployeeID.Get(), id, "employeeId"); err != nil {
			return helper.JsonFromError(c, err)
		}
	}
	if err := t.Updates(&model.StaffModel{}, id, updates); err != nil {
		return helper.JsonFromError(c, err)
	}
	m, err := scope.First[model.StaffModel](t, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Staff updated", m)
}

func (ctl *StaffController) Delete(c *fiber.Ctx) error {
	t, err := ctl.tenant(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if _, err := scope.First[model.StaffModel](t, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	if has, err := t.Exists(&libraryModel.LibraryMemberModel{}, "library_member_staff_id = ?", id); err != nil {
		return helper.JsonFromError(c, err)
	} else if has {
		return helper.JsonFromError(c, helper.Conflict("id", "staff is a library member"))
	}
	err = t.Transaction(func(tx *scope.Tenant) error {
		if err := tx.Query(&attendanceModel.StaffAttendanceModel{}).
			Where("staff_attendance_staff_id = ?", id).
			Delete(&attendanceModel.StaffAttendanceModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.StaffModel{}, id)
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Staff deleted")
}
