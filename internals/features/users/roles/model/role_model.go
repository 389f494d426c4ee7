package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleModel struct {
	RoleID          uuid.UUID `gorm:"column:role_id;type:uuid;primaryKey" json:"id"`
	RoleSchoolID    uuid.UUID `gorm:"column:role_school_id;type:uuid;not null;uniqueIndex:uq_roles_school_name,priority:1;uniqueIndex:uq_roles_school_slug,priority:1" json:"schoolId"`
	RoleName        string    `gorm:"column:role_name;size:80;not null;uniqueIndex:uq_roles_school_name,priority:2" json:"name"`
	RoleSlug        string    `gorm:"column:role_slug;size:80;not null;uniqueIndex:uq_roles_school_slug,priority:2" json:"slug"`
	RoleDescription *string   `gorm:"column:role_description" json:"description"`
	RoleIsSystem    bool      `gorm:"column:role_is_system;not null;default:false" json:"isSystem"`
	RoleCreatedAt   time.Time `gorm:"column:role_created_at;not null;autoCreateTime" json:"createdAt"`
	RoleUpdatedAt   time.Time `gorm:"column:role_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (RoleModel) TableName() string    { return "roles" }
func (RoleModel) TenantColumn() string { return "role_school_id" }
func (RoleModel) KeyColumn() string    { return "role_id" }
func (RoleModel) Label() string        { return "Role" }

func (m *RoleModel) SetSchoolID(id uuid.UUID) { m.RoleSchoolID = id }

func (m *RoleModel) BeforeCreate(*gorm.DB) error {
	if m.RoleID == uuid.Nil {
		m.RoleID = uuid.New()
	}
	return nil
}

// PermissionModel katalog global, tidak punya kolom tenant.
type PermissionModel struct {
	PermissionID     uuid.UUID `gorm:"column:permission_id;type:uuid;primaryKey" json:"id"`
	PermissionSlug   string    `gorm:"column:permission_slug;size:80;not null;uniqueIndex:uq_permissions_slug" json:"slug"`
	PermissionName   string    `gorm:"column:permission_name;size:160;not null" json:"name"`
	PermissionModule string    `gorm:"column:permission_module;size:40;not null" json:"module"`
}

func (PermissionModel) TableName() string { return "permissions" }

func (m *PermissionModel) BeforeCreate(*gorm.DB) error {
	if m.PermissionID == uuid.Nil {
		m.PermissionID = uuid.New()
	}
	return nil
}

// RolePermissionModel join role ↔ permission; school_id ikut disimpan supaya bisa di-scope.
type RolePermissionModel struct {
	RolePermissionRoleID       uuid.UUID `gorm:"column:role_permission_role_id;type:uuid;primaryKey" json:"roleId"`
	RolePermissionPermissionID uuid.UUID `gorm:"column:role_permission_permission_id;type:uuid;primaryKey" json:"permissionId"`
	RolePermissionSchoolID     uuid.UUID `gorm:"column:role_permission_school_id;type:uuid;not null;index" json:"schoolId"`
}

func (RolePermissionModel) TableName() string    { return "role_permissions" }
func (RolePermissionModel) TenantColumn() string { return "role_permission_school_id" }
func (RolePermissionModel) KeyColumn() string    { return "role_permission_role_id" }
func (RolePermissionModel) Label() string        { return "Role permission" }

func (m *RolePermissionModel) SetSchoolID(id uuid.UUID) { m.RolePermissionSchoolID = id }
