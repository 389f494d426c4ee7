package service

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/databases/scope"
	roleModel "schoolku_backend/internals/features/users/roles/model"
)

// SyncPermissionCatalog upsert katalog global dari constants.PermissionCatalog.
func SyncPermissionCatalog(db *gorm.DB) error {
	rows := lo.Map(constants.PermissionCatalog, func(p constants.PermissionDef, _ int) roleModel.PermissionModel {
		return roleModel.PermissionModel{
			PermissionID:     uuid.New(),
			PermissionSlug:   p.Slug,
			PermissionName:   p.Name,
			PermissionModule: p.Module,
		}
	})
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "permission_slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission_name", "permission_module"}),
	}).Create(&rows).Error
}

// CreateSystemRoles membuat role sistem beserta permission default-nya.
func CreateSystemRoles(t *scope.Tenant) (map[string]roleModel.RoleModel, error) {
	var perms []roleModel.PermissionModel
	if err := t.Global().Find(&perms).Error; err != nil {
		return nil, err
	}
	bySlug := lo.KeyBy(perms, func(p roleModel.PermissionModel) string { return p.PermissionSlug })

	out := make(map[string]roleModel.RoleModel, len(constants.SystemRoles))
	for _, sr := range constants.SystemRoles {
		role := roleModel.RoleModel{RoleName: sr.Name, RoleSlug: sr.Slug, RoleIsSystem: true}
		if err := t.Create(&role); err != nil {
			return nil, err
		}
		ids := lo.FilterMap(sr.Permissions, func(slug string, _ int) (uuid.UUID, bool) {
			p, ok := bySlug[slug]
			return p.PermissionID, ok
		})
		if err := ReplaceRolePermissions(t, role.RoleID, ids); err != nil {
			return nil, err
		}
		out[sr.Slug] = role
	}
	return out, nil
}

// ReplaceRolePermissions hapus semua lalu insert ulang. Panggil di dalam transaksi.
func ReplaceRolePermissions(t *scope.Tenant, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	if err := t.Query(&roleModel.RolePermissionModel{}).
		Where("role_permission_role_id = ?", roleID).
		Delete(&roleModel.RolePermissionModel{}).Error; err != nil {
		return err
	}
	for _, pid := range lo.Uniq(permissionIDs) {
		rp := roleModel.RolePermissionModel{RolePermissionRoleID: roleID, RolePermissionPermissionID: pid}
		if err := t.Create(&rp); err != nil {
			return err
		}
	}
	return nil
}

// PermissionSlugs daftar slug milik role (untuk claim token).
func PermissionSlugs(t *scope.Tenant, roleID uuid.UUID) ([]string, error) {
	var slugs []string
	err := t.Table(&roleModel.RolePermissionModel{}).
		Joins("JOIN permissions ON permissions.permission_id = role_permissions.role_permission_permission_id").
		Where("role_permissions.role_permission_role_id = ?", roleID).
		Order("permissions.permission_slug").
		Pluck("permissions.permission_slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}
