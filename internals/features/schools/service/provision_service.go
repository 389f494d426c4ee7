package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/databases/scope"
	schoolModel "schoolku_backend/internals/features/schools/model"
	roleService "schoolku_backend/internals/features/users/roles/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ProvisionInput struct {
	Code          string `validate:"required,max=32"`
	Name          string `validate:"required,max=160"`
	Timezone      string
	AdminUsername string `validate:"required,min=3,max=60,excludes=@"`
	AdminEmail    string `validate:"required,email"`
	AdminPassword string `validate:"required,min=8"`
	AdminFullName string
}

type Provisioned struct {
	School schoolModel.SchoolModel
	Admin  userModel.UserModel
}

// Provision membuat school + role sistem + user admin dalam satu transaksi.
// Kode school unik global.
func Provision(ctx context.Context, db *gorm.DB, in ProvisionInput) (*Provisioned, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.AdminUsername = strings.ToLower(strings.TrimSpace(in.AdminUsername))
	in.AdminEmail = strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if err := helper.ValidateStruct(in); err != nil {
		return nil, err
	}

	hash, err := helperAuth.HashPassword(in.AdminPassword)
	if err != nil {
		return nil, err
	}

	var out Provisioned
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&schoolModel.SchoolModel{}).Where("school_code = ?", in.Code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return helper.Conflict("code", "code already exists")
		}

		school := schoolModel.SchoolModel{
			SchoolCode:     in.Code,
			SchoolName:     in.Name,
			SchoolLocale:   "en",
			SchoolCurrency: "USD",
			SchoolTimezone: strings.TrimSpace(in.Timezone),
			SchoolIsActive: true,
		}
		if school.SchoolTimezone == "" {
			school.SchoolTimezone = "UTC"
		}
		if err := tx.Create(&school).Error; err != nil {
			return err
		}

		t := scope.For(tx, school.SchoolID)
		if err := roleService.SyncPermissionCatalog(tx); err != nil {
			return err
		}
		roles, err := roleService.CreateSystemRoles(t)
		if err != nil {
			return err
		}

		adminRole := roles[constants.RoleAdmin]
		fullName := strings.TrimSpace(in.AdminFullName)
		if fullName == "" {
			fullName = "Administrator"
		}
		admin := userModel.UserModel{
			UserRoleID:       &adminRole.RoleID,
			UserUsername:     in.AdminUsername,
			UserEmail:        in.AdminEmail,
			UserFullName:     fullName,
			UserPasswordHash: hash,
			UserIsActive:     true,
		}
		if err := t.Create(&admin); err != nil {
			return err
		}

		out = Provisioned{School: school, Admin: admin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
