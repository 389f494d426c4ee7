package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/users/auth/dto"
	schoolModel "schoolku_backend/internals/features/schools/model"
	roleModel "schoolku_backend/internals/features/users/roles/model"
	roleService "schoolku_backend/internals/features/users/roles/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

var errInvalidCredentials = helper.Unauthorized("Invalid credentials")

type LoginService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

// Login: school by code → user by username/email → bcrypt → token.
func (s *LoginService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	db := s.DB.WithContext(ctx)

	var school schoolModel.SchoolModel
	if err := db.Where("school_code = ?", req.SchoolCode).Take(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !school.SchoolIsActive {
		return nil, helper.Unauthorized("School is inactive")
	}

	t := scope.For(db, school.SchoolID)
	// username tidak boleh mengandung "@", jadi input ber-"@" selalu email
	col := "user_username"
	if strings.Contains(req.Username, "@") {
		col = "user_email"
	}
	var user userModel.UserModel
	err := t.Query(&userModel.UserModel{}).
		Where(col+" = ?", req.Username).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helperAuth.CheckPassword(user.UserPasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}
	if !user.UserIsActive {
		return nil, helper.Unauthorized("User is inactive")
	}

	tc := helperAuth.TenantContext{
		UserID:      user.UserID,
		SchoolID:    school.SchoolID,
		SchoolName:  school.SchoolName,
		SchoolCode:  school.SchoolCode,
		Permissions: []string{},
	}
	if user.UserRoleID != nil {
		role, err := scope.First[roleModel.RoleModel](t, *user.UserRoleID)
		if err != nil && !helper.IsKind(err, helper.KindNotFound) {
			return nil, err
		}
		if role != nil {
			tc.RoleID = role.RoleID
			tc.RoleSlug = role.RoleSlug
			if tc.Permissions, err = roleService.PermissionSlugs(t, role.RoleID); err != nil {
				return nil, err
			}
		}
	}

	token, exp, err := helperAuth.IssueToken(s.Secret, s.TTL, tc, now())
	if err != nil {
		return nil, err
	}
	loginAt := now()
	if err := t.Updates(&userModel.UserModel{}, user.UserID, map[string]any{"user_last_login_at": loginAt}); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User: dto.LoginUser{
			ID:          user.UserID,
			Username:    user.UserUsername,
			Email:       user.UserEmail,
			FullName:    user.UserFullName,
			Role:        tc.RoleSlug,
			Permissions: tc.Permissions,
		},
		School: dto.LoginSchool{ID: school.SchoolID, Code: school.SchoolCode, Name: school.SchoolName},
	}, nil
}
