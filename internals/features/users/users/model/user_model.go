package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;primaryKey" json:"id"`
	UserSchoolID     uuid.UUID  `gorm:"column:user_school_id;type:uuid;not null;uniqueIndex:uq_users_school_username,priority:1;uniqueIndex:uq_users_school_email,priority:1" json:"schoolId"`
	UserRoleID       *uuid.UUID `gorm:"column:user_role_id;type:uuid;index" json:"roleId"`
	UserUsername     string     `gorm:"column:user_username;size:60;not null;uniqueIndex:uq_users_school_username,priority:2" json:"username"`
	UserEmail        string     `gorm:"column:user_email;size:160;not null;uniqueIndex:uq_users_school_email,priority:2" json:"email"`
	UserFullName     string     `gorm:"column:user_full_name;size:160;not null" json:"fullName"`
	UserPasswordHash string     `gorm:"column:user_password_hash;not null" json:"-"`
	UserIsActive     bool       `gorm:"column:user_is_active;not null;default:true" json:"isActive"`
	UserLastLoginAt  *time.Time `gorm:"column:user_last_login_at" json:"lastLoginAt"`
	UserCreatedAt    time.Time  `gorm:"column:user_created_at;not null;autoCreateTime" json:"createdAt"`
	UserUpdatedAt    time.Time  `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (UserModel) TableName() string    { return "users" }
func (UserModel) TenantColumn() string { return "user_school_id" }
func (UserModel) KeyColumn() string    { return "user_id" }
func (UserModel) Label() string        { return "User" }

func (m *UserModel) SetSchoolID(id uuid.UUID) { m.UserSchoolID = id }

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
