package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	SchoolCode string `json:"schoolCode" validate:"required,max=32"`
	Username   string `json:"username" validate:"required,max=160"`
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.SchoolCode = strings.ToUpper(strings.TrimSpace(r.SchoolCode))
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

type LoginUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

type LoginSchool struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      LoginUser   `json:"user"`
	School    LoginSchool `json:"school"`
}
