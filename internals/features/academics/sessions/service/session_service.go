package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/academics/sessions/model"
	helper "schoolku_backend/internals/helpers"
)

// Activate satu-satunya jalur untuk menyalakan session.
// Semua session tenant dimatikan lalu id dinyalakan dalam satu transaksi.
func Activate(t *scope.Tenant, id uuid.UUID) error {
	return t.Transaction(func(tx *scope.Tenant) error {
		if _, err := scope.First[model.AcademicSessionModel](tx, id); err != nil {
			return err
		}
		if err := tx.Query(&model.AcademicSessionModel{}).
			Where("academic_session_is_active = ?", true).
			Update("academic_session_is_active", false).Error; err != nil {
			return err
		}
		return tx.Updates(&model.AcademicSessionModel{}, id, map[string]any{"academic_session_is_active": true})
	})
}

// Active mengembalikan session aktif tenant.
func Active(t *scope.Tenant) (*model.AcademicSessionModel, error) {
	var s model.AcademicSessionModel
	err := t.Query(&model.AcademicSessionModel{}).
		Where("academic_session_is_active = ?", true).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound("Active session")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve: id eksplisit harus milik tenant; nil → session aktif.
func Resolve(t *scope.Tenant, id *uuid.UUID) (uuid.UUID, error) {
	if id != nil {
		if err := t.Owns(&model.AcademicSessionModel{}, *id); err != nil {
			return uuid.Nil, err
		}
		return *id, nil
	}
	s, err := Active(t)
	if err != nil {
		return uuid.Nil, err
	}
	return s.AcademicSessionID, nil
}
