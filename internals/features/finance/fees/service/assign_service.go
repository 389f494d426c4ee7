package service

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/model"
	studentModel "schoolku_backend/internals/features/students/model"
)

// AssignToClass materialisasi StudentFeesMaster untuk semua student session
// di class + session milik master. Yang sudah punya assignment dilewati.
// Mengembalikan jumlah assignment baru.
func AssignToClass(tx *scope.Tenant, m *model.FeesMasterModel) (int, error) {
	var ssIDs []uuid.UUID
	if err := tx.Table(&studentModel.StudentSessionModel{}).
		Joins("JOIN class_sections ON class_sections.class_section_id = student_sessions.student_session_class_section_id").
		Where("class_sections.class_section_class_id = ?", m.FeesMasterClassID).
		Where("student_sessions.student_session_session_id = ?", m.FeesMasterSessionID).
		Pluck("student_sessions.student_session_id", &ssIDs).Error; err != nil {
		return 0, err
	}
	if len(ssIDs) == 0 {
		return 0, nil
	}

	var existing []uuid.UUID
	if err := tx.Query(&model.StudentFeesMasterModel{}).
		Where("student_fees_master_fees_master_id = ?", m.FeesMasterID).
		Pluck("student_fees_master_student_session_id", &existing).Error; err != nil {
		return 0, err
	}
	missing, _ := lo.Difference(ssIDs, existing)
	if len(missing) == 0 {
		return 0, nil
	}

	rows := lo.Map(missing, func(id uuid.UUID, _ int) model.StudentFeesMasterModel {
		return model.StudentFeesMasterModel{
			StudentFeesMasterFeesMasterID:     m.FeesMasterID,
			StudentFeesMasterStudentSessionID: id,
			StudentFeesMasterIsActive:         true,
		}
	})
	if err := scope.CreateAll(tx, rows, clause.OnConflict{DoNothing: true}); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// HasPayments true bila ada pembayaran pada salah satu assignment master.
func HasPayments(t *scope.Tenant, masterID uuid.UUID) (bool, error) {
	sub := t.Query(&model.StudentFeesMasterModel{}).
		Select("student_fees_master_id").
		Where("student_fees_master_fees_master_id = ?", masterID)
	return t.Exists(&model.FeePaymentModel{}, "fee_payment_student_fees_master_id IN (?)", sub)
}
