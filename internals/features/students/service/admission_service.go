package service

import (
	"strconv"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/students/model"
	helper "schoolku_backend/internals/helpers"
)

const admissionWidth = 4

// NextAdmissionNo menghasilkan "{tahun}{0001}" berikutnya untuk tenant.
// Basisnya nomor {tahun}+digit tertinggi; bentrok dengan nomor manual → naik lagi.
func NextAdmissionNo(t *scope.Tenant, year int) (string, error) {
	prefix := strconv.Itoa(year)

	nos, err := t.Prefixed(&model.StudentModel{}, "student_admission_no", prefix)
	if err != nil {
		return "", err
	}
	last := helper.HighestIdentifier(prefix, nos)
	return helper.NextIdentifier(prefix, last, admissionWidth, func(candidate string) (bool, error) {
		return t.Exists(&model.StudentModel{}, "student_admission_no = ?", candidate)
	})
}
