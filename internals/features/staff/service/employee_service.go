package service

import (
	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/staff/model"
	helper "schoolku_backend/internals/helpers"
)

const (
	EmployeePrefix = "EMP"
	employeeWidth  = 4
)

// NextEmployeeID → EMP0001, EMP0002, ... per tenant.
func NextEmployeeID(t *scope.Tenant) (string, error) {
	ids, err := t.Prefixed(&model.StaffModel{}, "staff_employee_id", EmployeePrefix)
	if err != nil {
		return "", err
	}
	last := helper.HighestIdentifier(EmployeePrefix, ids)
	return helper.NextIdentifier(EmployeePrefix, last, employeeWidth, func(candidate string) (bool, error) {
		return t.Exists(&model.StaffModel{}, "staff_employee_id = ?", candidate)
	})
}
