package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

/* ============================ Fee types ============================ */

type CreateFeeTypeRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Code        string  `json:"code" validate:"required,max=40"`
	Description *string `json:"description"`
}

func (r *CreateFeeTypeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.Description = helper.TrimPtr(r.Description)
}

type UpdateFeeTypeRequest struct {
	Name        helper.PatchField[string]  `json:"name"`
	Code        helper.PatchField[string]  `json:"code"`
	Description helper.PatchField[*string] `json:"description"`
}

func (r *UpdateFeeTypeRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	if r.Code.Value != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code.Value))
		r.Code.Value = &v
	}
	helper.TrimPatchPtr(&r.Description)
}

func (r *UpdateFeeTypeRequest) Updates() (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	if r.Code.Present && r.Code.Get() == "" {
		return nil, helper.Validation("code", "code is required")
	}
	u := map[string]any{}
	r.Name.Apply(u, "fee_type_name")
	r.Code.Apply(u, "fee_type_code")
	r.Description.Apply(u, "fee_type_description")
	return u, nil
}

/* ======================= Fee groups & lines ======================== */

// FeeGroupTypeRequest satu line tagihan; dipakai untuk create dan replace.
type FeeGroupTypeRequest struct {
	FeeTypeID   uuid.UUID       `json:"feeTypeId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *string         `json:"dueDate"`
	FineType    string          `json:"fineType" validate:"omitempty,oneof=none fixed percentage"`
	FinePercent decimal.Decimal `json:"finePercent"`
	FineAmount  decimal.Decimal `json:"fineAmount"`
}

func (r *FeeGroupTypeRequest) Normalize() {
	r.FineType = strings.ToLower(strings.TrimSpace(r.FineType))
	if r.FineType == "" {
		r.FineType = model.FineNone
	}
}

// Validate aturan angka yang tidak bisa diekspresikan tag validator.
func (r *FeeGroupTypeRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return helper.Validation("amount", "amount must be greater than 0")
	}
	switch r.FineType {
	case model.FinePercentage:
		if !r.FinePercent.IsPositive() || r.FinePercent.GreaterThan(decimal.NewFromInt(100)) {
			return helper.Validation("finePercent", "finePercent must be between 0 and 100")
		}
	case model.FineFixed:
		if !r.FineAmount.IsPositive() {
			return helper.Validation("fineAmount", "fineAmount must be greater than 0")
		}
	}
	return nil
}

// ToModel: nilai denda yang tidak relevan dengan fineType di-nol-kan.
func (r *FeeGroupTypeRequest) ToModel(groupID uuid.UUID) (*model.FeeGroupTypeModel, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	due, err := dbtime.OptionalDate("dueDate", r.DueDate)
	if err != nil {
		return nil, err
	}
	m := &model.FeeGroupTypeModel{
		FeeGroupTypeFeeGroupID: groupID,
		FeeGroupTypeFeeTypeID:  r.FeeTypeID,
		FeeGroupTypeAmount:     r.Amount,
		FeeGroupTypeDueDate:    due,
		FeeGroupTypeFineType:   r.FineType,
	}
	switch r.FineType {
	case model.FinePercentage:
		m.FeeGroupTypeFinePercent = r.FinePercent
	case model.FineFixed:
		m.FeeGroupTypeFineAmount = r.FineAmount
	}
	return m, nil
}

type CreateFeeGroupRequest struct {
	Name        string                `json:"name" validate:"required,max=120"`
	Description *string               `json:"description"`
	Types       []FeeGroupTypeRequest `json:"types" validate:"omitempty,dive"`
}

func (r *CreateFeeGroupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = helper.TrimPtr(r.Description)
	for i := range r.Types {
		r.Types[i].Normalize()
	}
}

// DuplicateFeeType true bila fee type yang sama muncul dua kali dalam payload.
func (r *CreateFeeGroupRequest) DuplicateFeeType() bool {
	ids := lo.Map(r.Types, func(x FeeGroupTypeRequest, _ int) uuid.UUID { return x.FeeTypeID })
	return len(lo.Uniq(ids)) != len(ids)
}

type UpdateFeeGroupRequest struct {
	Name        helper.PatchField[string]  `json:"name"`
	Description helper.PatchField[*string] `json:"description"`
}

func (r *UpdateFeeGroupRequest) Normalize() {
	helper.TrimPatch(&r.Name)
	helper.TrimPatchPtr(&r.Description)
}

func (r *UpdateFeeGroupRequest) Updates() (map[string]any, error) {
	if r.Name.Present && r.Name.Get() == "" {
		return nil, helper.Validation("name", "name is required")
	}
	u := map[string]any{}
	r.Name.Apply(u, "fee_group_name")
	r.Description.Apply(u, "fee_group_description")
	return u, nil
}

/* ===================== Masters & assignments ====================== */

type CreateFeesMasterRequest struct {
	SessionID   *uuid.UUID `json:"sessionId"`
	FeeGroupID  uuid.UUID  `json:"feeGroupId" validate:"required"`
	ClassID     uuid.UUID  `json:"classId" validate:"required"`
	AssignToAll bool       `json:"assignToAll"`
}

type CreateStudentFeesMasterRequest struct {
	FeesMasterID     uuid.UUID `json:"feesMasterId" validate:"required"`
	StudentSessionID uuid.UUID `json:"studentSessionId" validate:"required"`
}

type PatchStudentFeesMasterRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

/* ============================ Payments ============================= */

type CollectFeeRequest struct {
	StudentFeesMasterID uuid.UUID       `json:"studentFeesMasterId" validate:"required"`
	FeeGroupTypeID      *uuid.UUID      `json:"feeGroupTypeId"`
	Amount              decimal.Decimal `json:"amount"`
	Discount            decimal.Decimal `json:"discount"`
	Fine                decimal.Decimal `json:"fine"`
	Mode                string          `json:"mode" validate:"required,oneof=cash cheque bank_transfer card upi online"`
	PaidAt              *string         `json:"paidAt"`
	Note                *string         `json:"note" validate:"omitempty,max=500"`
}

func (r *CollectFeeRequest) Normalize() {
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))
	r.Note = helper.TrimPtr(r.Note)
}

// ToModel: amount boleh negatif (koreksi), tapi tidak nol. paidAt default now.
func (r *CollectFeeRequest) ToModel(collector uuid.UUID, now time.Time) (*model.FeePaymentModel, error) {
	if r.Amount.IsZero() {
		return nil, helper.Validation("amount", "amount must not be zero")
	}
	if r.Discount.IsNegative() {
		return nil, helper.Validation("discount", "discount must not be negative")
	}
	if r.Fine.IsNegative() {
		return nil, helper.Validation("fine", "fine must not be negative")
	}
	paidAt := now
	if r.PaidAt != nil && strings.TrimSpace(*r.PaidAt) != "" {
		p, err := time.Parse(time.RFC3339, strings.TrimSpace(*r.PaidAt))
		if err != nil {
			d, derr := dbtime.RequiredDate("paidAt", *r.PaidAt)
			if derr != nil {
				return nil, helper.Validation("paidAt", "paidAt must be a valid date or RFC3339 timestamp")
			}
			p = d
		}
		paidAt = p
	}
	return &model.FeePaymentModel{
		FeePaymentStudentFeesMasterID: r.StudentFeesMasterID,
		FeePaymentFeeGroupTypeID:      r.FeeGroupTypeID,
		FeePaymentAmount:              r.Amount,
		FeePaymentDiscount:            r.Discount,
		FeePaymentFine:                r.Fine,
		FeePaymentMode:                r.Mode,
		FeePaymentPaidAt:              paidAt.UTC(),
		FeePaymentNote:                r.Note,
		FeePaymentCollectedBy:         collector,
	}, nil
}
