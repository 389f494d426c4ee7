package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FineNone       = "none"
	FineFixed      = "fixed"
	FinePercentage = "percentage"
)

type FeeTypeModel struct {
	FeeTypeID          uuid.UUID `gorm:"column:fee_type_id;type:uuid;primaryKey" json:"id"`
	FeeTypeSchoolID    uuid.UUID `gorm:"column:fee_type_school_id;type:uuid;not null;uniqueIndex:uq_fee_types_school_name,priority:1;uniqueIndex:uq_fee_types_school_code,priority:1" json:"schoolId"`
	FeeTypeName        string    `gorm:"column:fee_type_name;size:120;not null;uniqueIndex:uq_fee_types_school_name,priority:2" json:"name"`
	FeeTypeCode        string    `gorm:"column:fee_type_code;size:40;not null;uniqueIndex:uq_fee_types_school_code,priority:2" json:"code"`
	FeeTypeDescription *string   `gorm:"column:fee_type_description" json:"description"`
	FeeTypeCreatedAt   time.Time `gorm:"column:fee_type_created_at;not null;autoCreateTime" json:"createdAt"`
	FeeTypeUpdatedAt   time.Time `gorm:"column:fee_type_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (FeeTypeModel) TableName() string    { return "fee_types" }
func (FeeTypeModel) TenantColumn() string { return "fee_type_school_id" }
func (FeeTypeModel) KeyColumn() string    { return "fee_type_id" }
func (FeeTypeModel) Label() string        { return "Fee type" }

func (m *FeeTypeModel) SetSchoolID(id uuid.UUID) { m.FeeTypeSchoolID = id }

func (m *FeeTypeModel) BeforeCreate(*gorm.DB) error {
	if m.FeeTypeID == uuid.Nil {
		m.FeeTypeID = uuid.New()
	}
	return nil
}

type FeeGroupModel struct {
	FeeGroupID          uuid.UUID `gorm:"column:fee_group_id;type:uuid;primaryKey" json:"id"`
	FeeGroupSchoolID    uuid.UUID `gorm:"column:fee_group_school_id;type:uuid;not null;uniqueIndex:uq_fee_groups_school_name,priority:1" json:"schoolId"`
	FeeGroupName        string    `gorm:"column:fee_group_name;size:120;not null;uniqueIndex:uq_fee_groups_school_name,priority:2" json:"name"`
	FeeGroupDescription *string   `gorm:"column:fee_group_description" json:"description"`
	FeeGroupCreatedAt   time.Time `gorm:"column:fee_group_created_at;not null;autoCreateTime" json:"createdAt"`
	FeeGroupUpdatedAt   time.Time `gorm:"column:fee_group_updated_at;not null;autoUpdateTime" json:"updatedAt"`

	Types []FeeGroupTypeModel `gorm:"-" json:"types,omitempty"`
}

func (FeeGroupModel) TableName() string    { return "fee_groups" }
func (FeeGroupModel) TenantColumn() string { return "fee_group_school_id" }
func (FeeGroupModel) KeyColumn() string    { return "fee_group_id" }
func (FeeGroupModel) Label() string        { return "Fee group" }

func (m *FeeGroupModel) SetSchoolID(id uuid.UUID) { m.FeeGroupSchoolID = id }

func (m *FeeGroupModel) BeforeCreate(*gorm.DB) error {
	if m.FeeGroupID == uuid.Nil {
		m.FeeGroupID = uuid.New()
	}
	return nil
}

// FeeGroupTypeModel satu baris tagihan dalam group, dengan kebijakan denda sendiri.
type FeeGroupTypeModel struct {
	FeeGroupTypeID          uuid.UUID       `gorm:"column:fee_group_type_id;type:uuid;primaryKey" json:"id"`
	FeeGroupTypeSchoolID    uuid.UUID       `gorm:"column:fee_group_type_school_id;type:uuid;not null;index" json:"schoolId"`
	FeeGroupTypeFeeGroupID  uuid.UUID       `gorm:"column:fee_group_type_fee_group_id;type:uuid;not null;uniqueIndex:uq_fee_group_types_pair,priority:1" json:"feeGroupId"`
	FeeGroupTypeFeeTypeID   uuid.UUID       `gorm:"column:fee_group_type_fee_type_id;type:uuid;not null;uniqueIndex:uq_fee_group_types_pair,priority:2" json:"feeTypeId"`
	FeeGroupTypeAmount      decimal.Decimal `gorm:"column:fee_group_type_amount;type:numeric(14,2);not null" json:"amount"`
	FeeGroupTypeDueDate     *time.Time      `gorm:"column:fee_group_type_due_date;type:date" json:"dueDate"`
	FeeGroupTypeFineType    string          `gorm:"column:fee_group_type_fine_type;size:16;not null;default:'none'" json:"fineType"`
	FeeGroupTypeFinePercent decimal.Decimal `gorm:"column:fee_group_type_fine_percent;type:numeric(7,2);not null;default:0" json:"finePercent"`
	FeeGroupTypeFineAmount  decimal.Decimal `gorm:"column:fee_group_type_fine_amount;type:numeric(14,2);not null;default:0" json:"fineAmount"`
	FeeGroupTypeCreatedAt   time.Time       `gorm:"column:fee_group_type_created_at;not null;autoCreateTime" json:"createdAt"`
	FeeGroupTypeUpdatedAt   time.Time       `gorm:"column:fee_group_type_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (FeeGroupTypeModel) TableName() string    { return "fee_group_types" }
func (FeeGroupTypeModel) TenantColumn() string { return "fee_group_type_school_id" }
func (FeeGroupTypeModel) KeyColumn() string    { return "fee_group_type_id" }
func (FeeGroupTypeModel) Label() string        { return "Fee group type" }

func (m *FeeGroupTypeModel) SetSchoolID(id uuid.UUID) { m.FeeGroupTypeSchoolID = id }

func (m *FeeGroupTypeModel) BeforeCreate(*gorm.DB) error {
	if m.FeeGroupTypeID == uuid.Nil {
		m.FeeGroupTypeID = uuid.New()
	}
	return nil
}

// FeesMasterModel: fee group X untuk class Y di session Z.
type FeesMasterModel struct {
	FeesMasterID         uuid.UUID `gorm:"column:fees_master_id;type:uuid;primaryKey" json:"id"`
	FeesMasterSchoolID   uuid.UUID `gorm:"column:fees_master_school_id;type:uuid;not null;index" json:"schoolId"`
	FeesMasterSessionID  uuid.UUID `gorm:"column:fees_master_session_id;type:uuid;not null;uniqueIndex:uq_fees_masters_triple,priority:1" json:"sessionId"`
	FeesMasterFeeGroupID uuid.UUID `gorm:"column:fees_master_fee_group_id;type:uuid;not null;uniqueIndex:uq_fees_masters_triple,priority:2" json:"feeGroupId"`
	FeesMasterClassID    uuid.UUID `gorm:"column:fees_master_class_id;type:uuid;not null;uniqueIndex:uq_fees_masters_triple,priority:3" json:"classId"`
	FeesMasterCreatedAt  time.Time `gorm:"column:fees_master_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (FeesMasterModel) TableName() string    { return "fees_masters" }
func (FeesMasterModel) TenantColumn() string { return "fees_master_school_id" }
func (FeesMasterModel) KeyColumn() string    { return "fees_master_id" }
func (FeesMasterModel) Label() string        { return "Fees master" }

func (m *FeesMasterModel) SetSchoolID(id uuid.UUID) { m.FeesMasterSchoolID = id }

func (m *FeesMasterModel) BeforeCreate(*gorm.DB) error {
	if m.FeesMasterID == uuid.Nil {
		m.FeesMasterID = uuid.New()
	}
	return nil
}

// StudentFeesMasterModel materialisasi FeesMaster per student session.
type StudentFeesMasterModel struct {
	StudentFeesMasterID               uuid.UUID `gorm:"column:student_fees_master_id;type:uuid;primaryKey" json:"id"`
	StudentFeesMasterSchoolID         uuid.UUID `gorm:"column:student_fees_master_school_id;type:uuid;not null;index" json:"schoolId"`
	StudentFeesMasterFeesMasterID     uuid.UUID `gorm:"column:student_fees_master_fees_master_id;type:uuid;not null;uniqueIndex:uq_student_fees_masters_pair,priority:1" json:"feesMasterId"`
	StudentFeesMasterStudentSessionID uuid.UUID `gorm:"column:student_fees_master_student_session_id;type:uuid;not null;uniqueIndex:uq_student_fees_masters_pair,priority:2" json:"studentSessionId"`
	StudentFeesMasterIsActive         bool      `gorm:"column:student_fees_master_is_active;not null;default:true" json:"isActive"`
	StudentFeesMasterCreatedAt        time.Time `gorm:"column:student_fees_master_created_at;not null;autoCreateTime" json:"createdAt"`
	StudentFeesMasterUpdatedAt        time.Time `gorm:"column:student_fees_master_updated_at;not null;autoUpdateTime" json:"updatedAt"`
}

func (StudentFeesMasterModel) TableName() string    { return "student_fees_masters" }
func (StudentFeesMasterModel) TenantColumn() string { return "student_fees_master_school_id" }
func (StudentFeesMasterModel) KeyColumn() string    { return "student_fees_master_id" }
func (StudentFeesMasterModel) Label() string        { return "Student fees master" }

func (m *StudentFeesMasterModel) SetSchoolID(id uuid.UUID) { m.StudentFeesMasterSchoolID = id }

func (m *StudentFeesMasterModel) BeforeCreate(*gorm.DB) error {
	if m.StudentFeesMasterID == uuid.Nil {
		m.StudentFeesMasterID = uuid.New()
	}
	return nil
}

var PaymentModes = []string{"cash", "cheque", "bank_transfer", "card", "upi", "online"}

// FeePaymentModel append-only. Koreksi = pembayaran baru (boleh negatif), tidak ada update/delete.
type FeePaymentModel struct {
	FeePaymentID                  uuid.UUID       `gorm:"column:fee_payment_id;type:uuid;primaryKey" json:"id"`
	FeePaymentSchoolID            uuid.UUID       `gorm:"column:fee_payment_school_id;type:uuid;not null;index" json:"schoolId"`
	FeePaymentStudentFeesMasterID uuid.UUID       `gorm:"column:fee_payment_student_fees_master_id;type:uuid;not null;index" json:"studentFeesMasterId"`
	FeePaymentFeeGroupTypeID      *uuid.UUID      `gorm:"column:fee_payment_fee_group_type_id;type:uuid" json:"feeGroupTypeId"`
	FeePaymentAmount              decimal.Decimal `gorm:"column:fee_payment_amount;type:numeric(14,2);not null" json:"amount"`
	FeePaymentDiscount            decimal.Decimal `gorm:"column:fee_payment_discount;type:numeric(14,2);not null;default:0" json:"discount"`
	FeePaymentFine                decimal.Decimal `gorm:"column:fee_payment_fine;type:numeric(14,2);not null;default:0" json:"fine"`
	FeePaymentMode                string          `gorm:"column:fee_payment_mode;size:20;not null" json:"mode"`
	FeePaymentPaidAt              time.Time       `gorm:"column:fee_payment_paid_at;not null" json:"paidAt"`
	FeePaymentNote                *string         `gorm:"column:fee_payment_note" json:"note"`
	FeePaymentCollectedBy         uuid.UUID       `gorm:"column:fee_payment_collected_by;type:uuid;not null" json:"collectedBy"`
	FeePaymentCreatedAt           time.Time       `gorm:"column:fee_payment_created_at;not null;autoCreateTime" json:"createdAt"`
}

func (FeePaymentModel) TableName() string    { return "fee_payments" }
func (FeePaymentModel) TenantColumn() string { return "fee_payment_school_id" }
func (FeePaymentModel) KeyColumn() string    { return "fee_payment_id" }
func (FeePaymentModel) Label() string        { return "Fee payment" }

func (m *FeePaymentModel) SetSchoolID(id uuid.UUID) { m.FeePaymentSchoolID = id }

func (m *FeePaymentModel) BeforeCreate(*gorm.DB) error {
	if m.FeePaymentID == uuid.Nil {
		m.FeePaymentID = uuid.New()
	}
	return nil
}
